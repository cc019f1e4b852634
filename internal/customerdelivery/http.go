// Package customerdelivery manages delivery layer of customers.
package customerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-finbook/finbook/internal/domain"
	"github.com/go-finbook/finbook/internal/middleware"
	"github.com/go-finbook/finbook/pkg/errorspkg"
	"github.com/go-finbook/finbook/pkg/web"
)

// Service provides service layer interface needed by customer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package customerdelivery
type Service interface {
	Create(ctx context.Context, cpf, name string) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	UpdateName(ctx context.Context, cpf, name string) (domain.Customer, error)
	Delete(ctx context.Context, cpf string) error
}

// Handler facilitates customer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns customer handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

type createRequest struct {
	CPF  string `json:"cpf" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if _, err := h.service.Create(ctx, req.CPF, req.Name); err != nil {
		if err == domain.ErrCustomerAlreadyExists {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	customers, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusCreated, customers)
}

// Get handles http request to read the authenticated customer.
func (h *Handler) Get(gctx *gin.Context) {
	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	gctx.JSON(http.StatusOK, customer)
}

type updateRequest struct {
	Name string `json:"name" binding:"required"`
}

// Update handles http request to rename the authenticated customer.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.JSONError{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	updated, err := h.service.UpdateName(ctx, customer.CPF, req.Name)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, updated)
}

// Delete handles http request to remove the authenticated customer.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	if err := h.service.Delete(ctx, customer.CPF); err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	remaining, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, remaining)
}
