// Package statementdelivery manages delivery layer of statement operations.
package statementdelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-finbook/finbook/internal/domain"
	"github.com/go-finbook/finbook/internal/middleware"
	"github.com/go-finbook/finbook/pkg/errorspkg"
	"github.com/go-finbook/finbook/pkg/web"
)

// dateLayout is the calendar-date format of the statement date filter.
const dateLayout = "2006-01-02"

// Service provides service layer interface needed by statement delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statementdelivery
type Service interface {
	Deposit(ctx context.Context, cpf, amount, description string) ([]domain.Entry, error)
	Withdraw(ctx context.Context, cpf, amount string) (domain.Entry, error)
	Statement(ctx context.Context, cpf string) ([]domain.Entry, error)
	StatementByDate(ctx context.Context, cpf string, day time.Time) ([]domain.Entry, error)
	Balance(ctx context.Context, cpf string) (string, error)
}

// Handler facilitates statement delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns statement handler.
func NewHandler(ss Service) Handler {
	return Handler{service: ss}
}

func abortOnError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrCustomerNotFound,
		domain.ErrInsufficientFunds,
		domain.ErrInvalidAmount,
		domain.ErrNegativeAmount:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type depositRequest struct {
	Amount      json.Number `json:"amount" binding:"required"`
	Description string      `json:"description" binding:"required"`
}

// Deposit handles http request to record a credit entry.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
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

	statement, err := h.service.Deposit(ctx, customer.CPF, req.Amount.String(), req.Description)
	if err != nil {
		abortOnError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, statement)
}

type withdrawRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

// Withdraw handles http request to record a debit entry.
func (h *Handler) Withdraw(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req withdrawRequest
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

	entry, err := h.service.Withdraw(ctx, customer.CPF, req.Amount.String())
	if err != nil {
		abortOnError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, entry)
}

// Statement handles http request to read the full customer statement.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	statement, err := h.service.Statement(ctx, customer.CPF)
	if err != nil {
		abortOnError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, statement)
}

// StatementByDate handles http request to read the entries of one calendar day.
func (h *Handler) StatementByDate(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	day, err := time.Parse(dateLayout, gctx.Query("date"))
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrMalformedDate))

		return
	}

	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	statement, err := h.service.StatementByDate(ctx, customer.CPF, day)
	if err != nil {
		abortOnError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, statement)
}

type balanceResponse struct {
	Balance json.Number `json:"balance"`
}

// Balance handles http request to read the current customer balance.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	customer := gctx.MustGet(middleware.CustomerKey).(domain.Customer)

	balance, err := h.service.Balance(ctx, customer.CPF)
	if err != nil {
		abortOnError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, balanceResponse{Balance: json.Number(balance)})
}
