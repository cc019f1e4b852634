package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-finbook/finbook/internal/domain"
	"github.com/go-finbook/finbook/pkg/errorspkg"
	"github.com/go-finbook/finbook/pkg/web"
)

const (
	// CPFHeaderKey is the request header carrying the claimed cpf.
	CPFHeaderKey = "cpf"
	// CustomerKey is the gin context key holding the resolved customer.
	CustomerKey = "verified_customer"
)

// ErrCPFHeaderNotFound indicates a request without the cpf header.
var ErrCPFHeaderNotFound = errors.New("cpf header is not provided")

// Gate resolves a claimed cpf to the customer it identifies.
//
//go:generate mockgen -source auth.go -destination auth_mock.go -package middleware
type Gate interface {
	VerifyCPF(ctx context.Context, cpf string) (domain.Customer, error)
}

// AuthMiddleware resolves the cpf header through the gate before any handler
// runs and stores the resolved customer in the request context. A request that
// does not resolve never reaches its handler.
func AuthMiddleware(gate Gate) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		cpf := gctx.GetHeader(CPFHeaderKey)
		if cpf == "" {
			gctx.AbortWithStatusJSON(http.StatusBadRequest, web.Error(ErrCPFHeaderNotFound))
			return
		}

		customer, err := gate.VerifyCPF(gctx.Request.Context(), cpf)
		if err != nil {
			if err == domain.ErrCustomerNotFound {
				gctx.AbortWithStatusJSON(http.StatusBadRequest, web.Error(err))
				return
			}

			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

			return
		}

		gctx.Set(CustomerKey, customer)
		gctx.Next()
	}
}
