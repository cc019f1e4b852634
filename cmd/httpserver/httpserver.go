// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-finbook/finbook/internal/customerdelivery"
	"github.com/go-finbook/finbook/internal/customerrepo"
	"github.com/go-finbook/finbook/internal/customerservice"
	"github.com/go-finbook/finbook/internal/middleware"
	"github.com/go-finbook/finbook/internal/statementdelivery"
	"github.com/go-finbook/finbook/internal/statementservice"
	"github.com/go-finbook/finbook/pkg/configpkg"
)

// Server holds the router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. The customer
// store is built here and injected; no package holds global state.
func New(logger zerolog.Logger, config configpkg.Config) *Server {
	customerRepo := customerrepo.NewRepoMem()

	customerService := customerservice.New(customerRepo)
	statementService := statementservice.New(customerRepo)

	customerHandler := customerdelivery.NewHandler(customerService)
	statementHandler := statementdelivery.NewHandler(statementService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	// Account creation is the only route without a customer to resolve.
	engine.POST("/account", customerHandler.Create)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(customerService))

	authRoutes.GET("/account", customerHandler.Get)
	authRoutes.PUT("/account", customerHandler.Update)
	authRoutes.DELETE("/account", customerHandler.Delete)

	authRoutes.GET("/statement", statementHandler.Statement)
	authRoutes.GET("/statement/date", statementHandler.StatementByDate)
	authRoutes.POST("/deposit", statementHandler.Deposit)
	authRoutes.POST("/withdraw", statementHandler.Withdraw)
	authRoutes.GET("/balance", statementHandler.Balance)

	return &Server{
		Engine: engine,
		Config: config,
	}
}
