// Package httpapi exposes the catalog, cart, and user operations over
// HTTP using gin. Every catalog and cart route sits behind the session
// middleware.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/logging"
	"github.com/dmitrijs2005/boilerparts/internal/server/config"
	"github.com/dmitrijs2005/boilerparts/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	catalog         *services.CatalogService
	cart            *services.CartService
	images          *services.ImageService
	sessionValidity time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	cs *services.CatalogService, crs *services.CartService, is *services.ImageService) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		users:           us,
		catalog:         cs,
		cart:            crs,
		images:          is,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	usersGroup := router.Group("/users")
	{
		usersGroup.POST("/register", s.register)
		usersGroup.POST("/login", s.login)
		usersGroup.GET("/login-check", s.sessionAuth, s.loginCheck)
		usersGroup.POST("/logout", s.sessionAuth, s.logout)
	}

	partsGroup := router.Group("/boiler-parts", s.sessionAuth)
	{
		partsGroup.GET("", s.listParts)
		partsGroup.GET("/find/:id", s.findPart)
		partsGroup.GET("/bestsellers", s.bestsellers)
		partsGroup.GET("/new", s.newParts)
		partsGroup.POST("/search", s.searchParts)
		partsGroup.POST("/name", s.partByName)
		partsGroup.GET("/images/:id", s.partImages)
	}

	cartGroup := router.Group("/shopping-cart", s.sessionAuth)
	{
		cartGroup.POST("/add/:partId", s.addCartItem)
		cartGroup.GET("/:userId", s.getCart)
		cartGroup.PATCH("/count/:partId", s.updateCount)
		cartGroup.PATCH("/total-price/:partId", s.updateTotalPrice)
		cartGroup.DELETE("/one/:partId", s.deleteCartItem)
		cartGroup.DELETE("/all/:userId", s.deleteCart)
	}

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// writeError maps sentinel errors to HTTP statuses. Internal details
// never reach the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
