// Package httpapi exposes the storefront routes as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/chrisdamba/foodstore/internal/storefront"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server serializes every request and every scheduler tick through one
// mutex: there is a single interactive shopper.
type Server struct {
	app  *storefront.App
	echo *echo.Echo
	tick time.Duration
	mu   sync.Mutex
}

func New(app *storefront.App, tick time.Duration) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			zap.S().Debugw("request", fields...)
			return nil
		},
	}))

	s := &Server{app: app, echo: e, tick: tick}
	s.registerRoutes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	e := s.echo
	e.GET("/health", s.locked(s.health))
	e.GET("/session", s.locked(s.session))

	e.GET("/", s.locked(s.home))
	e.GET("/restaurants/:id", s.locked(s.restaurant))
	e.GET("/menu", s.locked(s.menu))
	e.POST("/menu/filter", s.locked(s.filterMenu))

	e.GET("/cart", s.locked(s.cart))
	e.POST("/cart/items", s.locked(s.addCartItem))
	e.PATCH("/cart/items/:id", s.locked(s.updateCartItem))
	e.DELETE("/cart/items/:id", s.locked(s.removeCartItem))
	e.DELETE("/cart", s.locked(s.clearCart))

	e.GET("/login", s.locked(s.loginForm))
	e.POST("/login", s.locked(s.submitLogin))
	e.POST("/login/field", s.locked(s.loginField))
	e.GET("/register", s.locked(s.registerForm))
	e.POST("/register", s.locked(s.submitRegister))
	e.POST("/register/field", s.locked(s.registerField))
	e.POST("/logout", s.locked(s.logout))

	e.GET("/checkout", s.locked(s.checkout))
	e.POST("/checkout", s.locked(s.submitCheckout))
	e.POST("/checkout/field", s.locked(s.checkoutField))
	e.POST("/checkout/reset", s.locked(s.resetCheckout))
}

func (s *Server) locked(h echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return h(c)
	}
}

// RunTicker runs due scheduler events every tick until ctx is done.
func (s *Server) RunTicker(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.app.Tick()
			s.mu.Unlock()
		}
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.RunTicker(ctx)

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("storefront listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
