package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	engine      *gin.Engine
	mode        string
	port        int64
	middlewares []gin.HandlerFunc
	routes      []func(r gin.IRouter)
}

type Option func(*Server)

func defaultServer() *Server {
	return &Server{
		mode: gin.ReleaseMode,
		port: 8080,
	}
}

func WithMode(mode string) Option {
	return func(s *Server) {
		s.mode = mode
	}
}

func WithPort(port int64) Option {
	return func(s *Server) {
		s.port = port
	}
}

func WithCustomHandler(handler gin.HandlerFunc) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, handler)
	}
}

// WithRoutes registers routes after the middlewares and the default handler.
func WithRoutes(register func(r gin.IRouter)) Option {
	return func(s *Server) {
		s.routes = append(s.routes, register)
	}
}

func NewServer(opts ...Option) *Server {
	s := defaultServer()
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(s.mode)
	s.engine = gin.New()
	s.engine.Use(s.middlewares...)
	s.engine.Use(gin.Recovery())
	s.engine.Use(defaultHandler())
	for _, register := range s.routes {
		register(s.engine)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// StartServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func StartServer(lg *zap.Logger, opts ...Option) {
	s := NewServer(opts...)

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	go func() {
		lg.Info("starting web server ...", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("fail to listenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutdown web server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		lg.Error("fail to shutdown web server", zap.Error(err))
	}
	lg.Info("web server exiting")
}

func defaultHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case c.Request.URL.Path == "/":
			c.AbortWithStatus(http.StatusOK)
			return
		case strings.HasSuffix(c.Request.URL.Path, "/healthcheck"):
			c.AbortWithStatus(http.StatusOK)
			return
		}
	}
}
