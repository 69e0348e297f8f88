package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PlacesHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	port            string
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

func NewPlacesHttpServer(router *Router, muxRouter *mux.Router, port string, shutdownTimeout time.Duration, logger *zap.Logger) *PlacesHttpServer {
	return &PlacesHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		port:            port,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.Named("http_server"),
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *PlacesHttpServer) Start() error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", s.port),
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case sig := <-stop:
		s.logger.Info("Shutting down the server", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("Server exiting")
	return nil
}
