package monitoring

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics over HTTP
type Server struct {
	srv      *http.Server
	listener net.Listener
	done     chan error
}

// Handler returns the router serving /metrics for m
func (m *Metrics) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(Middleware(m))

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})))

	return router
}

// Serve listens on addr and serves /metrics in the background.
// An addr with port 0 picks a free port; see Addr.
func (m *Metrics) Serve(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		srv: &http.Server{
			Handler:           m.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: ln,
		done:     make(chan error, 1),
	}

	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()

	return s, nil
}

// Addr returns the bound listen address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops the server and waits for the serve loop to exit
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-s.done
}
