// Package httpapi exposes network construction and the profile and build
// stores over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"neuronet/pkg/neuronet"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Router *gin.Engine
	Addr   string

	client *neuronet.Client
}

func NewServer(client *neuronet.Client, addr string) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		Router: router,
		Addr:   addr,
		client: client,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/healthz", s.healthHandler)

	v1 := s.Router.Group("/v1")
	v1.POST("/networks", s.buildHandler)
	v1.GET("/networks", s.listBuildsHandler)
	v1.GET("/networks/:id", s.getBuildHandler)
	v1.PUT("/profiles/:name", s.saveProfileHandler)
	v1.GET("/profiles", s.listProfilesHandler)
	v1.GET("/profiles/:name", s.getProfileHandler)
	v1.GET("/activations", s.listActivationsHandler)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Addr,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	}
}
