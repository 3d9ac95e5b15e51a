package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridrush/tictactoe-agent/internal/usecase"
)

type dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, req usecase.ActionRequest) (string, error)
}

type Server struct {
	logger     *slog.Logger
	dispatcher dispatcher
}

func New(logger *slog.Logger, dispatcher dispatcher) *Server {
	return &Server{
		logger:     logger,
		dispatcher: dispatcher,
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.handlePing)
	mux.HandleFunc("/action", that.handleAction)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
