package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridrush/tictactoe-agent/internal/pkg"
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

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	sessionID := that.sessionFromCookie(writer, req, log)

	key := req.Header.Get("Sec-WebSocket-Key")
	acceptKey := GenerateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		return
	}

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "sessionID", sessionID)

	if err := that.handleMessages(ctx, sessionID, bufrw); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes actions from the client one at a time,
// which keeps all mutations of the session serialized per connection.
func (that *Server) handleMessages(ctx context.Context, sessionID string, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMessages", "sessionID", sessionID)

	for {
		reqBody, err := that.readRequest(bufrw)
		if err != nil {
			log.Error("error reading message", "error", err)
			return err
		}

		var message Message
		if err := json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		reply, err := that.dispatcher.Dispatch(ctx, sessionID, usecase.ActionRequest{
			Action:  message.Action,
			Move:    message.Move,
			Command: message.Command,
		})
		if err != nil {
			log.Error("failed to dispatch action", "action", message.Action, "error", err)
			reply = "Something went wrong on my side. Try again."
		}

		if err := that.sendResponse(bufrw, Response{Action: message.Action, Reply: reply}); err != nil {
			log.Error("failed to send response", "error", err)
		}
	}
}

// sessionFromCookie - resolves the conversation's session ID, minting
// a cookie when the client doesn't carry one yet.
func (that *Server) sessionFromCookie(writer http.ResponseWriter, req *http.Request, log *slog.Logger) string {
	cookie, err := req.Cookie("user_session")
	if err != nil {
		cookie = &http.Cookie{
			Name:    "user_session",
			Value:   pkg.GenerateNewSessionID(),
			Expires: time.Now().Add(24 * time.Hour),
			Path:    "/ws",
		}
		http.SetCookie(writer, cookie)
		log.Info("session cookie not found, new one created", "cookie", cookie.Value)
		return cookie.Value
	}

	log.Info("session cookie found", "cookie", cookie.Value)

	return cookie.Value
}
