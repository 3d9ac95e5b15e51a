package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gridrush/tictactoe-agent/internal/pkg"
	"github.com/gridrush/tictactoe-agent/internal/usecase"
)

const sessionHeader = "X-Session-ID"

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// handleAction runs one action against the caller's session. The
// session is identified by the X-Session-ID header; a fresh ID is
// generated and echoed back when the header is absent.
func (that *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleAction")

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req usecase.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = pkg.GenerateNewSessionID()
	}

	reply, err := that.dispatcher.Dispatch(r.Context(), sessionID, req)
	if err != nil {
		log.Error("failed to dispatch action", "action", req.Action, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set(sessionHeader, sessionID)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write([]byte(reply)); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
