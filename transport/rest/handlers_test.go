package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-agent/internal/usecase"
)

type fakeDispatcher struct {
	sessionID string
	req       usecase.ActionRequest
	reply     string
	err       error
}

func (that *fakeDispatcher) Dispatch(_ context.Context, sessionID string, req usecase.ActionRequest) (string, error) {
	that.sessionID = sessionID
	that.req = req
	return that.reply, that.err
}

func newTestServer(t *testing.T) (*Server, *fakeDispatcher) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := &fakeDispatcher{reply: "ok"}

	return New(logger, dispatcher), dispatcher
}

func TestServer_handlePing(t *testing.T) {
	server, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.handlePing(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "pong", recorder.Body.String())
}

func TestServer_handleAction(t *testing.T) {
	t.Run("dispatches the action for the session header", func(t *testing.T) {
		server, dispatcher := newTestServer(t)
		dispatcher.reply = "board goes here"

		req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(`{"action": "move", "move": "(0, 2)"}`))
		req.Header.Set(sessionHeader, "conv-1")

		recorder := httptest.NewRecorder()
		server.handleAction(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Equal(t, "board goes here", recorder.Body.String())
		require.Equal(t, "conv-1", dispatcher.sessionID)
		require.Equal(t, usecase.ActionRequest{Action: "move", Move: "(0, 2)"}, dispatcher.req)
		require.Equal(t, "conv-1", recorder.Header().Get(sessionHeader))
	})

	t.Run("mints a session ID when the header is absent", func(t *testing.T) {
		server, dispatcher := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(`{"action": "start"}`))

		recorder := httptest.NewRecorder()
		server.handleAction(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.NotEmpty(t, dispatcher.sessionID)
		require.Equal(t, dispatcher.sessionID, recorder.Header().Get(sessionHeader))
	})

	t.Run("rejects non-POST methods", func(t *testing.T) {
		server, _ := newTestServer(t)

		recorder := httptest.NewRecorder()
		server.handleAction(recorder, httptest.NewRequest(http.MethodGet, "/action", nil))

		require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader("not json"))

		recorder := httptest.NewRecorder()
		server.handleAction(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("dispatcher failure is a 500", func(t *testing.T) {
		server, dispatcher := newTestServer(t)
		dispatcher.err = assert.AnError

		req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(`{"action": "start"}`))

		recorder := httptest.NewRecorder()
		server.handleAction(recorder, req)

		require.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
