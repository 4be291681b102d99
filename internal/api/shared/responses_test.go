package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasknest-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithLogger(t *testing.T) (*http.Request, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.NewTestLogger()
	ctx := context.WithValue(context.Background(), TraceIDKey, "test-trace-id")
	ctx = logger.WithLogger(ctx, log)
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
	return req, buf
}

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"message": "success", "data": 123})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response["message"])
	assert.Equal(t, float64(123), response["data"])
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	req, buf := requestWithLogger(t)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithMessage(w, req, "Task deleted successfully")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	req, _ := requestWithLogger(t)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid request","trace_id":"test-trace-id"}`, w.Body.String())
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusUnauthorized, "Not authenticated")

	assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		message       string
		err           error
		elevate       bool
		expectedLevel string
	}{
		{
			name:          "server error",
			statusCode:    http.StatusInternalServerError,
			message:       "An unexpected error occurred",
			err:           errors.New("dial postgres://tasknest:hunter22@db:5432/tasknest failed"),
			expectedLevel: "ERROR",
		},
		{
			name:          "client error",
			statusCode:    http.StatusNotFound,
			message:       "Task not found",
			err:           errors.New("task not found"),
			expectedLevel: "DEBUG",
		},
		{
			name:          "elevated client error",
			statusCode:    http.StatusForbidden,
			message:       "Not authorized to delete this task",
			err:           errors.New("resource is owned by another user"),
			elevate:       true,
			expectedLevel: "WARN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, buf := requestWithLogger(t)
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, req, tc.statusCode, tc.message, tc.err, opts...)

			assert.Equal(t, tc.statusCode, w.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.message, response.Detail)
			assert.Equal(t, "test-trace-id", response.TraceID)
			assert.NotContains(t, w.Body.String(), tc.err.Error())

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.NotEmpty(t, entries)
			last := entries[len(entries)-1]
			assert.Equal(t, tc.expectedLevel, last["level"])
			assert.Equal(t, "test-trace-id", last["trace_id"])
			assert.NotEmpty(t, last["error_type"])
			assert.NotContains(t, buf.String(), "hunter22")
		})
	}
}

func TestWithElevatedLogLevel(t *testing.T) {
	opts := responseOptions{}
	WithElevatedLogLevel()(&opts)
	assert.True(t, opts.elevateLogLevel)
}

func TestRespondWithErrorUsesDefaultLogger(t *testing.T) {
	var captured []string
	old := slog.Default()
	slog.SetDefault(slog.New(handlerFunc(func(msg string) { captured = append(captured, msg) })))
	defer slog.SetDefault(old)

	RespondWithError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadRequest, "x")
	assert.Contains(t, captured, "sending error response")
}

// handlerFunc is a minimal slog.Handler that records messages.
type handlerFunc func(msg string)

func (h handlerFunc) Enabled(context.Context, slog.Level) bool { return true }
func (h handlerFunc) Handle(_ context.Context, r slog.Record) error {
	h(r.Message)
	return nil
}
func (h handlerFunc) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h handlerFunc) WithGroup(string) slog.Handler      { return h }
