package response

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biosphere-server/internal/shared/errors"
)

func TestErrorStatusCodes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{errors.Validation("settings are required"), http.StatusBadRequest, "settings are required"},
		{errors.NotFound("planet not found"), http.StatusNotFound, "planet not found"},
		{errors.Unauthorized("token required"), http.StatusUnauthorized, "token required"},
		{errors.MethodNotAllowed(http.MethodPut), http.StatusMethodNotAllowed, errors.MethodNotAllowed(http.MethodPut).Error()},
		{errors.External("registry unavailable"), http.StatusServiceUnavailable, "a backing service is unavailable"},
		{errors.Generationf("size stage failed"), http.StatusInternalServerError, "generation failed, retry with another seed"},
		{io.EOF, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/species", nil)
		Error(rec, req, logger, tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tc.status, body.Code)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestErrorKeepsDetailInLog(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/planets", nil)

	Error(rec, req, logger, errors.WrapInternal("query failed", io.ErrUnexpectedEOF))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal", body.Error)
	assert.NotContains(t, body.Message, "query failed")
	assert.Contains(t, logs.String(), "query failed")
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestSuccessNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusNoContent, map[string]int{"ignored": 1})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
