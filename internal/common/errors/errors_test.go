package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(msg string, _ map[string]interface{}) {
	l.errors = append(l.errors, msg)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationFailed, http.StatusUnprocessableEntity},
		{ErrCodeSubmissionFailed, http.StatusBadGateway},
		{ErrCodeSubmissionInProgress, http.StatusConflict},
		{ErrCodeInvalidPath, http.StatusBadRequest},
		{ErrCodeInvalidValue, http.StatusBadRequest},
		{ErrCodeIndexOutOfRange, http.StatusNotFound},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestSubmissionFailedError_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewSubmissionFailedError(cause)

	assert.Equal(t, SubmissionFailedNotice, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.Retryable)
	assert.Equal(t, "remote", GetErrorCategory(err.Code))
}

func TestAsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", NewSubmissionInProgressError())

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeSubmissionInProgress, stdErr.Code)

	_, ok = AsStandardError(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestErrorHandler_WriteError(t *testing.T) {
	t.Run("standard error keeps its code", func(t *testing.T) {
		log := &recordingLogger{}
		h := NewErrorHandler(log)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/case/submit", nil)

		h.WriteError(rec, req, NewValidationFailedError(map[string]string{"nome_clinica": "Nome da clínica é obrigatório"}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Error struct {
				Code     string                 `json:"code"`
				Metadata map[string]interface{} `json:"metadata"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Metadata, "errors")
		assert.Len(t, log.warns, 1)
		assert.Empty(t, log.errors)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		log := &recordingLogger{}
		h := NewErrorHandler(log)
		rec := httptest.NewRecorder()

		h.WriteError(rec, nil, fmt.Errorf("boom"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
		assert.Len(t, log.errors, 1)
	})
}

func TestStandardError_WithMetadata(t *testing.T) {
	err := NewInvalidRequestError("bad json").WithMetadata("field", "value")

	assert.Equal(t, "value", err.Metadata["field"])
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}
