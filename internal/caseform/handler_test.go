package caseform

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"case-collector/internal/common/config"
	"case-collector/internal/common/logger"
	"case-collector/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, sink Sink) (http.Handler, *Handler) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SinkURL = "http://sink.invalid/submit"

	h, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		Logger:       logger.NewTestLogger(t),
		Sink:         sink,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Register(r)
	return r, h
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

type errorBody struct {
	Error struct {
		Code     string                 `json:"code"`
		Message  string                 `json:"message"`
		Metadata map[string]interface{} `json:"metadata"`
	} `json:"error"`
}

func TestHandler_NewHandler(t *testing.T) {
	tests := []struct {
		name    string
		opts    HandlerOptions
		wantErr bool
	}{
		{
			name: "from app config",
			opts: HandlerOptions{AppConfig: &config.Config{
				Sink: config.SinkConfig{URL: "https://forms.example.com/f/abc", Timeout: 5000},
				Form: config.FormConfig{InitialMonths: 2},
			}},
		},
		{
			name:    "missing sink url",
			opts:    HandlerOptions{AppConfig: &config.Config{}},
			wantErr: true,
		},
		{
			name:    "relative sink url",
			opts:    HandlerOptions{CustomConfig: &Config{InitialMonths: 3, SinkURL: "/submit"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = logger.NewNoOpLogger()
			h, err := NewHandler(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, h.Form().Document().Months, 2)
			assert.Equal(t, 5*time.Second, h.config.SinkTimeout)
		})
	}
}

func TestHandler_GetSession(t *testing.T) {
	router, _ := newTestRouter(t, new(MockSink))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/case", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view SessionView
	decodeBody(t, rec, &view)
	assert.Len(t, view.Document.Months, 3)
	assert.Len(t, view.Months, 3)
	assert.Equal(t, StatusIdle, view.Status)
	assert.Equal(t, "CONSOLIDAÇÃO", view.Months[2].Phase)
}

func TestHandler_SetValue(t *testing.T) {
	router, h := newTestRouter(t, new(MockSink))

	rec := doJSON(t, router, http.MethodPatch, "/api/v1/case", SetValueRequest{Path: "meses[1].fechamentos", Value: 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var raw map[string]interface{}
	decodeBody(t, rec, &raw)
	assert.Equal(t, []interface{}{"meses[1].fechamentos"}, raw["changed"])
	assert.Contains(t, raw["recomputed"], "1")
	assert.Equal(t, 4, models.IntValue(h.Form().Document().Months[1].ClosedSales))
}

func TestHandler_SetValueErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"unknown path", SetValueRequest{Path: "nome"}, http.StatusBadRequest, "INVALID_PATH"},
		{"index out of range", SetValueRequest{Path: "meses[9].leads", Value: 1}, http.StatusNotFound, "INDEX_OUT_OF_RANGE"},
		{"wrong kind", SetValueRequest{Path: "nome_clinica", Value: 3}, http.StatusBadRequest, "INVALID_VALUE"},
		{"malformed body", "not an object", http.StatusBadRequest, "INVALID_REQUEST"},
	}

	router, _ := newTestRouter(t, new(MockSink))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPatch, "/api/v1/case", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body errorBody
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandler_Months(t *testing.T) {
	router, h := newTestRouter(t, new(MockSink))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/case/months", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, h.Form().Document().Months, 4)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/case/months/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp RemoveMonthResponse
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Removed)
	assert.Len(t, resp.Document.Months, 3)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/case/months/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for i := 0; i < 2; i++ {
		doJSON(t, router, http.MethodDelete, "/api/v1/case/months/0", nil)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/case/months/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &resp)
	assert.False(t, resp.Removed)
	assert.Len(t, h.Form().Document().Months, 1)
}

func TestHandler_ToggleTag(t *testing.T) {
	router, h := newTestRouter(t, new(MockSink))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/case/tags", ToggleTagRequest{Field: "dor", Value: "cac_alto", Included: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"cac_alto"}, h.Form().Document().PainPoints)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/case/tags", ToggleTagRequest{Field: "dor", Value: "inventado", Included: true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/case/tags", ToggleTagRequest{Field: "dor"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_MetricsAndValidate(t *testing.T) {
	router, h := newTestRouter(t, new(MockSink))
	fillForm(t, h.Form(), createValidSubmission())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/case/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var metricsResp struct {
		Months []MonthView `json:"months"`
	}
	decodeBody(t, rec, &metricsResp)
	require.Len(t, metricsResp.Months, 1)
	assert.Equal(t, 2500.0, metricsResp.Months[0].Metrics.AverageTicket)
	assert.Equal(t, "62,5%", metricsResp.Months[0].Display.AttendanceRate)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/case/validate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v ValidateResponse
	decodeBody(t, rec, &v)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Messages)
}

func TestHandler_Submit(t *testing.T) {
	t.Run("validation failure", func(t *testing.T) {
		sink := new(MockSink)
		router, _ := newTestRouter(t, sink)

		rec := doJSON(t, router, http.MethodPost, "/api/v1/case/submit", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body errorBody
		decodeBody(t, rec, &body)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Metadata["errors"], "nome_clinica")
		sink.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("sink failure", func(t *testing.T) {
		sink := new(MockSink)
		sink.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
		router, h := newTestRouter(t, sink)
		fillForm(t, h.Form(), createValidSubmission())

		rec := doJSON(t, router, http.MethodPost, "/api/v1/case/submit", nil)
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body errorBody
		decodeBody(t, rec, &body)
		assert.Equal(t, "Erro ao enviar o formulário. Tente novamente.", body.Error.Message)
		assert.Equal(t, "Clínica Sorriso", h.Form().Document().ClinicName)
	})

	t.Run("success", func(t *testing.T) {
		sink := new(MockSink)
		sink.On("Send", mock.Anything, mock.Anything).Return(&Receipt{RequestID: "req-9", StatusCode: 200}, nil)
		router, h := newTestRouter(t, sink)
		fillForm(t, h.Form(), createValidSubmission())

		rec := doJSON(t, router, http.MethodPost, "/api/v1/case/submit", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var outcome SubmitOutcome
		decodeBody(t, rec, &outcome)
		assert.Equal(t, "req-9", outcome.RequestID)
		assert.Empty(t, h.Form().Document().ClinicName)
	})
}

func TestHandler_ResetAndCatalog(t *testing.T) {
	router, h := newTestRouter(t, new(MockSink))
	_, err := h.Form().Set(Top("nome_clinica"), "Clínica Sorriso")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/case/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, h.Form().Document().ClinicName)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cat CatalogResponse
	decodeBody(t, rec, &cat)
	_, ok := cat.Catalog.Question("estrategia_v")
	assert.True(t, ok)
}
