package caseform

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"case-collector/internal/common/config"
	apperrors "case-collector/internal/common/errors"
	"case-collector/internal/common/logger"
	"case-collector/internal/common/observability"
	"case-collector/pkg/catalog"

	"github.com/go-chi/chi/v5"
)

const maxRequestBytes = 1 << 20

// Handler serves one editing session over JSON.
type Handler struct {
	config  *Config
	logger  logger.Logger
	schema  *Schema
	form    *Form
	service *Service
	errors  *apperrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Logger       logger.Logger
	Catalog      *catalog.Catalog
	// Sink overrides the HTTP sink built from the config.
	Sink          Sink
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := opts.CustomConfig
	if cfg == nil {
		cfg = FromAppConfig(opts.AppConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for case form: %w", err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	schema, err := NewSchema(opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	sink := opts.Sink
	if sink == nil {
		sink = NewHTTPSink(cfg, loggerInstance)
	}

	form := NewForm(schema, WithInitialMonths(cfg.InitialMonths))

	return &Handler{
		config: cfg,
		logger: loggerInstance,
		schema: schema,
		form:   form,
		service: NewService(form, ServiceDependencies{
			Logger:        loggerInstance,
			Sink:          sink,
			Observability: opts.Observability,
		}),
		errors: apperrors.NewErrorHandler(loggerInstance),
	}, nil
}

func (h *Handler) Form() *Form {
	return h.form
}

// Register mounts the session routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", h.getCatalog)

		r.Route("/case", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Patch("/", h.setValue)
			r.Post("/months", h.appendMonth)
			r.Delete("/months/{index}", h.removeMonth)
			r.Post("/tags", h.toggleTag)
			r.Get("/metrics", h.getMetrics)
			r.Post("/validate", h.validate)
			r.Post("/submit", h.submit)
			r.Post("/reset", h.reset)
		})
	})
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.form.Session())
}

func (h *Handler) setValue(w http.ResponseWriter, r *http.Request) {
	var req SetValueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}

	p, err := ParsePath(req.Path)
	if err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}

	u, err := h.form.Set(p, req.Value)
	if err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) appendMonth(w http.ResponseWriter, r *http.Request) {
	u, err := h.form.AppendMonth()
	if err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *Handler) removeMonth(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.errors.WriteError(w, r, apperrors.NewInvalidRequestError("index must be an integer"))
		return
	}

	u, removed, err := h.form.RemoveMonth(index)
	if err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}
	writeJSON(w, http.StatusOK, RemoveMonthResponse{Update: u, Removed: removed})
}

func (h *Handler) toggleTag(w http.ResponseWriter, r *http.Request) {
	var req ToggleTagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	if req.Value == "" {
		h.errors.WriteError(w, r, apperrors.NewInvalidRequestError("value is required"))
		return
	}

	u, err := h.form.ToggleTag(Field(req.Field), req.Value, req.Included)
	if err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) getMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"months": h.form.Months()})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	res := h.form.Validate()
	writeJSON(w, http.StatusOK, ValidateResponse{Result: res, Messages: res.Map()})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Submit(r.Context())
	if err != nil {
		h.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.form.Reset(); err != nil {
		h.errors.WriteError(w, r, translateError(err))
		return
	}
	writeJSON(w, http.StatusOK, h.form.Session())
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Catalog: h.schema.Catalog()})
}

// translateError maps form errors to their API error codes.
func translateError(err error) error {
	switch {
	case errors.Is(err, ErrSubmissionInProgress):
		return apperrors.NewSubmissionInProgressError()
	case errors.Is(err, ErrUnknownField):
		return apperrors.NewInvalidPathError(err)
	case errors.Is(err, ErrIndexOutOfRange):
		return apperrors.NewIndexOutOfRangeError(err)
	case errors.Is(err, ErrInvalidValue):
		return apperrors.NewInvalidValueError(err)
	default:
		return err
	}
}

// decodeJSON reads a bounded JSON body, keeping numbers as json.Number so
// counts are not rounded through float64.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return apperrors.NewInvalidRequestError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
