package caseform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"case-collector/internal/common/http"
	"case-collector/internal/common/logger"
	"case-collector/internal/common/metrics"
	"case-collector/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrSinkRejected means the sink answered with a non-2xx status.
	ErrSinkRejected = errors.New("sink rejected submission")
	// ErrSinkUnavailable means the request never got a response.
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrPayloadContract means the document would not serialize to the
	// expected body; nothing was sent.
	ErrPayloadContract = errors.New("payload does not match contract")
)

// Receipt describes an accepted delivery.
type Receipt struct {
	RequestID  string
	StatusCode int
	Duration   time.Duration
}

// Sink receives validated submissions.
type Sink interface {
	Send(ctx context.Context, doc models.CaseSubmission) (*Receipt, error)
}

// HTTPSink POSTs each submission as JSON to a fixed URL, once.
type HTTPSink struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewHTTPSink(cfg *Config, log logger.Logger) *HTTPSink {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &HTTPSink{
		url:    cfg.SinkURL,
		client: http.NewClient(cfg.SinkTimeout).WithUserAgent(cfg.UserAgent),
		logger: log,
	}
}

func (s *HTTPSink) Send(ctx context.Context, doc models.CaseSubmission) (*Receipt, error) {
	res, err := ValidateDocumentPayload(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadContract, err)
	}
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrPayloadContract, strings.Join(res.GetErrorMessages(), "; "))
	}

	requestID := uuid.New().String()
	start := time.Now()

	resp, err := s.client.PostJSON(ctx, s.url, doc, map[string]string{"X-Request-ID": requestID})
	duration := time.Since(start)
	if err != nil {
		metrics.SinkRequestDuration.WithLabelValues("error").Observe(duration.Seconds())
		s.logger.Warn("Sink request failed", map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}

	metrics.SinkRequestDuration.WithLabelValues(strconv.Itoa(resp.StatusCode)).Observe(duration.Seconds())
	if !resp.OK() {
		s.logger.Warn("Sink rejected submission", map[string]interface{}{
			"requestId":  requestID,
			"statusCode": resp.StatusCode,
		})
		return nil, fmt.Errorf("%w: status %d", ErrSinkRejected, resp.StatusCode)
	}

	s.logger.Debug("Sink accepted submission", map[string]interface{}{
		"requestId":  requestID,
		"statusCode": resp.StatusCode,
		"durationMs": duration.Milliseconds(),
	})
	return &Receipt{RequestID: requestID, StatusCode: resp.StatusCode, Duration: duration}, nil
}
