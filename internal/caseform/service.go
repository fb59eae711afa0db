package caseform

import (
	"context"
	"errors"
	"regexp"
	"time"

	apperrors "case-collector/internal/common/errors"
	"case-collector/internal/common/logger"
	"case-collector/internal/common/metrics"
	"case-collector/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type ServiceDependencies struct {
	Logger        logger.Logger
	Sink          Sink
	Observability *observability.Observability
}

// Service drives submission of a Form to its Sink.
type Service struct {
	form   *Form
	sink   Sink
	logger logger.Logger
	obs    *observability.Observability
}

func NewService(form *Form, deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := deps.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Service{
		form:   form,
		sink:   deps.Sink,
		logger: log,
		obs:    obs,
	}
}

func (s *Service) Form() *Form {
	return s.form
}

// Submit validates the document and hands it to the sink exactly once.
// Validation failures never reach the network. The form is cleared only
// after the sink confirms; on any sink failure the document is kept and the
// caller gets the generic failure notice.
func (s *Service) Submit(ctx context.Context) (*SubmitOutcome, error) {
	start := time.Now()
	ctx, span := s.obs.StartSpan(ctx, "case.submit")
	defer span.End()

	doc, res, err := s.form.beginSubmit()
	if errors.Is(err, ErrSubmissionInProgress) {
		s.record(ctx, metrics.OutcomeRejected, start)
		span.SetAttributes(attribute.String("case.outcome", metrics.OutcomeRejected))
		return nil, apperrors.NewSubmissionInProgressError()
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if !res.Valid {
		for _, fe := range res.Errors {
			metrics.ValidationFailures.WithLabelValues(fieldLabel(fe.Field)).Inc()
		}
		s.record(ctx, metrics.OutcomeInvalid, start)
		span.SetAttributes(
			attribute.String("case.outcome", metrics.OutcomeInvalid),
			attribute.Int("case.invalid_fields", len(res.Errors)),
		)
		s.logger.Info("Submission rejected by validation", map[string]interface{}{
			"invalidFields": res.Fields(),
		})
		return nil, apperrors.NewValidationFailedError(res.Map())
	}

	success := false
	defer func() { s.form.finishSubmit(success) }()

	metrics.SubmissionsInFlight.Inc()
	defer metrics.SubmissionsInFlight.Dec()

	span.SetAttributes(attribute.Int("case.months", len(doc.Months)))
	s.logger.Info("Sending submission", map[string]interface{}{
		"clinic": doc.ClinicName,
		"months": len(doc.Months),
	})

	receipt, err := s.sink.Send(ctx, doc)
	if err != nil {
		s.record(ctx, metrics.OutcomeFailed, start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "sink failure")
		span.SetAttributes(attribute.String("case.outcome", metrics.OutcomeFailed))
		s.logger.Error("Submission failed", map[string]interface{}{
			"clinic":     doc.ClinicName,
			"error":      err.Error(),
			"durationMs": time.Since(start).Milliseconds(),
		})
		return nil, apperrors.NewSubmissionFailedError(err)
	}
	success = true
	if receipt == nil {
		receipt = &Receipt{}
	}

	s.record(ctx, metrics.OutcomeSubmitted, start)
	span.SetAttributes(
		attribute.String("case.outcome", metrics.OutcomeSubmitted),
		attribute.String("case.request_id", receipt.RequestID),
	)
	s.logger.Info("Submission accepted", map[string]interface{}{
		"clinic":     doc.ClinicName,
		"requestId":  receipt.RequestID,
		"statusCode": receipt.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	})

	return &SubmitOutcome{
		Status:      metrics.OutcomeSubmitted,
		RequestID:   receipt.RequestID,
		SubmittedAt: time.Now().UTC(),
	}, nil
}

func (s *Service) record(ctx context.Context, outcome string, start time.Time) {
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	s.obs.RecordSubmission(ctx, outcome, time.Since(start))
}

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// fieldLabel drops record indexes so metric label cardinality stays bounded:
// "meses[4].leads" becomes "meses[].leads".
func fieldLabel(path string) string {
	return indexPattern.ReplaceAllString(path, "[]")
}
