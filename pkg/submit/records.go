package submit

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// RecordSubmitter creates a record from validated form values.
type RecordSubmitter struct {
	form    schema.Form
	creator Creator
	logger  *zap.Logger
}

// RecordOption configures a RecordSubmitter.
type RecordOption func(*RecordSubmitter)

// WithRecordLogger attaches a logger.
func WithRecordLogger(logger *zap.Logger) RecordOption {
	return func(s *RecordSubmitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewRecordSubmitter builds a submitter for form backed by creator. The form
// is used to map server-side error paths back onto its fields.
func NewRecordSubmitter(form schema.Form, creator Creator, options ...RecordOption) *RecordSubmitter {
	s := &RecordSubmitter{form: form, creator: creator, logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit sends only the form's declared fields to the creator.
func (s *RecordSubmitter) Submit(ctx context.Context, values map[string]string) Outcome {
	if s.creator == nil {
		return Failure(ReasonUnknown, errors.New("submit: creator is nil"))
	}
	payload := make(map[string]string, len(s.form.Fields))
	for _, field := range s.form.Fields {
		payload[field.Name] = values[field.Name]
	}

	record, err := s.creator.Create(ctx, payload)
	if err == nil {
		s.logger.Info("record created", zap.String("form", s.form.ID), zap.String("id", record.ID))
		return Success(record)
	}

	if isTransport(err) {
		s.logger.Warn("record create unreachable", zap.String("form", s.form.ID), zap.Error(err))
		return Failure(ReasonNetworkError, err)
	}

	outcome := Failure(ReasonUnknown, err)
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		mapping := MapFieldErrors(s.form, rejected.Fields)
		outcome.FieldErrors = mapping.Fields
		outcome.FormErrors = MergeFormErrors(rejected.Messages, mapping.Form...)
	}
	s.logger.Warn("record create failed", zap.String("form", s.form.ID), zap.Error(err))
	return outcome
}
