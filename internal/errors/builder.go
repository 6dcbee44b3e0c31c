package errors

import (
	"encoding/json"
	"maps"
	"strings"

	"github.com/cockroachdb/errors"
)

// detailsPrefix marks the safe detail holding the JSON encoded reportable fields
const detailsPrefix = "__json__:"

// ErrorBuilder provides a fluent interface for building errors
// but does not implement the error interface.
// Mark must be the last call in the chain when using the builder.
type ErrorBuilder struct {
	err     error
	details map[string]any
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage adds internal context to the error
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint adds the message shown to end users
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is a helper for WithHint that allows for formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails merges fields that are safe to return to the caller.
// Later calls overwrite earlier keys.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if b.details == nil {
		b.details = make(map[string]any, len(details))
	}
	maps.Copy(b.details, details)
	return b
}

// WithDetail adds a single reportable field
func (b *ErrorBuilder) WithDetail(key string, value any) *ErrorBuilder {
	return b.WithReportableDetails(map[string]any{key: value})
}

// WithOrganization reports the tenant the error concerns
func (b *ErrorBuilder) WithOrganization(organizationID string) *ErrorBuilder {
	if organizationID == "" {
		return b
	}
	return b.WithDetail("organization_id", organizationID)
}

// WithLimit reports the plan limit that refused the operation
func (b *ErrorBuilder) WithLimit(resource string, used, limit int) *ErrorBuilder {
	return b.WithReportableDetails(map[string]any{
		"resource": resource,
		"used":     used,
		"max":      limit,
	})
}

// Mark marks the error with a sentinel error
// should be the last call in the chain
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.flush(), reference)
	return b.err
}

// Error returns the built error without marking it
func (b *ErrorBuilder) Error() error {
	return b.flush()
}

func (b *ErrorBuilder) flush() error {
	if len(b.details) == 0 {
		return b.err
	}
	marshaled, err := json.Marshal(b.details)
	b.details = nil
	if err != nil {
		return b.err
	}
	b.err = errors.WithSafeDetails(b.err, detailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b.err
}

// ReportableDetails collects the reportable fields attached anywhere in the
// error chain. Fields closer to the root cause lose to outer ones.
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)
	all := errors.GetAllSafeDetails(err)
	for i := len(all) - 1; i >= 0; i-- {
		for _, payload := range all[i].SafeDetails {
			encoded, ok := strings.CutPrefix(payload, detailsPrefix)
			if !ok {
				continue
			}
			var fields map[string]any
			if err := json.Unmarshal([]byte(encoded), &fields); err == nil {
				maps.Copy(details, fields)
			}
		}
	}
	return details
}
