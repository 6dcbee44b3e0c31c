// Package store is the document store adapter. Documents are BSON encoded,
// addressed by collection and id, and queried by field equality.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// Filter matches documents whose fields equal the given values.
// A value built with AnyOf matches any of its members; a nil value matches
// a missing or null field.
type Filter map[string]any

// Set is a set membership condition used as a Filter value
type Set struct {
	Values []any
}

// AnyOf builds a set membership condition
func AnyOf[T any](values ...T) Set {
	s := Set{Values: make([]any, 0, len(values))}
	for _, v := range values {
		s.Values = append(s.Values, v)
	}
	return s
}

// FindOptions controls ordering and size of a Find result
type FindOptions struct {
	SortBy     string
	Descending bool
	Limit      int64
}

// Store is implemented by the MongoDB and in-memory backends.
//
// Insert fails with ErrAlreadyExists when the id is taken. Get, Replace and
// Delete fail with ErrNotFound when it is absent. CompareAndSwap replaces the
// document only while its version field still equals expectedVersion and
// fails with ErrVersionConflict otherwise.
type Store interface {
	Insert(ctx context.Context, collection, id string, doc any) error
	Get(ctx context.Context, collection, id string) (bson.Raw, error)
	Replace(ctx context.Context, collection, id string, doc any) error
	CompareAndSwap(ctx context.Context, collection, id string, expectedVersion int64, doc any) error
	Upsert(ctx context.Context, collection, id string, doc any) error
	Delete(ctx context.Context, collection, id string) error
	Find(ctx context.Context, collection string, filter Filter, opts *FindOptions) ([]bson.Raw, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}

// VersionField is the document field compared by CompareAndSwap
const VersionField = "version"

// Collection names
const (
	CollectionOrganizations            = "organizations"
	CollectionSubscriptions            = "subscriptions"
	CollectionPaymentRecords           = "payment_records"
	CollectionBillingLogs              = "billing_logs"
	CollectionLocations                = "locations"
	CollectionStaff                    = "staff"
	CollectionSeatLedgers              = "seat_ledgers"
	CollectionCustomRoles              = "custom_roles"
	CollectionLeaveRequests            = "leave_requests"
	CollectionPolicyDocuments          = "policy_documents"
	CollectionDocumentAcknowledgements = "document_acknowledgements"
	CollectionShifts                   = "shifts"
	CollectionAttendanceRecords        = "attendance_records"
	CollectionPayrollEntries           = "payroll_entries"
)

// Collections lists every collection, used to create indexes
var Collections = []string{
	CollectionOrganizations,
	CollectionSubscriptions,
	CollectionPaymentRecords,
	CollectionBillingLogs,
	CollectionLocations,
	CollectionStaff,
	CollectionSeatLedgers,
	CollectionCustomRoles,
	CollectionLeaveRequests,
	CollectionPolicyDocuments,
	CollectionDocumentAcknowledgements,
	CollectionShifts,
	CollectionAttendanceRecords,
	CollectionPayrollEntries,
}
