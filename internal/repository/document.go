package repository

import (
	"context"

	"github.com/afyastaff/afyastaff/internal/domain/document"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"github.com/afyastaff/afyastaff/internal/types"
)

type documentRepository struct {
	docs *store.Collection[document.PolicyDocument]
	acks *store.Collection[document.Acknowledgement]
	log  *logger.Logger
}

func (r *documentRepository) Create(ctx context.Context, doc *document.PolicyDocument) error {
	r.log.Debugw("creating policy document", "document_id", doc.ID, "organization_id", doc.OrganizationID)
	return r.docs.Insert(ctx, doc.ID, doc)
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.PolicyDocument, error) {
	doc, err := r.docs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.docs.Name(), id, doc.OrganizationID); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) List(ctx context.Context, organizationID string) ([]*document.PolicyDocument, error) {
	return r.docs.Find(ctx, store.Filter{
		"organization_id": organizationID,
		"status":          types.StatusPublished,
	}, newestFirst())
}

func (r *documentRepository) CreateAcknowledgement(ctx context.Context, ack *document.Acknowledgement) error {
	return r.acks.Insert(ctx, ack.ID, ack)
}

func (r *documentRepository) GetAcknowledgement(ctx context.Context, id string) (*document.Acknowledgement, error) {
	ack, err := r.acks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inScope(ctx, r.acks.Name(), id, ack.OrganizationID); err != nil {
		return nil, err
	}
	return ack, nil
}

func (r *documentRepository) ListAcknowledgements(ctx context.Context, documentID string) ([]*document.Acknowledgement, error) {
	return r.acks.Find(ctx, store.Filter{"document_id": documentID}, &store.FindOptions{SortBy: "acknowledged_at"})
}

func (r *documentRepository) ListAcknowledgementsByStaff(ctx context.Context, organizationID, staffID string) ([]*document.Acknowledgement, error) {
	return r.acks.Find(ctx, store.Filter{
		"organization_id": organizationID,
		"staff_id":        staffID,
	}, nil)
}
