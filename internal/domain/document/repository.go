package document

import "context"

type Repository interface {
	Create(ctx context.Context, doc *PolicyDocument) error
	Get(ctx context.Context, id string) (*PolicyDocument, error)
	List(ctx context.Context, organizationID string) ([]*PolicyDocument, error)

	// CreateAcknowledgement fails with ErrAlreadyExists when the id is taken
	CreateAcknowledgement(ctx context.Context, ack *Acknowledgement) error
	GetAcknowledgement(ctx context.Context, id string) (*Acknowledgement, error)
	ListAcknowledgements(ctx context.Context, documentID string) ([]*Acknowledgement, error)
	ListAcknowledgementsByStaff(ctx context.Context, organizationID, staffID string) ([]*Acknowledgement, error)
}
