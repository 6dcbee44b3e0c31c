package service

import (
	"context"
	"fmt"

	"github.com/afyastaff/afyastaff/internal/api/dto"
	"github.com/afyastaff/afyastaff/internal/domain/document"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/idempotency"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/samber/lo"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*document.PolicyDocument, error)
	ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Acknowledge(ctx context.Context, documentID string) (*document.Acknowledgement, error)
	ListAcknowledgements(ctx context.Context, documentID string) (*dto.ListAcknowledgementsResponse, error)
	PendingForStaff(ctx context.Context, staffID string) (*dto.ListDocumentsResponse, error)
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{
		ServiceParams: params,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*document.PolicyDocument, error) {
	if _, err := types.RequireCapability(ctx, types.CapabilityDocumentsManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc := req.ToDocument(ctx)
	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	orgID, err := types.RequireOrganization(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.DocumentRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(docs), nil
}

// Acknowledge records that the caller read the current version of a document.
// Repeated calls return the first acknowledgement.
func (s *documentService) Acknowledge(ctx context.Context, documentID string) (*document.Acknowledgement, error) {
	actor, err := requireStaffActor(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.DocumentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	ack := &document.Acknowledgement{
		ID:              s.acknowledgementID(doc, actor.StaffID),
		OrganizationID:  actor.OrganizationID,
		DocumentID:      doc.ID,
		DocumentVersion: doc.Version,
		StaffID:         actor.StaffID,
		AcknowledgedAt:  s.Now(),
	}
	if err := s.DocumentRepo.CreateAcknowledgement(ctx, ack); err != nil {
		if ierr.IsAlreadyExists(err) {
			return s.DocumentRepo.GetAcknowledgement(ctx, ack.ID)
		}
		return nil, err
	}

	s.Logger.Infow("document acknowledged",
		"organization_id", actor.OrganizationID,
		"document_id", doc.ID,
		"staff_id", actor.StaffID)
	return ack, nil
}

func (s *documentService) ListAcknowledgements(ctx context.Context, documentID string) (*dto.ListAcknowledgementsResponse, error) {
	if _, err := types.RequireCapability(ctx, types.CapabilityDocumentsManage); err != nil {
		return nil, err
	}
	doc, err := s.DocumentRepo.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	acks, err := s.DocumentRepo.ListAcknowledgements(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return types.NewListResponse(acks), nil
}

// PendingForStaff lists documents the staff member still has to acknowledge.
// An empty staffID means the caller.
func (s *documentService) PendingForStaff(ctx context.Context, staffID string) (*dto.ListDocumentsResponse, error) {
	actor, err := types.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if staffID == "" {
		staffID = actor.StaffID
	}
	if staffID == "" {
		return nil, ierr.NewError("staff id is required").
			WithHint("Choose a staff member").
			Mark(ierr.ErrValidation)
	}
	if staffID != actor.StaffID && !actor.Can(types.CapabilityStaffView) {
		return nil, ierr.NewError("cannot view staff documents").
			WithHint("You do not have permission to view this staff member's documents").
			Mark(ierr.ErrPermissionDenied)
	}

	docs, err := s.DocumentRepo.List(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	acks, err := s.DocumentRepo.ListAcknowledgementsByStaff(ctx, actor.OrganizationID, staffID)
	if err != nil {
		return nil, err
	}

	done := lo.SliceToMap(acks, func(a *document.Acknowledgement) (string, bool) {
		return fmt.Sprintf("%s@%d", a.DocumentID, a.DocumentVersion), true
	})
	pending := lo.Filter(docs, func(d *document.PolicyDocument, _ int) bool {
		return d.RequiresAcknowledgement && !done[fmt.Sprintf("%s@%d", d.ID, d.Version)]
	})
	return types.NewListResponse(pending), nil
}

// acknowledgementID is deterministic so a concurrent retry collides on insert
func (s *documentService) acknowledgementID(doc *document.PolicyDocument, staffID string) string {
	key := s.Idempotency.GenerateKey(idempotency.ScopeAcknowledgement, map[string]interface{}{
		"document_id": doc.ID,
		"version":     doc.Version,
		"staff_id":    staffID,
	})
	return fmt.Sprintf("%s_%s", types.UUID_PREFIX_ACKNOWLEDGEMENT, key)
}
