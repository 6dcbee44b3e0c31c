package dto

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/document"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type CreateDocumentRequest struct {
	Title                   string `json:"title" validate:"required,max=200"`
	Description             string `json:"description,omitempty" validate:"omitempty,max=2000"`
	FileURL                 string `json:"file_url" validate:"required,url"`
	RequiresAcknowledgement bool   `json:"requires_acknowledgement"`
}

func (r *CreateDocumentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateDocumentRequest) ToDocument(ctx context.Context) *document.PolicyDocument {
	return &document.PolicyDocument{
		ID:                      types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		Title:                   strings.TrimSpace(r.Title),
		Description:             r.Description,
		FileURL:                 r.FileURL,
		Version:                 1,
		RequiresAcknowledgement: r.RequiresAcknowledgement,
		BaseModel:               types.GetDefaultBaseModel(ctx),
	}
}

type ListDocumentsResponse = types.ListResponse[*document.PolicyDocument]

type ListAcknowledgementsResponse = types.ListResponse[*document.Acknowledgement]
