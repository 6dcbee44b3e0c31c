package document

import (
	"time"

	"github.com/afyastaff/afyastaff/internal/types"
)

// PolicyDocument is a document staff may be asked to acknowledge
type PolicyDocument struct {
	ID                      string `bson:"_id" json:"id"`
	Title                   string `bson:"title" json:"title"`
	Description             string `bson:"description" json:"description"`
	FileURL                 string `bson:"file_url" json:"file_url"`
	Version                 int    `bson:"version" json:"version"`
	RequiresAcknowledgement bool   `bson:"requires_acknowledgement" json:"requires_acknowledgement"`

	types.BaseModel `bson:",inline"`
}

// Acknowledgement records that a staff member read a document.
// There is at most one per document and staff member.
type Acknowledgement struct {
	ID              string    `bson:"_id" json:"id"`
	OrganizationID  string    `bson:"organization_id" json:"organization_id"`
	DocumentID      string    `bson:"document_id" json:"document_id"`
	DocumentVersion int       `bson:"document_version" json:"document_version"`
	StaffID         string    `bson:"staff_id" json:"staff_id"`
	AcknowledgedAt  time.Time `bson:"acknowledged_at" json:"acknowledged_at"`
}
