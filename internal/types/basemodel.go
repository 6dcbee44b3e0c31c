package types

import (
	"context"
	"time"
)

// BaseModel is embedded by every persisted document. Documents are always
// scoped to one organization.
type BaseModel struct {
	OrganizationID string    `bson:"organization_id" json:"organization_id"`
	Status         Status    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy      string    `bson:"created_by" json:"created_by"`
	UpdatedBy      string    `bson:"updated_by" json:"updated_by"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		OrganizationID: GetOrganizationID(ctx),
		Status:         StatusPublished,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      GetUserID(ctx),
		UpdatedBy:      GetUserID(ctx),
	}
}

// Touch marks the document as updated by the caller in ctx
func (b *BaseModel) Touch(ctx context.Context) {
	b.UpdatedAt = time.Now().UTC()
	b.UpdatedBy = GetUserID(ctx)
}
