package dto

import (
	"context"
	"strings"

	"github.com/afyastaff/afyastaff/internal/domain/location"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/afyastaff/afyastaff/internal/validator"
)

type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	County  string `json:"county" validate:"required"`
	Address string `json:"address,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateLocationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateLocationRequest) ToLocation(ctx context.Context) *location.Location {
	return &location.Location{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LOCATION),
		Name:      strings.TrimSpace(r.Name),
		County:    r.County,
		Address:   r.Address,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type ListLocationsResponse = types.ListResponse[*location.Location]
