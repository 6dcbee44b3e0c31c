package dto

import (
	"github.com/afyastaff/afyastaff/internal/types"
)

// SuccessResponse is returned by endpoints that have no body of their own
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps every list endpoint
type ListResponse[T any] = types.ListResponse[T]
