package types

// ListResponse wraps a full, unpaginated list. Tenant collections are small
// enough to return whole.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListResponse[T any](items []T) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{
		Items: items,
		Total: len(items),
	}
}
