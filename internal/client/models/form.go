package models

// FormData wraps a record being edited with flags that exist only in the
// UI layer. Only Record is ever serialized to the backend.
type FormData[T any] struct {
	Record            T
	IsHardDelete      bool
	IsShowSoftDeleted bool
}

// NewForm returns form data for record with both UI flags cleared.
func NewForm[T any](record T) FormData[T] {
	return FormData[T]{Record: record}
}

// SortDirection is "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// RequestMetadata describes a list request. It is sent as query parameters
// and doubles as the cache key of the last fetched list.
type RequestMetadata struct {
	IsIncludeDeleted bool              `json:"isIncludeDeleted,omitempty"`
	IsIncludeExtra   bool              `json:"isIncludeExtra,omitempty"`
	Page             int               `json:"page,omitempty"`
	PerPage          int               `json:"perPage,omitempty"`
	SortBy           string            `json:"sortBy,omitempty"`
	SortDirection    SortDirection     `json:"sortDirection,omitempty"`
	Filters          map[string]string `json:"filters,omitempty"`
}

// ResponseMetadata is the pagination block returned with paged lists.
type ResponseMetadata struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
