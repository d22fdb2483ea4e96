// Package common contains shared constants, sentinel errors and user-facing
// messages used across caseadmin components.
package common

// HTTP headers set on every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)

// Query parameter names understood by the backend.
const (
	QueryIncludeDeleted = "is_include_deleted"
	QueryIncludeExtra   = "is_include_extra"
	QueryRestore        = "is_restore"
	QueryHardDelete     = "is_hard_delete"
	QueryPage           = "page"
	QueryPerPage        = "per_page"
	QuerySortBy         = "sort_by"
	QuerySortDirection  = "sort_direction"
)
