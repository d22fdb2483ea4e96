package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/common"
)

// Expand substitutes {name} tokens in tpl with URL-escaped values from
// params. A token without a value fails with common.ErrMissingPathParam.
func Expand(tpl string, params map[string]string) (string, error) {
	var b strings.Builder
	rest := tpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s", common.ErrMissingPathParam, name)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}

// EncodeMetadata adds the request metadata to q using the backend's
// snake_case parameter names. Each filter becomes its own key.
func EncodeMetadata(q url.Values, md *models.RequestMetadata) {
	if md == nil {
		return
	}
	q.Set(common.QueryIncludeDeleted, strconv.FormatBool(md.IsIncludeDeleted))
	q.Set(common.QueryIncludeExtra, strconv.FormatBool(md.IsIncludeExtra))
	if md.Page > 0 {
		q.Set(common.QueryPage, strconv.Itoa(md.Page))
	}
	if md.PerPage > 0 {
		q.Set(common.QueryPerPage, strconv.Itoa(md.PerPage))
	}
	if md.SortBy != "" {
		q.Set(common.QuerySortBy, md.SortBy)
	}
	if md.SortDirection != "" {
		q.Set(common.QuerySortDirection, string(md.SortDirection))
	}
	for k, v := range md.Filters {
		q.Set(k, v)
	}
}
