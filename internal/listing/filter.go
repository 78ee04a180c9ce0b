package listing

import (
	"fmt"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwell-blog/inkwell/internal/models"
)

// FilterMode distinguishes the three filter shapes a list request can take.
type FilterMode int

const (
	// FilterAll matches every document.
	FilterAll FilterMode = iota
	// FilterMatch is an exact-match filter over query parameters.
	FilterMatch
	// FilterSearch is a resource-specific case-insensitive substring filter.
	FilterSearch
)

// Filter is a structured predicate selecting documents for a list operation.
type Filter struct {
	Mode          FilterMode
	Match         map[string]string
	Search        string
	SearchColumns []string
	// PostID scopes a comment search to one post.
	PostID string
}

// ErrInvalidQueryID is raised when a query parameter that names an id does
// not carry a well-formed object id.
var ErrInvalidQueryID = fmt.Errorf("invalid query id")

// pagination keys are always stripped before filter construction
var paginationKeys = []string{"page", "limit", "order"}

// BuildFilter turns the query parameters of an inbound list request into a
// Filter for the given resource. pathPostID is the post id from the route
// path; it only participates in comment searches.
//
// Requests carrying fewer than three query parameters (after the pagination
// keys are removed) get the unrestricted filter. This shortcut treats "few
// parameters" as "no filter intent" and is load-bearing for existing
// clients; keep it as is.
func BuildFilter(values url.Values, res Resource, pathPostID string) (Filter, error) {
	d, ok := descriptors[res]
	if !ok {
		return Filter{}, fmt.Errorf("unknown resource type: %d", int(res))
	}

	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		params[k] = vs[0]
	}
	for _, k := range paginationKeys {
		delete(params, k)
	}

	if len(params) < 3 {
		return Filter{Mode: FilterAll}, nil
	}

	term, hasSearch := params["search"]
	if !hasSearch {
		// Every parameter naming an id must carry a well-formed object id;
		// rejecting here turns a datastore error into a client error.
		for k, v := range params {
			if strings.Contains(strings.ToLower(k), "id") && !models.IsValidObjectID(v) {
				return Filter{}, ErrInvalidQueryID
			}
		}
		return Filter{Mode: FilterMatch, Match: params}, nil
	}

	// Search mode discards all other parameters.
	f := Filter{Mode: FilterSearch, Search: term, SearchColumns: d.searchColumns}
	if d.scopedToPost {
		f.PostID = pathPostID
	}
	return f, nil
}

// Scope translates the filter into a gorm query scope.
func (f Filter) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		switch f.Mode {
		case FilterMatch:
			for k, v := range f.Match {
				col, err := toColumn(k)
				if err != nil {
					_ = tx.AddError(err)
					return tx
				}
				tx = tx.Where(fmt.Sprintf("%s = ?", col), v)
			}
			return tx
		case FilterSearch:
			if f.PostID != "" {
				tx = tx.Where("post_id = ?", f.PostID)
			}
			if len(f.SearchColumns) == 0 {
				return tx
			}
			pattern := "%" + f.Search + "%"
			clauses := make([]string, len(f.SearchColumns))
			args := make([]interface{}, len(f.SearchColumns))
			for i, col := range f.SearchColumns {
				clauses[i] = fmt.Sprintf("%s ILIKE ?", col)
				args[i] = pattern
			}
			return tx.Where(strings.Join(clauses, " OR "), args...)
		default:
			return tx
		}
	}
}

// toColumn maps a camelCase API field name to its snake_case column. Names
// with anything but letters are rejected before they reach the query text.
func toColumn(field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("empty field name")
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		default:
			return "", fmt.Errorf("invalid field name: %s", field)
		}
	}
	return b.String(), nil
}
