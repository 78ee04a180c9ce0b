// Package listing implements the shared list/query protocol used by every
// collection endpoint: filter construction from query parameters, sort
// resolution, and offset/limit pagination with a uniform payload shape.
package listing

import "fmt"

// Resource identifies one of the five listable entity types.
type Resource int

const (
	ResourceUser Resource = iota
	ResourcePost
	ResourceComment
	ResourceTag
	ResourceCategory
)

// descriptor captures the per-resource capabilities the protocol needs:
// which columns free-text search scans and the default sort key.
type descriptor struct {
	name          string
	defaultSort   string
	searchColumns []string
	// search on comments is additionally scoped to the post named in the
	// route path
	scopedToPost bool
}

var descriptors = map[Resource]descriptor{
	ResourceUser:     {name: "User", defaultSort: "username", searchColumns: []string{"username", "email"}},
	ResourcePost:     {name: "Post", defaultSort: "-publishDate", searchColumns: []string{"title", "content"}},
	ResourceComment:  {name: "Comment", defaultSort: "-createdAt", searchColumns: []string{"content"}, scopedToPost: true},
	ResourceTag:      {name: "Tag", defaultSort: "name", searchColumns: []string{"name"}},
	ResourceCategory: {name: "Category", defaultSort: "name", searchColumns: []string{"name"}},
}

// String returns the resource name.
func (r Resource) String() string {
	if d, ok := descriptors[r]; ok {
		return d.name
	}
	return fmt.Sprintf("Resource(%d)", int(r))
}

// DefaultSort returns the resource's default sort key.
func (r Resource) DefaultSort() string {
	return descriptors[r].defaultSort
}

// Valid reports whether r is one of the known resource types.
func (r Resource) Valid() bool {
	_, ok := descriptors[r]
	return ok
}
