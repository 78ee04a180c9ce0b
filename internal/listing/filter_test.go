package listing

import (
	"errors"
	"net/url"
	"testing"
)

func TestBuildFilterFewParamsShortcut(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"no params", url.Values{}},
		{"one filter param", url.Values{"status": {"published"}}},
		{"two filter params", url.Values{"status": {"published"}, "featured": {"true"}}},
		{"pagination keys do not count", url.Values{
			"page": {"2"}, "limit": {"10"}, "order": {"-publishDate"},
			"status": {"published"}, "featured": {"true"},
		}},
		{"bare search", url.Values{"search": {"foo"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := BuildFilter(tt.values, ResourcePost, "")
			if err != nil {
				t.Fatalf("BuildFilter() error: %v", err)
			}
			if f.Mode != FilterAll {
				t.Errorf("Mode = %v, want FilterAll", f.Mode)
			}
		})
	}
}

func TestBuildFilterExactMatch(t *testing.T) {
	values := url.Values{
		"status":   {"published"},
		"featured": {"true"},
		"summary":  {"x"},
		"page":     {"1"},
	}
	f, err := BuildFilter(values, ResourcePost, "")
	if err != nil {
		t.Fatalf("BuildFilter() error: %v", err)
	}
	if f.Mode != FilterMatch {
		t.Fatalf("Mode = %v, want FilterMatch", f.Mode)
	}
	if len(f.Match) != 3 {
		t.Errorf("Match has %d entries, want 3", len(f.Match))
	}
	if _, ok := f.Match["page"]; ok {
		t.Error("pagination key leaked into filter")
	}
}

func TestBuildFilterValidatesIDParams(t *testing.T) {
	tests := []struct {
		name    string
		idValue string
		wantErr bool
	}{
		{"valid object id", "0123456789abcdef01234567", false},
		{"too short", "abc123", true},
		{"uppercase hex", "0123456789ABCDEF01234567", true},
		{"non hex", "zzzzzzzzzzzzzzzzzzzzzzzz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{
				"authorId": {tt.idValue},
				"status":   {"published"},
				"featured": {"true"},
			}
			_, err := BuildFilter(values, ResourcePost, "")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQueryID) {
					t.Errorf("error = %v, want ErrInvalidQueryID", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildFilterSearchDiscardsOtherParams(t *testing.T) {
	values := url.Values{
		"search":   {"foo"},
		"authorId": {"not-even-a-valid-id"},
		"status":   {"published"},
	}
	f, err := BuildFilter(values, ResourcePost, "")
	if err != nil {
		t.Fatalf("BuildFilter() error: %v", err)
	}
	if f.Mode != FilterSearch {
		t.Fatalf("Mode = %v, want FilterSearch", f.Mode)
	}
	if f.Search != "foo" {
		t.Errorf("Search = %q, want %q", f.Search, "foo")
	}
	if len(f.Match) != 0 {
		t.Error("search mode should discard exact-match params")
	}
}

func TestBuildFilterSearchColumns(t *testing.T) {
	tests := []struct {
		res     Resource
		columns []string
	}{
		{ResourcePost, []string{"title", "content"}},
		{ResourceUser, []string{"username", "email"}},
		{ResourceComment, []string{"content"}},
		{ResourceTag, []string{"name"}},
		{ResourceCategory, []string{"name"}},
	}

	values := url.Values{"search": {"term"}, "a": {"1"}, "b": {"2"}}
	for _, tt := range tests {
		t.Run(tt.res.String(), func(t *testing.T) {
			f, err := BuildFilter(values, tt.res, "0123456789abcdef01234567")
			if err != nil {
				t.Fatalf("BuildFilter() error: %v", err)
			}
			if len(f.SearchColumns) != len(tt.columns) {
				t.Fatalf("got %d search columns, want %d", len(f.SearchColumns), len(tt.columns))
			}
			for i, c := range tt.columns {
				if f.SearchColumns[i] != c {
					t.Errorf("column[%d] = %q, want %q", i, f.SearchColumns[i], c)
				}
			}
		})
	}
}

func TestBuildFilterCommentSearchScopedToPost(t *testing.T) {
	values := url.Values{"search": {"nice"}, "a": {"1"}, "b": {"2"}}
	f, err := BuildFilter(values, ResourceComment, "0123456789abcdef01234567")
	if err != nil {
		t.Fatalf("BuildFilter() error: %v", err)
	}
	if f.PostID != "0123456789abcdef01234567" {
		t.Errorf("PostID = %q, want path post id", f.PostID)
	}

	// Other resources ignore the path post id
	f, err = BuildFilter(values, ResourcePost, "0123456789abcdef01234567")
	if err != nil {
		t.Fatalf("BuildFilter() error: %v", err)
	}
	if f.PostID != "" {
		t.Errorf("PostID = %q, want empty for Post resource", f.PostID)
	}
}

func TestBuildFilterUnknownResource(t *testing.T) {
	if _, err := BuildFilter(url.Values{}, Resource(99), ""); err == nil {
		t.Error("expected error for unknown resource type")
	}
}

func TestToColumn(t *testing.T) {
	tests := []struct {
		field   string
		want    string
		wantErr bool
	}{
		{"publishDate", "publish_date", false},
		{"createdAt", "created_at", false},
		{"username", "username", false},
		{"postCount", "post_count", false},
		{"authorId", "author_id", false},
		{"", "", true},
		{"publish_date; DROP TABLE posts", "", true},
		{"field1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := toColumn(tt.field)
			if tt.wantErr {
				if err == nil {
					t.Errorf("toColumn(%q) expected error", tt.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("toColumn(%q) error: %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("toColumn(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}
