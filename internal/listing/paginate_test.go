package listing

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, DefaultLimit},
		{"zero limit becomes default", "1", "0", 1, DefaultLimit},
		{"negative limit becomes default", "1", "-3", 1, DefaultLimit},
		{"limit clamped to max", "1", "500", 1, MaxLimit},
		{"valid values", "3", "20", 3, 20},
		{"garbage page", "abc", "10", 1, 10},
		{"zero page becomes first", "0", "10", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := NormalizePage(tt.page, tt.limit)
			if pr.Page != tt.wantPage || pr.Limit != tt.wantLimit {
				t.Errorf("NormalizePage(%q, %q) = {%d %d}, want {%d %d}",
					tt.page, tt.limit, pr.Page, pr.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		page, limit, want int
	}{
		{1, 5, 0},
		{2, 5, 5},
		{4, 10, 30},
	}
	for _, tt := range tests {
		pr := PageRequest{Page: tt.page, Limit: tt.limit}
		if got := pr.Offset(); got != tt.want {
			t.Errorf("Offset() for page %d limit %d = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestRunPageMath(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		page, limit   int
		wantPageCount int
		wantHasMore   bool
	}{
		{"exact fit", 10, 1, 5, 2, true},
		{"last page", 10, 2, 5, 2, false},
		{"remainder rounds up", 11, 1, 5, 3, true},
		{"empty", 0, 1, 5, 0, false},
		{"single page", 3, 1, 5, 1, false},
		{"beyond last page", 10, 5, 5, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(context.Background(),
				PageRequest{Page: tt.page, Limit: tt.limit},
				func(ctx context.Context) (int64, error) { return tt.total, nil },
				func(ctx context.Context, limit, offset int) error { return nil },
			)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if res.PageCount != tt.wantPageCount {
				t.Errorf("PageCount = %d, want %d", res.PageCount, tt.wantPageCount)
			}
			if res.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", res.HasMore, tt.wantHasMore)
			}
		})
	}
}

func TestRunBothQueriesExecute(t *testing.T) {
	countRan := false
	pageRan := false
	gotLimit, gotOffset := 0, 0

	_, err := Run(context.Background(), PageRequest{Page: 3, Limit: 10},
		func(ctx context.Context) (int64, error) { countRan = true; return 100, nil },
		func(ctx context.Context, limit, offset int) error {
			pageRan = true
			gotLimit, gotOffset = limit, offset
			return nil
		},
	)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !countRan || !pageRan {
		t.Error("both queries must execute")
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("page query got limit=%d offset=%d, want 10/20", gotLimit, gotOffset)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	countErr := errors.New("count failed")
	pageErr := errors.New("page failed")

	_, err := Run(context.Background(), PageRequest{Page: 1, Limit: 5},
		func(ctx context.Context) (int64, error) { return 0, countErr },
		func(ctx context.Context, limit, offset int) error { return nil },
	)
	if !errors.Is(err, countErr) {
		t.Errorf("error = %v, want count error", err)
	}

	_, err = Run(context.Background(), PageRequest{Page: 1, Limit: 5},
		func(ctx context.Context) (int64, error) { return 0, nil },
		func(ctx context.Context, limit, offset int) error { return pageErr },
	)
	if !errors.Is(err, pageErr) {
		t.Errorf("error = %v, want page error", err)
	}
}

func TestNewListPayload(t *testing.T) {
	items := []string{"a", "b", "c"}
	p := NewListPayload(items, len(items), Result{Total: 10, PageCount: 4, HasMore: true})
	if p.Object != "list" {
		t.Errorf("Object = %q, want %q", p.Object, "list")
	}
	if p.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", p.ItemCount)
	}
	if !p.HasMore {
		t.Error("HasMore should carry over from the result")
	}
	if p.PageCount != 0 {
		t.Error("PageCount is only set explicitly for post listings")
	}
}
