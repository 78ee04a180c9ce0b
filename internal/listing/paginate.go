package listing

import (
	"context"
	"strconv"
	"sync"
)

// Page size bounds enforced on every list endpoint.
const (
	DefaultLimit = 5
	MaxLimit     = 50
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of documents to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NormalizePage parses and clamps the page and limit request parameters.
// A missing, zero or unparsable limit becomes the default; the upper bound
// is enforced here. Pages start at 1.
func NormalizePage(pageStr, limitStr string) PageRequest {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Result carries the pagination outcome of one list request.
type Result struct {
	// Total is the number of documents matching the filter.
	Total int64
	// PageCount is ceil(Total / Limit).
	PageCount int
	// HasMore is true iff the requested page precedes the last page.
	HasMore bool
}

// CountFunc counts all documents matching the filter.
type CountFunc func(ctx context.Context) (int64, error)

// PageFunc fetches one bounded, sorted, offset page of documents.
type PageFunc func(ctx context.Context, limit, offset int) error

// Run executes the count query and the page query concurrently and waits for
// both. The page results land wherever the PageFunc writes them; Run returns
// the derived pagination result.
func Run(ctx context.Context, req PageRequest, count CountFunc, page PageFunc) (Result, error) {
	var (
		wg       sync.WaitGroup
		total    int64
		countErr error
		pageErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		total, countErr = count(ctx)
	}()
	go func() {
		defer wg.Done()
		pageErr = page(ctx, req.Limit, req.Offset())
	}()
	wg.Wait()

	if countErr != nil {
		return Result{}, countErr
	}
	if pageErr != nil {
		return Result{}, pageErr
	}

	pageCount := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return Result{
		Total:     total,
		PageCount: pageCount,
		HasMore:   req.Page < pageCount,
	}, nil
}

// ListPayload is the uniform list envelope. Its shape is identical across
// all five resource types; post listings additionally carry the page count.
type ListPayload struct {
	Object    string      `json:"object"`
	HasMore   bool        `json:"has_more"`
	ItemCount int         `json:"item_count"`
	PageCount int         `json:"pageCount,omitempty"`
	Data      interface{} `json:"data"`
}

// NewListPayload builds the list envelope. itemCount is the length of the
// returned page, not the total match count.
func NewListPayload(data interface{}, itemCount int, res Result) ListPayload {
	return ListPayload{
		Object:    "list",
		HasMore:   res.HasMore,
		ItemCount: itemCount,
		Data:      data,
	}
}
