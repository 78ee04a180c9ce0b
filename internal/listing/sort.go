package listing

import (
	"fmt"
	"strings"
)

// Sort is a single-key sort directive. Exactly one key is ever active.
type Sort struct {
	Field string
	Desc  bool
}

// ResolveSort turns an "order" request parameter into a sort directive. A
// leading minus sign selects descending order on the remaining field name;
// otherwise the whole string sorts ascending. An empty order falls back to
// the resource default.
func ResolveSort(order, defaultOrder string) Sort {
	if order == "" {
		order = defaultOrder
	}
	if strings.HasPrefix(order, "-") {
		return Sort{Field: order[1:], Desc: true}
	}
	return Sort{Field: order}
}

// OrderClause renders the directive as a SQL order-by expression. The field
// name is mapped from its API spelling to the column name and validated, so
// request input never lands in query text unchecked.
func (s Sort) OrderClause() (string, error) {
	col, err := toColumn(s.Field)
	if err != nil {
		return "", fmt.Errorf("invalid order field: %w", err)
	}
	if s.Desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}
