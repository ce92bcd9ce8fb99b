package repository

import (
	"fmt"
	"strings"
)

// UpdateSet accumulates column/value pairs for a partial UPDATE. Only columns
// explicitly Set are touched, so a PATCH never clobbers omitted fields.
type UpdateSet struct {
	cols []string
	args []any
}

func NewUpdateSet() *UpdateSet {
	return &UpdateSet{}
}

func (s *UpdateSet) Set(column string, value any) *UpdateSet {
	s.cols = append(s.cols, column)
	s.args = append(s.args, value)
	return s
}

func (s *UpdateSet) Empty() bool {
	return s == nil || len(s.cols) == 0
}

func (s *UpdateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cols)
}

// Clause renders the SET list with placeholders starting at firstArg and
// returns the positional args in matching order.
func (s *UpdateSet) Clause(firstArg int) (string, []any) {
	if s.Empty() {
		return "", nil
	}
	parts := make([]string, 0, len(s.cols))
	for i, col := range s.cols {
		parts = append(parts, fmt.Sprintf("%s = $%d", col, firstArg+i))
	}
	return strings.Join(parts, ", "), s.args
}
