package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

// InconsistentSelectionError is returned when a cascading filter leaves no
// options for a dependent field.
type InconsistentSelectionError struct {
	Field   dal.Column
	Filters map[dal.Column]string
}

func (e *InconsistentSelectionError) Error() string {
	parts := make([]string, 0, len(e.Filters))
	for c, v := range e.Filters {
		parts = append(parts, fmt.Sprintf("%s=%q", c, v))
	}
	sort.Strings(parts)
	return fmt.Sprintf("no matching %s for selection %s", e.Field, strings.Join(parts, ", "))
}

// RangeError is returned when a numeric field is outside its admissible range.
// Max is ignored when HasMax is false.
type RangeError struct {
	Field  dal.Column
	Value  int
	Min    int
	Max    int
	HasMax bool
}

func (e *RangeError) Error() string {
	if e.HasMax {
		return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
	}
	return fmt.Sprintf("%s must be at least %d, got %d", e.Field, e.Min, e.Value)
}
