package models

import (
	"strconv"
	"strings"
)

// PriorityClass is the presentation class derived from a row's coerced
// priority value. Rendering itself belongs to the presentation layer, but
// the coercion rule lives here so that visual highlighting and
// [Table.SortByPriority] can never disagree.
type PriorityClass string

const (
	PriorityHigh   PriorityClass = "high"
	PriorityMedium PriorityClass = "medium"
	PriorityLow    PriorityClass = "low"
	PriorityNone   PriorityClass = "none"
)

// CoercePriority attempts the best-effort integer coercion of a stored
// priority value. ok is false for missing or non-numeric values; such rows
// sort after all rows with a valid priority and render unstyled.
func CoercePriority(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ClassifyPriority maps a stored priority value to its presentation class:
// 1 is high, 2 is medium, 3 is low, anything else (including uncoercible
// values) is none.
func ClassifyPriority(value string) PriorityClass {
	n, ok := CoercePriority(value)
	if !ok {
		return PriorityNone
	}
	switch n {
	case 1:
		return PriorityHigh
	case 2:
		return PriorityMedium
	case 3:
		return PriorityLow
	default:
		return PriorityNone
	}
}
