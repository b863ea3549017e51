package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"inventory-reconciler/core/mapping"
)

// ConfigurationError is returned when the mapping is structurally invalid.
type ConfigurationError = mapping.ConfigurationError

// ErrBusy is returned by Runner when a reconciliation is already in flight.
var ErrBusy = errors.New("a reconciliation is already running")

// MissingColumnError lists every mapped column absent from the input tables.
type MissingColumnError struct {
	Source []string
	Target []string
}

func (e *MissingColumnError) Error() string {
	var parts []string
	if len(e.Source) > 0 {
		parts = append(parts, fmt.Sprintf("source missing: [%s]", strings.Join(e.Source, ", ")))
	}
	if len(e.Target) > 0 {
		parts = append(parts, fmt.Sprintf("target missing: [%s]", strings.Join(e.Target, ", ")))
	}
	return "missing columns: " + strings.Join(parts, "; ")
}
