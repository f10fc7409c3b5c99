package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidImport is returned when a bulk import is rejected as a whole.
var ErrInvalidImport = errors.New("import contains invalid items")

// InvalidImportError lists the ids of the items that made a bulk import fail.
// Nothing of the batch is stored when it is returned.
type InvalidImportError struct {
	// Kind is "couriers" or "orders".
	Kind string
	IDs  []int64
	// Causes holds one error per rejected item, in the order of IDs.
	Causes []error
}

func newInvalidImportError(kind string) *InvalidImportError {
	return &InvalidImportError{Kind: kind}
}

func (e *InvalidImportError) add(id int64, cause error) {
	e.IDs = append(e.IDs, id)
	e.Causes = append(e.Causes, cause)
}

func (e *InvalidImportError) empty() bool {
	return len(e.IDs) == 0
}

func (e *InvalidImportError) Error() string {
	ids := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return fmt.Sprintf("%s: %s [%s]", ErrInvalidImport, e.Kind, strings.Join(ids, ", "))
}

func (e *InvalidImportError) Unwrap() error {
	return ErrInvalidImport
}

// Cause returns the rejection reason of the item with id.
func (e *InvalidImportError) Cause(id int64) error {
	if i := slices.Index(e.IDs, id); i >= 0 {
		return e.Causes[i]
	}
	return nil
}
