package dualcoding

import (
	"errors"
	"fmt"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrMissingSource    = fmt.Errorf("%w: no source entry selected", ErrInvalidSelection)
	ErrDuplicateGroup   = fmt.Errorf("%w: more than one target chosen from the same group", ErrInvalidSelection)
)

// InvalidSelectionError explains which selection rule was violated. It
// matches ErrInvalidSelection and the specific sentinel with errors.Is.
type InvalidSelectionError struct {
	cause error
	Group conceptmap.Group
}

func (e *InvalidSelectionError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("%s (group %q)", e.cause, e.Group)
	}
	return e.cause.Error()
}

func (e *InvalidSelectionError) Unwrap() error { return e.cause }

func missingSource() error {
	return &InvalidSelectionError{cause: ErrMissingSource}
}

func duplicateGroup(g conceptmap.Group) error {
	return &InvalidSelectionError{cause: ErrDuplicateGroup, Group: g}
}

// validate enforces a present source and at most one target per group.
func validate(source *terminology.CatalogEntry, targets []conceptmap.TargetCandidate) error {
	if source == nil || source.Code == "" {
		return missingSource()
	}
	seen := make(map[conceptmap.Group]bool, len(targets))
	for _, t := range targets {
		if seen[t.Group] {
			return duplicateGroup(t.Group)
		}
		seen[t.Group] = true
	}
	return nil
}
