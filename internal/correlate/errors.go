package correlate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoNumericColumns indicates the dataset has no numeric attribute to analyze.
	ErrNoNumericColumns = errors.New("dataset has no numeric columns")
	// ErrMissingTargetAttribute indicates the requested target is not a numeric column.
	ErrMissingTargetAttribute = errors.New("target attribute is not a numeric column")
)

// MissingTargetError carries the requested target and the numeric attributes
// that could have been chosen instead.
type MissingTargetError struct {
	Target    string
	Available []string
}

func (e *MissingTargetError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("target '%s' not found among numeric columns", e.Target)
	}
	return fmt.Sprintf("target '%s' not found among numeric columns (available: %s)", e.Target, strings.Join(e.Available, ", "))
}

func (e *MissingTargetError) Is(target error) bool { return target == ErrMissingTargetAttribute }

// Recoverable reports whether err is a condition the caller should show as a
// warning and skip rendering for, rather than fail on.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNoNumericColumns) || errors.Is(err, ErrMissingTargetAttribute)
}
