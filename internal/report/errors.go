package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when the input contains no lines or rows at
// all. Nothing downstream runs for that document.
var ErrEmptyInput = errors.New("input contains no rows")

// MissingMarkerError is returned when one or more expected section markers
// could not be located. It carries which markers were and were not found
// so the caller can retry under a different document-family assumption.
type MissingMarkerError struct {
	Found   []string
	Missing []string
}

func (e *MissingMarkerError) Error() string {
	msg := fmt.Sprintf("section markers not found: %s", strings.Join(e.Missing, ", "))
	if len(e.Found) > 0 {
		msg += fmt.Sprintf(" (found: %s)", strings.Join(e.Found, ", "))
	}
	return msg
}

// IsMissingMarker reports whether err is a MissingMarkerError.
func IsMissingMarker(err error) bool {
	var mm *MissingMarkerError
	return errors.As(err, &mm)
}
