package visits

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the statistics file does not exist or is unreadable.
// The session cannot proceed; callers must surface the error instead of
// continuing with partial data.
var ErrNotFound = errors.New("statistics file not found")

// ParseKind classifies what went wrong while parsing the statistics file.
type ParseKind int

const (
	// KindMalformed covers structural CSV problems: wrong delimiter,
	// inconsistent column counts, empty file.
	KindMalformed ParseKind = iota

	// KindBadDate is an unparseable value in the date column.
	KindBadDate

	// KindBadNumber is an unparseable or out-of-range integer column value.
	KindBadNumber

	// KindMissingColumn means a required header column is absent.
	KindMissingColumn
)

// ParseError describes a load failure with enough detail to locate the bad
// input. Line is 1-based counting the header row; it is 0 when the problem is
// not tied to a specific line (e.g. a missing column).
type ParseError struct {
	Path  string
	Line  int
	Field string
	Kind  ParseKind
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("parse %s line %d, column %q: %v", e.Path, e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	case e.Field != "":
		return fmt.Sprintf("parse %s, column %q: %v", e.Path, e.Field, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UserMessage is a user-facing rendition of an error with a support code.
// Clients can quote the code when reporting a problem.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// MapError converts a technical error into a user-facing message.
// Unknown errors map to ERR000 with a generic message so internal details are
// never leaked to clients.
func MapError(err error) UserMessage {
	if errors.Is(err, ErrNotFound) {
		return UserMessage{
			Message: "The statistics file could not be found.",
			Action:  "Check CLINIC_DATA_FILE points at the consolidated CSV.",
			Code:    "DATA001",
		}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		switch pe.Kind {
		case KindBadDate:
			return UserMessage{
				Message: "The statistics file contains an invalid date.",
				Action:  "Use YYYY-MM-DD or DD/MM/YYYY in the Data column.",
				Code:    "DATA003",
			}
		case KindBadNumber:
			return UserMessage{
				Message: "The statistics file contains an invalid number.",
				Action:  "Ano, Mes and Quantidade must be plain non-negative integers.",
				Code:    "DATA004",
			}
		case KindMissingColumn:
			return UserMessage{
				Message: "The statistics file is missing a required column.",
				Action:  "Expected header: Data;Ano;Mes;Cliente;Procedimento;Quantidade.",
				Code:    "DATA005",
			}
		default:
			return UserMessage{
				Message: "The statistics file could not be parsed.",
				Action:  "Ensure the file is semicolon-delimited CSV with a header row.",
				Code:    "DATA002",
			}
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred.",
		Action:  "Please try again.",
		Code:    "ERR000",
	}
}
