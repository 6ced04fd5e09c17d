package practicum

import (
	"errors"
	"fmt"
)

// Kind discriminates every recoverable failure the poll cycle can produce.
// The monitor matches on it exhaustively at the loop boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCursor
	KindConnection
	KindUnexpectedStatus
	KindMalformedResponse
	KindServerRejected
	KindNotAMapping
	KindMissingKey
	KindWrongType
	KindMissingName
	KindUnknownStatus
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCursor:
		return "invalid_cursor"
	case KindConnection:
		return "connection"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindMalformedResponse:
		return "malformed_response"
	case KindServerRejected:
		return "server_rejected"
	case KindNotAMapping:
		return "not_a_mapping"
	case KindMissingKey:
		return "missing_key"
	case KindWrongType:
		return "wrong_type"
	case KindMissingName:
		return "missing_name"
	case KindUnknownStatus:
		return "unknown_status"
	default:
		return "unknown"
	}
}

// Error is the single discriminated error type for API and parsing failures.
// Only the fields relevant to the Kind are set.
type Error struct {
	Kind     Kind
	Endpoint string // unexpected status
	Status   int    // unexpected status (HTTP code)
	Code     string // server rejection code / unknown homework status
	Detail   string // missing key name, rejection text, cursor detail
	Err      error  // wrapped cause (connection, malformed response)
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidCursor:
		return fmt.Sprintf("invalid cursor: %s", e.Detail)
	case KindConnection:
		return fmt.Sprintf("connection to API failed: %v", e.Err)
	case KindUnexpectedStatus:
		return fmt.Sprintf("unexpected HTTP status %d from %s", e.Status, e.Endpoint)
	case KindMalformedResponse:
		return fmt.Sprintf("malformed API response: %v", e.Err)
	case KindServerRejected:
		return fmt.Sprintf("server rejected request: code=%s error=%s", e.Code, e.Detail)
	case KindNotAMapping:
		return "API response is not a JSON object"
	case KindMissingKey:
		return fmt.Sprintf("missing %q key in API response", e.Detail)
	case KindWrongType:
		return fmt.Sprintf("%q key in API response has wrong type", e.Detail)
	case KindMissingName:
		return "homework record has no homework_name"
	case KindUnknownStatus:
		return fmt.Sprintf("unknown homework status %q", e.Code)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown API error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain.
// Returns KindUnknown for errors that did not originate here.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}
