package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// GenericMessage is shown when a failure carries no service message.
const GenericMessage = "An error occurred"

// Kind classifies a remote failure.
type Kind string

const (
	// KindNetwork means the request could not complete.
	KindNetwork Kind = "network"
	// KindService means the service answered with a non-2xx status.
	KindService Kind = "service"
	// KindMalformed means a 2xx response body did not match the task shape.
	KindMalformed Kind = "malformed"
)

// Failure is the error returned by every Client operation.
type Failure struct {
	Kind    Kind
	Op      Op
	Status  int    // HTTP status, zero for network failures
	Message string // message from the service error payload, if any
	Err     error  // underlying cause
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindService:
		if f.Message != "" {
			return fmt.Sprintf("%s: service failure (status %d): %s", f.Op, f.Status, f.Message)
		}
		return fmt.Sprintf("%s: service failure (status %d)", f.Op, f.Status)
	case KindMalformed:
		return fmt.Sprintf("%s: malformed response: %v", f.Op, f.Err)
	default:
		return fmt.Sprintf("%s: network failure: %v", f.Op, f.Err)
	}
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}

// UserMessage converts an error into the single line shown to the user.
// Failures show the service message when there is one and GenericMessage
// otherwise; any other error shows its own text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		if f.Message != "" {
			return f.Message
		}
		return GenericMessage
	}
	return err.Error()
}

// serviceMessage extracts the message from a structured error payload.
func serviceMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			return msg
		}
	}
	return ""
}
