package weather

import (
	"errors"
	"fmt"
)

// ErrUpstream indicates a timeout or connection failure talking to the
// forecast provider. It is never retried; the caller re-issues the request.
var ErrUpstream = errors.New("weather service unreachable")

// SchemaError indicates the provider responded successfully but a required
// field was absent from the payload.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid provider response: missing %s", e.Field)
}
