package client

import (
	"errors"
	"fmt"
)

// ErrNetwork marks transport-level failures: the request never produced a
// decodable response. Surfaced to the user as a generic connection
// notice; never retried automatically.
var ErrNetwork = errors.New("error de conexión con el servidor")

// CollaboratorError is a transport-level success whose envelope reported
// failure (wrong credentials, not found, platform-side validation). The
// collaborator's message is surfaced verbatim when present.
type CollaboratorError struct {
	Message string
}

func (e *CollaboratorError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "la operación falló en el servidor"
}

func networkErr(err error) error {
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
