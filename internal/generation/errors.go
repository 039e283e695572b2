package generation

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPrompt is the validation error for a blank or whitespace-only prompt.
	ErrEmptyPrompt = errors.New("generation: prompt is empty")

	// ErrRequestPending is returned when a submit arrives while the instance is still Pending.
	ErrRequestPending = errors.New("generation: a request is already pending")

	// ErrInputLocked is returned by prompt setters while a request is pending.
	ErrInputLocked = errors.New("generation: prompt input is locked while a request is pending")

	ErrUnknownLanguage     = errors.New("generation: unknown language")
	ErrLanguageUnsupported = errors.New("generation: only the code generator takes a language")
	ErrMalformedResponse   = errors.New("generation: malformed response")
	ErrClosed              = errors.New("generation: generator is closed")
)

// TransportError reports that the exchange with the remote service did not complete.
// It carries no service-provided message.
type TransportError struct {
	Kind Kind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generate %s: transport: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError reports a structured error returned by the remote service.
type ApplicationError struct {
	Kind    Kind
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("generate %s: %s", e.Kind, e.Message)
}

func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

func IsApplicationError(err error) bool {
	var aErr *ApplicationError
	return errors.As(err, &aErr)
}
