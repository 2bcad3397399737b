// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedHost is the sentinel error wrapped by UnsupportedHostError.
	ErrUnsupportedHost = errors.New("unsupported host platform")
	// ErrMissingArgument is the sentinel error wrapped by MissingArgumentError.
	ErrMissingArgument = errors.New("missing argument")
	// ErrInvalidPublishValue is the sentinel error wrapped by InvalidPublishValueError.
	ErrInvalidPublishValue = errors.New("invalid publish value")
)

type (
	// UnsupportedHostError is returned when the host operating system cannot
	// be mapped to one of the selectable build targets.
	UnsupportedHostError struct {
		GOOS string
	}

	// MissingArgumentError is returned in non-interactive mode when a value
	// that would otherwise be prompted for was not supplied.
	MissingArgumentError struct {
		Arguments []string
	}

	// InvalidPublishValueError is returned when the publish argument is not
	// one of the recognized boolean spellings.
	InvalidPublishValueError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnsupportedHostError) Error() string {
	return fmt.Sprintf("cannot pick a default build target for host %q (supported: windows, darwin, linux)", e.GOOS)
}

// Unwrap returns ErrUnsupportedHost for errors.Is() compatibility.
func (e *UnsupportedHostError) Unwrap() error { return ErrUnsupportedHost }

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("interaction is disabled and no value was given for: %s", strings.Join(e.Arguments, ", "))
}

// Unwrap returns ErrMissingArgument for errors.Is() compatibility.
func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// Error implements the error interface.
func (e *InvalidPublishValueError) Error() string {
	return fmt.Sprintf("invalid publish value %q (use true/false, yes/no, 1/0 or publish/build)", e.Value)
}

// Unwrap returns ErrInvalidPublishValue for errors.Is() compatibility.
func (e *InvalidPublishValueError) Unwrap() error { return ErrInvalidPublishValue }
