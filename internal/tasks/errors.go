package tasks

import (
	"errors"
	"fmt"
)

// ErrValidation is the parent of every list validation failure.
var ErrValidation = errors.New("validation failed")

var (
	ErrTitleRequired = fmt.Errorf("%w: list title is required", ErrValidation)
	ErrNoWords       = fmt.Errorf("%w: at least one word is required", ErrValidation)
)
