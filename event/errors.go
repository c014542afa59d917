package event

import (
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("pincel.event")

var (
	// ErrCodeOutOfRange reports a code at or above the registry capacity
	ErrCodeOutOfRange = errors.New("event code out of range")

	// ErrNilHandler reports a registration without a handler
	ErrNilHandler = errors.New("nil event handler")

	// ErrInvalidCapacity reports a registry capacity that cannot hold the system codes
	ErrInvalidCapacity = errors.New("invalid registry capacity")
)
