package engine

import (
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("pincel.engine")

var (
	// ErrNoPlatform reports Create without a platform
	ErrNoPlatform = errors.New("no platform")

	// ErrAlreadyRunning reports a Run call while another is looping
	ErrAlreadyRunning = errors.New("application loop already running")

	// ErrInvalidConfig reports a configuration Validate rejected
	ErrInvalidConfig = errors.New("invalid config")
)
