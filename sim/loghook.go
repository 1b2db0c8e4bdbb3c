package sim

import (
	"log"
)

// A LogHook is a hook that writes what it observes to a logger.
type LogHook interface {
	Hook
}

// LogHookBase provides the logger shared by LogHooks.
type LogHookBase struct {
	*log.Logger
}

// MakeLogHookBase returns a LogHookBase that prints to logger, or to the
// standard logger if logger is nil.
func MakeLogHookBase(logger *log.Logger) LogHookBase {
	if logger == nil {
		logger = log.Default()
	}

	return LogHookBase{Logger: logger}
}
