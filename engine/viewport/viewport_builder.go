package viewport

import "github.com/charmbracelet/log"

// SynchronizerBuilderOption is a functional option applied to a synchronizer during construction.
type SynchronizerBuilderOption func(*synchronizer)

// WithLogger sets the logger used for resize diagnostics.
func WithLogger(logger *log.Logger) SynchronizerBuilderOption {
	return func(s *synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}
