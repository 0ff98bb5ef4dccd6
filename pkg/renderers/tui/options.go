package tui

import "go.uber.org/zap"

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling session logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:  "→ ",
	ErrorPrefix: "✗ ",
}

// Option configures the TUI session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxRounds caps how many submit rounds Run performs. Zero means no cap.
func WithMaxRounds(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxRounds = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
