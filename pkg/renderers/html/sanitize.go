package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessage strips markup from validation and server messages. Server
// messages reach the page verbatim otherwise.
func sanitizeMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(messageSanitizer().Sanitize(trimmed))
}

func messageSanitizer() *bluemonday.Policy {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return messagePolicy
}
