package capture

import (
	"net/http"
	"strings"
)

// RedactedPlaceholder replaces sensitive header values before storage.
const RedactedPlaceholder = "[REDACTED]"

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
}

// redactHeaders flattens an http.Header into a single-valued map, replacing
// credential-bearing values. The original header is never stored verbatim.
func redactHeaders(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for name, values := range h {
		if _, sensitive := sensitiveHeaders[strings.ToLower(name)]; sensitive {
			out[name] = RedactedPlaceholder
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}
