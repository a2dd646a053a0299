package capture

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// maxBodyBytes is the per-body storage ceiling. Larger payloads are replaced
// with a truncation placeholder carrying a short preview.
const maxBodyBytes = 10 * 1024

// previewBytes bounds the preview kept for truncated payloads.
const previewBytes = 1024

// captureBody converts raw payload bytes into a storable value. It never
// fails: JSON payloads are decoded, plain text is kept as a string, and
// anything else degrades to a placeholder noting the content type.
func captureBody(raw []byte, contentType string) any {
	if len(raw) == 0 {
		return nil
	}

	if len(raw) > maxBodyBytes {
		return map[string]any{
			"truncated":   true,
			"preview":     sanitizePreview(raw[:previewBytes]),
			"contentType": contentType,
		}
	}

	trimmed := bytes.TrimSpace(raw)
	if looksLikeJSON(trimmed) {
		var v any
		if err := json.Unmarshal(trimmed, &v); err == nil {
			return v
		}
	}

	if utf8.Valid(raw) {
		return string(raw)
	}

	return map[string]any{
		"unparsed":    true,
		"contentType": contentType,
	}
}

func looksLikeJSON(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	switch b[0] {
	case '{', '[', '"', 't', 'f', 'n', '-':
		return true
	}
	return b[0] >= '0' && b[0] <= '9'
}

func sanitizePreview(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}
