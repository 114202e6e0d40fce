package respond

import (
	"regexp"
)

var (
	// anthropicKeyPattern must run before openaiKeyPattern, which also matches its prefix.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// bearerPattern catches credentials echoed back in provider error bodies.
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[^\s"']+`)
)

// SanitizeError returns the error message with API keys masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = bearerPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
