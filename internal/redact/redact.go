// Package redact strips credentials and other sensitive values from strings
// before they are logged. Errors coming back from the datastore, the broker or
// the token parser can embed connection strings, bearer tokens and user emails.
package redact

import "regexp"

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Order matters: URLs with credentials must be rewritten before the generic
// host rule sees them.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres(?:ql)?|amqps?|redis|rediss)://[^@\s]+@`),
		"$1://[REDACTED_CREDENTIAL]@",
	},
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		"[REDACTED_JWT]",
	},
	{
		regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9_\-.~+/]+=*`),
		"${1}[REDACTED_TOKEN]",
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd|secret)(\s*[=:]\s*)['"]?[^'"&\s]+`),
		"$1$2[REDACTED_CREDENTIAL]",
	},
	{
		regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`),
		"[REDACTED_HASH]",
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		"[REDACTED_EMAIL]",
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
