package service

import (
	"regexp"
	"strings"
)

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:markdown|md)?\\s*\n")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanAnswer quita BOM y un fence ``` que envuelva toda la respuesta.
// Los fences internos (tablas de código, ejemplos) se conservan.
func cleanAnswer(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	if fenceStartRe.MatchString(s) && fenceEndRe.MatchString(s) && strings.Count(s, "```") == 2 {
		s = fenceStartRe.ReplaceAllString(s, "")
		s = fenceEndRe.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}
