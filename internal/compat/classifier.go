package compat

import (
	"regexp"
	"strings"
)

// Postgres/PostgREST error wording for an unknown column. There is no typed
// signal for this condition, so these patterns must follow the upstream
// message format.
var (
	schemaCachePattern = regexp.MustCompile(
		`(?i)Could not find the '([^']+)' column of 'applications' in the schema cache`,
	)
	undefinedColumnPattern = regexp.MustCompile(
		`(?i)column\s+(?:"?applications"?\.)?"?([a-zA-Z0-9_]+)"?(?:\s+of\s+relation\s+"?applications"?)?\s+does not exist`,
	)
)

// MissingColumn reports the column named by a missing-column error, lower
// cased to match the column constants.
func MissingColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	return MissingColumnFromMessage(err.Error())
}

func MissingColumnFromMessage(message string) (string, bool) {
	if m := schemaCachePattern.FindStringSubmatch(message); len(m) > 1 && m[1] != "" {
		return strings.ToLower(m[1]), true
	}
	if m := undefinedColumnPattern.FindStringSubmatch(message); len(m) > 1 && m[1] != "" {
		return strings.ToLower(m[1]), true
	}
	return "", false
}
