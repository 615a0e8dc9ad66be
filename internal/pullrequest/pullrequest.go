// Package pullrequest derives label requests from pull-request metadata.
package pullrequest

import (
	"regexp"
	"strings"
)

var issueIDPattern = regexp.MustCompile(`[A-Z]+-\d+`)

// ExtractIssueID returns the first issue identifier (e.g. "ENG-123") in title, or "".
func ExtractIssueID(title string) string {
	return issueIDPattern.FindString(title)
}

// BranchMatches reports whether branch starts with one of prefixes.
// An empty prefix list matches every branch.
func BranchMatches(branch string, prefixes []string) bool {
	active := 0
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		active++
		if strings.HasPrefix(branch, p) {
			return true
		}
	}
	return active == 0
}

// ResolveLabel maps a short label name to its alias target, case-insensitively.
// Names without an alias are returned unchanged.
func ResolveLabel(name string, aliases map[string]string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	for alias, target := range aliases {
		if strings.ToLower(strings.TrimSpace(alias)) == key && target != "" {
			return target
		}
	}
	return name
}

// SplitList splits a comma or newline separated list, dropping blanks.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
