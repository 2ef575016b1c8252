package reflection

import "strings"

// Sanitize drops every character outside [a-zA-Z0-9-].
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RecordID derives the record key of a push from its repository and first commit.
// It returns "" when either part sanitizes to nothing.
func RecordID(repositoryName, firstCommitID string) string {
	repo, commit := Sanitize(repositoryName), Sanitize(firstCommitID)
	if repo == "" || commit == "" {
		return ""
	}
	return repo + "-" + commit
}
