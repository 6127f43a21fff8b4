package repo

import (
	"fmt"
	"strings"
)

// SummaryPlaceholder is the token a commit message template must contain for
// the generated change summary to be substituted in.
const SummaryPlaceholder = "{summary}"

// GenerateCommitMessage builds a human-readable commit message from a change
// set, e.g. "chore: add 2 files, update 1 file". When template contains the
// {summary} placeholder the summary is substituted into it; otherwise the
// default chore-prefixed message is returned. Never fails.
func GenerateCommitMessage(changes []FileChange, template string) string {
	var added, modified, deleted int
	for _, change := range changes {
		switch change.Type {
		case ChangeAdded:
			added++
		case ChangeModified:
			modified++
		case ChangeDeleted:
			deleted++
		}
	}

	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("add %d %s", added, pluralize(added)))
	}
	if modified > 0 {
		parts = append(parts, fmt.Sprintf("update %d %s", modified, pluralize(modified)))
	}
	if deleted > 0 {
		parts = append(parts, fmt.Sprintf("delete %d %s", deleted, pluralize(deleted)))
	}

	summary := strings.Join(parts, ", ")
	if summary == "" {
		summary = "no changes"
	}

	if template != "" && strings.Contains(template, SummaryPlaceholder) {
		return strings.ReplaceAll(template, SummaryPlaceholder, summary)
	}

	return "chore: " + summary
}

func pluralize(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
