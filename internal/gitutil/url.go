package gitutil

import (
	"regexp"

	"gitlite.dev/gitlite/internal/errors"
)

// remoteURLPattern matches hosted HTTPS remote URLs of the form
// https://<host>/<owner>/<repo> with an optional .git suffix.
var remoteURLPattern = regexp.MustCompile(`^https://[^/]+/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseRemoteURL extracts the owner and repository name from a remote URL.
// Returns ErrInvalidRemoteURL for any URL that does not match the expected
// https://<host>/<owner>/<repo>[.git] shape.
func ParseRemoteURL(remoteURL string) (owner, repo string, err error) {
	m := remoteURLPattern.FindStringSubmatch(remoteURL)
	if m == nil {
		return "", "", errors.ErrInvalidRemoteURL
	}
	return m[1], m[2], nil
}
