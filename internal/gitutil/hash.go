// Package gitutil provides git plumbing helpers shared by the local
// repository state and the GitHub sync bridge.
package gitutil

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// BlobSHA computes the git blob hash for content, the same hash GitHub
// reports in tree listings. Local and remote content can therefore be
// compared without fetching file bodies.
func BlobSHA(content string) string {
	return plumbing.ComputeHash(plumbing.BlobObject, []byte(content)).String()
}
