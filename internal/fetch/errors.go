// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import "fmt"

// FetchError reports a non-success HTTP status for one article. The response
// body is discarded rather than written to disk, so an upstream error page
// can never masquerade as article XML.
type FetchError struct {
	ID         string
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d from %s", e.ID, e.StatusCode, e.URL)
}
