package oidc

import (
	"net/url"
	"strings"
)

// DefaultRoleClaim is the dotted claim path holding the role metadata.
const DefaultRoleClaim = "public_metadata.role"

// Identity is the result of a verified OIDC callback.
type Identity struct {
	Username string
	// SID is the identity provider's session ID, used for front channel logout.
	SID string
	// RoleMetadata is the raw value found at the role claim path, or nil when absent.
	RoleMetadata any
	// ReturnURL is where to send the browser after sign-in.
	ReturnURL string
}

// claimAt walks a dotted path through nested claim objects.
func claimAt(claims map[string]any, path []string) any {
	var cur any = claims
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = obj[key]; !ok {
			return nil
		}
	}

	return cur
}

func splitClaimPath(path string) []string {
	if strings.TrimSpace(path) == "" {
		path = DefaultRoleClaim
	}

	return strings.Split(path, ".")
}

// localReturnURL returns returnURL when it is a path on this site, and "/" otherwise.
// Browsers treat a backslash as a slash, so any backslash is rejected.
func localReturnURL(returnURL string) string {
	if strings.TrimSpace(returnURL) == "" || strings.ContainsAny(returnURL, "\\\r\n\t") {
		return "/"
	}

	u, err := url.Parse(returnURL)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	if !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return "/"
	}

	return returnURL
}
