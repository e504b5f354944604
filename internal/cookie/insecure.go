//go:build insecurecookie

package cookie

// secureCookie is disabled for local development over plain http.
func secureCookie() bool {
	return false
}
