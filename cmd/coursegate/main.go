// Command coursegate serves the course application behind OIDC sign-in and role guarded
// views, and checks route policies from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
