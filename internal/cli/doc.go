// Package cli turns command-line arguments into an app.Config. It validates
// flag values and reports usage errors as an ExitError carrying the process
// exit code.
package cli
