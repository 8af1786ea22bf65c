//go:build cgo && cgotraceback

package main

// Symbolizes C frames in tracebacks and CPU profiles of the native path.
import _ "github.com/nsrip-dd/cgotraceback"

func init() {
	usingCgotraceback = true
}
