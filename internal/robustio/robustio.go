// Package robustio wraps I/O operations that are prone to transient
// failures on some platforms. On the platforms Bartender targets the
// wrappers are direct calls; the indirection keeps every read site on
// one convention.
package robustio

import "os"

// ReadFile is like os.ReadFile.
func ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}
