// Package ekgbeat holds the input helpers shared by the ekgbeat commands and
// libraries: opening local, compressed, and Google Storage inputs, and sniffing
// the delimiter of columnar sample files.
package ekgbeat

import "errors"

var (
	// ErrInputUnavailable is returned when a source cannot be opened or read.
	ErrInputUnavailable = errors.New("input unavailable")

	// ErrOutputUnavailable is returned when a destination cannot be created.
	ErrOutputUnavailable = errors.New("output unavailable")
)
