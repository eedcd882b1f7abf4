// Package pipeline orchestrates the staged run described in spec §5: tile
// decode, mosaic assembly, overlay fetch, overlay rasterization, chunk
// build and region write.
package pipeline

import "fmt"

// Kind names one of the error kinds of spec §7 (a label, not a Go type).
type Kind string

const (
	ConfigError                Kind = "ConfigError"
	IoError                    Kind = "IoError"
	TileDecodeError            Kind = "TileDecodeError"
	InconsistentTileResolution Kind = "InconsistentTileResolution"
	BoundsError                Kind = "BoundsError"
	OverlayFetchError          Kind = "OverlayFetchError"
	OverlayRasterizeError      Kind = "OverlayRasterizeError"
	RegionWriteError           Kind = "RegionWriteError"
)

// Error is the user-visible failure contract of spec §7: a kind and a
// message, rendered on stderr as "ERROR[<kind>]: <message>".
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any; not part of the rendered message
}

func (e *Error) Error() string {
	return fmt.Sprintf("ERROR[%s]: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap builds an *Error of kind, with msg prefixed to err's text.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf("%s: %v", msg, err), Err: err}
}

// ExitCode maps an error to the process exit code of spec §6: 1 for user
// error (config/bounds), 2 for I/O or network failure, 3 for data
// inconsistency. Errors that are not *Error (unexpected internal failures)
// get 2, matching an I/O-class failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	pe, ok := err.(*Error)
	if !ok {
		return 2
	}
	switch pe.Kind {
	case ConfigError, BoundsError:
		return 1
	case IoError, OverlayFetchError, RegionWriteError:
		return 2
	case TileDecodeError, InconsistentTileResolution, OverlayRasterizeError:
		return 3
	default:
		return 2
	}
}
