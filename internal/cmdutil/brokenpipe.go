package cmdutil

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err means stdout was closed by the reader,
// e.g. when piping into `head`.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
