// Package bitlib provides a bit addressable cursor over a fixed size byte
// buffer. Fields of any bit width are read and written in document order,
// most significant bit first, without the caller handling alignment.
package bitlib

import (
	"log"
	"os"

	"github.com/zeebo/errs"
)

var (
	// Error is the class of general errors returned by this package.
	Error = errs.Class("bitlib")

	// WidthError is returned when a field width is invalid for the accessor.
	// It signals misuse of the api rather than bad data.
	WidthError = errs.Class("bitlib width")

	// RangeError is returned when an access would touch bytes outside of
	// the buffer.
	RangeError = errs.Class("bitlib range")
)

// Log receives reports of recoverable failures, like unparsable dates.
var Log = log.New(os.Stderr, "bitlib: ", log.LstdFlags)

const (
	// MaxIntBits is the widest integer field supported by ReadInt and WriteInt.
	MaxIntBits = 31

	// DefaultDateLayout is the time layout used when none is provided.
	DefaultDateLayout = "20060102"
)

// byteLen returns the number of bytes required to hold n bits.
func byteLen(n int) int { return (n + 7) / 8 }
