package bitlib

import (
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncoding is the character encoding used by ReadString and
// WriteString. It is ASCII compatible and maps every byte to a rune.
var DefaultEncoding encoding.Encoding = charmap.ISO8859_1

// ReadHex reads n bits and returns them as upper case hex text.
func (b *Buffer) ReadHex(n int) (string, error) {
	data, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(data)), nil
}

// WriteHex decodes the hex text s and writes n bits of it, left padded. Text
// of odd length is treated as if it had a leading 0.
func (b *Buffer) WriteHex(s string, n int) error {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return Error.Wrap(err)
	}
	return b.WriteBytes(data, n)
}

// ReadString reads n bits and decodes them with DefaultEncoding.
func (b *Buffer) ReadString(n int) (string, error) {
	return b.ReadStringEncoding(n, nil)
}

// ReadStringEncoding reads n bits and decodes them with enc, or with
// DefaultEncoding if enc is nil.
func (b *Buffer) ReadStringEncoding(n int, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = DefaultEncoding
	}
	data, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", Error.Wrap(err)
	}
	return string(out), nil
}

// WriteString encodes s with DefaultEncoding and writes n bits of it, left
// padded.
func (b *Buffer) WriteString(s string, n int) error {
	return b.WriteStringEncoding(s, n, nil, true)
}

// WriteStringEncoding encodes s with enc, or DefaultEncoding if enc is nil,
// and writes n bits of it. See WriteBytesPad for padding.
func (b *Buffer) WriteStringEncoding(s string, n int, enc encoding.Encoding, padBefore bool) error {
	if enc == nil {
		enc = DefaultEncoding
	}
	data, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return Error.Wrap(err)
	}
	return b.WriteBytesPad(data, n, padBefore)
}

// ReadDate reads n bits of text and parses it with the time layout. If the
// text does not parse, the failure is reported to Log and ok is false. An
// empty layout means DefaultDateLayout.
func (b *Buffer) ReadDate(n int, layout string) (t time.Time, ok bool, err error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	text, err := b.ReadString(n)
	if err != nil {
		return time.Time{}, false, err
	}
	t, perr := time.Parse(layout, text)
	if perr != nil {
		Log.Printf("unable to parse date %q with layout %q: %v", text, layout, perr)
		return time.Time{}, false, nil
	}
	return t, true, nil
}

// WriteDate formats t with the time layout and writes the text using all of
// its bits. An empty layout means DefaultDateLayout.
func (b *Buffer) WriteDate(t time.Time, layout string) error {
	if layout == "" {
		layout = DefaultDateLayout
	}
	text := t.Format(layout)
	return b.WriteString(text, len(text)*8)
}
