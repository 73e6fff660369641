package bitlib

import (
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/mon"
)

// Kind is the type of a field in a record layout.
type Kind int

const (
	Bool Kind = iota
	Int
	Bytes
	Hex
	String
	Date
)

var kindLetters = map[byte]Kind{
	'b': Bool,
	'i': Int,
	'y': Bytes,
	'x': Hex,
	's': String,
	'd': Date,
}

func (k Kind) String() string {
	for l, lk := range kindLetters {
		if lk == k {
			return string(l)
		}
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Field describes one field of a record.
type Field struct {
	Name       string
	Kind       Kind
	Bits       int
	DateLayout string // only for Date fields, empty means DefaultDateLayout
}

// Layout is the ordered list of fields in a record.
type Layout []Field

// ParseLayout parses a comma separated list of fields. Each field is
// written as [name=]<kind><bits>, where kind is one of b (bool), i (int),
// y (bytes), x (hex), s (string) or d (date). Bools may leave out the bits,
// as may dates, which then default to the length of DefaultDateLayout.
func ParseLayout(s string) (Layout, error) {
	var l Layout
	for i, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		f := Field{Name: "f" + strconv.Itoa(i)}
		if eq := strings.IndexByte(item, '='); eq >= 0 {
			orig := item
			f.Name, item = item[:eq], item[eq+1:]
			if f.Name == "" || item == "" {
				return nil, Error.New("invalid field %q", orig)
			}
		}

		kind, ok := kindLetters[item[0]]
		if !ok {
			return nil, Error.New("unknown field kind %q in %q", item[0], item)
		}
		f.Kind = kind

		switch digits := item[1:]; {
		case digits == "" && kind == Bool:
			f.Bits = 1
		case digits == "" && kind == Date:
			f.Bits = len(DefaultDateLayout) * 8
		default:
			bits, err := strconv.Atoi(digits)
			if err != nil || bits < 0 {
				return nil, Error.New("invalid width in %q", item)
			}
			f.Bits = bits
		}

		if err := f.validate(); err != nil {
			return nil, err
		}
		l = append(l, f)
	}
	return l, nil
}

func (f Field) validate() error {
	switch {
	case f.Kind == Bool && f.Bits != 1:
		return WidthError.New("bool field %q must be 1 bit", f.Name)
	case f.Kind == Int && (f.Bits < 1 || f.Bits > MaxIntBits):
		return WidthError.New("int field %q width %d out of range [1, %d]", f.Name, f.Bits, MaxIntBits)
	case f.Bits < 0:
		return WidthError.New("field %q has negative width", f.Name)
	}
	return nil
}

// Bits returns the total width of the layout.
func (l Layout) Bits() (n int) {
	for _, f := range l {
		n += f.Bits
	}
	return n
}

// Decode reads every field of the layout from data in order. Values are
// bool, int, []byte, string (for hex and string fields) and time.Time. Dates
// that fail to parse decode as nil.
func (l Layout) Decode(data []byte) (values []interface{}, err error) {
	defer mon.Start().Stop(&err)

	b := New(data)
	values = make([]interface{}, 0, len(l))
	for _, f := range l {
		v, err := f.read(b)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		values = append(values, v)
	}
	return values, nil
}

func (f Field) read(b *Buffer) (interface{}, error) {
	switch f.Kind {
	case Bool:
		return b.ReadBool()
	case Int:
		return b.ReadInt(f.Bits)
	case Bytes:
		return b.ReadBytes(f.Bits)
	case Hex:
		return b.ReadHex(f.Bits)
	case String:
		return b.ReadString(f.Bits)
	case Date:
		t, ok, err := b.ReadDate(f.Bits, f.DateLayout)
		if err != nil || !ok {
			return nil, err
		}
		return t, nil
	}
	return nil, Error.New("field %q has unknown kind %v", f.Name, f.Kind)
}

// Encode writes values, one per field, into a fresh buffer of l.Bits() bits
// and returns its contents.
func (l Layout) Encode(values []interface{}) (data []byte, err error) {
	defer mon.Start().Stop(&err)

	if len(values) != len(l) {
		return nil, Error.New("got %d values for %d fields", len(values), len(l))
	}

	b := NewSize(l.Bits())
	for i, f := range l {
		if err := f.write(b, values[i]); err != nil {
			return nil, Error.Wrap(err)
		}
	}
	return b.Data(), nil
}

func (f Field) write(b *Buffer, v interface{}) error {
	switch v := v.(type) {
	case bool:
		if f.Kind == Bool {
			return b.WriteBool(v)
		}
	case int:
		if f.Kind == Int {
			return b.WriteInt(v, f.Bits)
		}
	case []byte:
		if f.Kind == Bytes {
			return b.WriteBytes(v, f.Bits)
		}
	case string:
		switch f.Kind {
		case Hex:
			return b.WriteHex(v, f.Bits)
		case String:
			return b.WriteString(v, f.Bits)
		}
	case time.Time:
		if f.Kind == Date {
			return f.writeDate(b, v)
		}
	case nil:
		if f.Kind == Date {
			b.AddCursor(f.Bits)
			return nil
		}
	}
	return Error.New("field %q of kind %v cannot hold %T", f.Name, f.Kind, v)
}

// writeDate writes the formatted date into exactly f.Bits bits.
func (f Field) writeDate(b *Buffer, t time.Time) error {
	layout := f.DateLayout
	if layout == "" {
		layout = DefaultDateLayout
	}
	return b.WriteStringEncoding(t.Format(layout), f.Bits, nil, false)
}
