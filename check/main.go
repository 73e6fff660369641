package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
	"golang.org/x/sys/unix"

	"github.com/zeebo/bitlib"
)

var (
	layout = flag.String("layout", "", "record layout, like flag=b,count=i5,id=x16,name=s32")
	file   = flag.String("file", "", "record file to decode with the layout")
	fuzz   = flag.Int("fuzz", 0, "number of random layouts to round trip")
	addr   = flag.String("http", "", "address to serve timing stats on")

	rng = pcg.New(uint64(time.Now().UnixNano()))
)

func intn(n int) int { return int(rng.Uint32n(uint32(n))) }

func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}

func main() {
	flag.Parse()

	if *addr != "" {
		go http.ListenAndServe(*addr, monhandler.Handler{})
	}

	defer stats()
	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run() error {
	if *file != "" {
		l, err := bitlib.ParseLayout(*layout)
		if err != nil {
			return errs.Wrap(err)
		}
		if err := dump(l, *file); err != nil {
			return errs.Wrap(err)
		}
	}

	for i := 0; i < *fuzz; i++ {
		if err := roundTrip(); err != nil {
			return errs.Wrap(err)
		}
	}

	return nil
}

// dump maps the record file and prints every field of the layout.
func dump(l bitlib.Layout, path string) (err error) {
	defer mon.Start().Stop(&err)

	fh, err := os.Open(path)
	if err != nil {
		return errs.Wrap(err)
	}
	defer fh.Close()

	fi, err := fh.Stat()
	if err != nil {
		return errs.Wrap(err)
	}
	if fi.Size() == 0 {
		return errs.New("%s: empty record file", path)
	}

	buf, err := unix.Mmap(int(fh.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return errs.Wrap(err)
	}
	defer unix.Munmap(buf)

	values, err := l.Decode(buf)
	if err != nil {
		return errs.Wrap(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	for i, f := range l {
		fmt.Fprintf(tw, "%s\t%v%d\t%v\n", f.Name, f.Kind, f.Bits, values[i])
	}
	return nil
}

var kinds = []bitlib.Kind{bitlib.Bool, bitlib.Int, bitlib.Bytes, bitlib.Hex, bitlib.String, bitlib.Date}

// randomField returns a random field and a value it can hold exactly.
func randomField(name string) (bitlib.Field, interface{}) {
	f := bitlib.Field{Name: name, Kind: kinds[intn(len(kinds))]}

	switch f.Kind {
	case bitlib.Bool:
		f.Bits = 1
		return f, intn(2) == 1

	case bitlib.Int:
		f.Bits = 1 + intn(bitlib.MaxIntBits)
		return f, int(rng.Uint32() & (1<<uint(f.Bits) - 1))

	case bitlib.Bytes:
		f.Bits = intn(64)
		v := make([]byte, (f.Bits+7)/8)
		for i := range v {
			v[i] = byte(rng.Uint32())
		}
		if r := f.Bits % 8; r != 0 {
			v[len(v)-1] &= bitlib.Mask(0, r)
		}
		return f, v

	case bitlib.Hex:
		n := intn(8)
		f.Bits = n * 8
		v := make([]byte, n)
		for i := range v {
			v[i] = byte(rng.Uint32())
		}
		return f, fmt.Sprintf("%X", v)

	case bitlib.String:
		n := intn(8)
		f.Bits = n * 8
		v := make([]byte, n)
		for i := range v {
			v[i] = 'a' + byte(intn(26))
		}
		return f, string(v)

	default:
		f.Bits = len(bitlib.DefaultDateLayout) * 8
		return f, time.Date(1900+intn(200), time.Month(1+intn(12)), 1+intn(28), 0, 0, 0, 0, time.UTC)
	}
}

func roundTrip() (err error) {
	defer mon.Start().Stop(&err)

	var l bitlib.Layout
	var values []interface{}
	for i, n := 0, 1+intn(20); i < n; i++ {
		f, v := randomField(fmt.Sprintf("f%d", i))
		l, values = append(l, f), append(values, v)
	}

	data, err := l.Encode(values)
	if err != nil {
		return errs.Wrap(err)
	}

	got, err := l.Decode(data)
	if err != nil {
		return errs.Wrap(err)
	}

	for i, f := range l {
		if !same(values[i], got[i]) {
			return errs.New("%s (%v%d): wrote %v read %v", f.Name, f.Kind, f.Bits, values[i], got[i])
		}
	}
	return nil
}

func same(a, b interface{}) bool {
	switch a := a.(type) {
	case []byte:
		bb, ok := b.([]byte)
		return ok && bytes.Equal(a, bb)
	case time.Time:
		bt, ok := b.(time.Time)
		return ok && a.Equal(bt)
	}
	return a == b
}
