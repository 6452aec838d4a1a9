package flowevents

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
	perr "flowqfit/internal/platform/errors"

	"github.com/klauspost/compress/gzip"
)

const sample = `{"number":1,"tracks":[{"phi":0.5,"rp":true},{"phi":1.5,"rp":true}]}
null

{"number":2,"tracks":[
{"number":3,"ref_mult":40,"tracks":[{"phi":2.5,"pt":1.1,"rp":true,"weight":0.5}]}
`

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, rd *Reader) []*flowevent.Event {
	t.Helper()
	var out []*flowevent.Event
	for {
		ev, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		out = append(out, ev)
	}
}

func TestReader_PlainAndGzip(t *testing.T) {
	inputs := map[string][]byte{
		"plain": []byte(sample),
		"gzip":  gz(t, sample),
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			rd, err := NewReader(io.NopCloser(bytes.NewReader(in)))
			if err != nil {
				t.Fatal(err)
			}
			defer rd.Close()

			evs := readAll(t, rd)
			if len(evs) != 3 {
				t.Fatalf("want 3 items, got %d", len(evs))
			}
			if evs[0].Number != 1 || evs[0].NumberOfRPs() != 2 {
				t.Fatalf("first: %+v", evs[0])
			}
			if evs[1] != nil {
				t.Fatalf("null line must give nil, got %+v", evs[1])
			}
			if evs[2].RefMult != 40 || evs[2].Tracks[0].W() != 0.5 {
				t.Fatalf("third: %+v", evs[2])
			}
			st := rd.Stats()
			if st.Events != 2 || st.Nil != 1 || st.Skipped != 1 {
				t.Fatalf("stats %+v", st)
			}
			if st.Bytes != int64(len(sample)) {
				t.Fatalf("bytes %d, want %d", st.Bytes, len(sample))
			}
			if _, err := rd.Next(); !errors.Is(err, io.EOF) {
				t.Fatalf("want sticky EOF, got %v", err)
			}
		})
	}
}

func TestReader_CorruptGzip(t *testing.T) {
	bad := append([]byte{0x1f, 0x8b}, []byte("not really gzip")...)
	_, err := NewReader(io.NopCloser(bytes.NewReader(bad)))
	if !perr.IsCode(err, perr.ErrorCodeInput) {
		t.Fatalf("want input error, got %v", err)
	}
}

func TestStream(t *testing.T) {
	rd, err := NewReader(io.NopCloser(strings.NewReader(sample)))
	if err != nil {
		t.Fatal(err)
	}
	out := make(chan *flowevent.Event, 8)
	if err := rd.Stream(context.Background(), out); err != nil {
		t.Fatal(err)
	}
	close(out)
	n := 0
	for range out {
		n++
	}
	if n != 3 {
		t.Fatalf("streamed %d", n)
	}
}

func TestStream_Cancelled(t *testing.T) {
	rd, err := NewReader(io.NopCloser(strings.NewReader(sample)))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = rd.Stream(ctx, make(chan *flowevent.Event))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestOpenAndLoadWeights(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "events.jsonl.gz")
	if err := os.WriteFile(p, gz(t, sample), 0o600); err != nil {
		t.Fatal(err)
	}
	rd, err := Open(p)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(readAll(t, rd)); n != 3 {
		t.Fatalf("read %d", n)
	}
	if err := rd.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(filepath.Join(dir, "missing")); !perr.IsCode(err, perr.ErrorCodeInput) {
		t.Fatalf("missing file: %v", err)
	}

	w := histo.NewList("weights")
	h, _ := histo.NewH1("phi_weights", "", 4, 0, 6.3)
	h.FillW(1, 2)
	if err := w.Add(h); err != nil {
		t.Fatal(err)
	}
	wp := filepath.Join(dir, "weights.fqd")
	if err := histo.WriteFile(wp, w); err != nil {
		t.Fatal(err)
	}
	got, err := LoadWeights(wp)
	if err != nil {
		t.Fatal(err)
	}
	if got.H1("phi_weights") == nil {
		t.Fatalf("weights lost: %v", got.Names())
	}
	if _, err := LoadWeights(filepath.Join(dir, "nope")); !perr.IsCode(err, perr.ErrorCodeInput) {
		t.Fatalf("want input error, got %v", err)
	}
}
