package flowevents

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	"flowqfit/internal/core/flowevent"
	"flowqfit/internal/core/histo"
	perr "flowqfit/internal/platform/errors"
	"flowqfit/internal/platform/logger"

	"github.com/klauspost/compress/gzip"
)

const (
	maxScanTokenSize = 16 * 1024 * 1024
	sampleRawMax     = 512
)

var gzipMagic = []byte{0x1f, 0x8b}

// Stats counts what a Reader has consumed so far
type Stats struct {
	Events  int   `json:"events"`
	Nil     int   `json:"nil_events"`
	Skipped int   `json:"skipped"`
	Bytes   int64 `json:"bytes"`
}

// Reader streams events from one input
type Reader struct {
	r       io.ReadCloser
	gz      *gzip.Reader
	sc      *bufio.Scanner
	err     error
	stats   Stats
	sampled bool
}

// NewReader wraps r, transparently decompressing gzip input
func NewReader(r io.ReadCloser) (*Reader, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	var gz *gzip.Reader
	if head, err := br.Peek(len(gzipMagic)); err == nil && bytes.Equal(head, gzipMagic) {
		gz, err = gzip.NewReader(br)
		if err != nil {
			return nil, errors.Join(perr.Wrap(err, perr.ErrorCodeInput, "open gzip stream"), r.Close())
		}
		src = gz
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), maxScanTokenSize)
	return &Reader{r: r, gz: gz, sc: sc}, nil
}

// Open opens path for reading
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInput, "open events %s", path)
	}
	return NewReader(f)
}

// Next returns the next event, nil for a null line; io.EOF when done
func (rd *Reader) Next() (*flowevent.Event, error) {
	if rd.err != nil {
		return nil, rd.err
	}
	for {
		if !rd.sc.Scan() {
			if err := rd.sc.Err(); err != nil {
				rd.err = perr.Wrap(err, perr.ErrorCodeInput, "read events")
				return nil, rd.err
			}
			rd.err = io.EOF
			return nil, io.EOF
		}
		line := bytes.TrimSpace(rd.sc.Bytes())
		rd.stats.Bytes += int64(len(rd.sc.Bytes()) + 1)
		if len(line) == 0 {
			continue
		}
		if bytes.Equal(line, []byte("null")) {
			rd.stats.Nil++
			return nil, nil
		}

		ev := new(flowevent.Event)
		if err := json.Unmarshal(line, ev); err != nil {
			rd.stats.Skipped++
			continue
		}
		rd.stats.Events++

		if !rd.sampled {
			rd.sampled = true
			l := logger.Named("flowevents")
			l.Debug().
				Int("line_bytes", len(line)).
				Int("tracks", len(ev.Tracks)).
				Str("sample_raw", truncate(line, sampleRawMax)).
				Msg("first event")
		}
		return ev, nil
	}
}

// Stream sends every event, nil ones included, to out until EOF or ctx is done.
// It does not close out.
func (rd *Reader) Stream(ctx context.Context, out chan<- *flowevent.Event) error {
	for {
		ev, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stats returns the counters so far
func (rd *Reader) Stats() Stats { return rd.stats }

// Close closes the gzip stream and the underlying reader
func (rd *Reader) Close() error {
	var errs []error
	if rd.gz != nil {
		errs = append(errs, rd.gz.Close())
	}
	if rd.r != nil {
		errs = append(errs, rd.r.Close())
	}
	return errors.Join(errs...)
}

// LoadWeights reads a weights list artifact written by histo.WriteFile
func LoadWeights(path string) (*histo.List, error) {
	l, err := histo.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInput, "load weights %s", path)
	}
	return l, nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
