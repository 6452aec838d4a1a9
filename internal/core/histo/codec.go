package histo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Encode writes l as zstd-compressed JSON
func Encode(w io.Writer, l *List) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := json.NewEncoder(zw).Encode(l); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encode %s: %w", l.Name, err)
	}
	return zw.Close()
}

// Decode reads a list written by Encode
func Decode(r io.Reader) (*List, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	l := &List{}
	if err := json.NewDecoder(zr).Decode(l); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return l, nil
}

// WriteFile encodes l into path, replacing any existing file
func WriteFile(path string, l *List) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return Encode(f, l)
}

// ReadFile decodes the list stored at path
func ReadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
