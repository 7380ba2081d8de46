// Package store persists abstraction tables as msgp streams.
//
// A table file starts with a header of the magic string, the format version
// and the table kind, followed by the table's own msgp payload. Files are
// written to a temporary file and renamed into place so an interrupted build
// never leaves a truncated table behind.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/tinylib/msgp/msgp"

	"github.com/lox/pokertables/internal/fileutil"
)

const (
	magic   = "pokertables"
	version = 1
)

var (
	// ErrMagic is returned when a file is not a table file.
	ErrMagic = errors.New("not a pokertables file")
	// ErrVersion is returned for files written by an incompatible format version.
	ErrVersion = errors.New("unsupported table file version")
	// ErrKindMismatch is returned when a file holds a different table kind.
	ErrKindMismatch = errors.New("table kind mismatch")
)

// Table is a persistable abstraction table.
type Table interface {
	Kind() string
	msgp.Encodable
	msgp.Decodable
}

// Header describes a table file without decoding its payload.
type Header struct {
	Version int
	Kind    string
}

// Save writes t to path atomically.
func Save(path string, t Table) error {
	err := fileutil.WriteAtomic(path, 0o644, func(out io.Writer) error {
		w := msgp.NewWriter(out)
		if err := writeHeader(w, t.Kind()); err != nil {
			return err
		}
		if err := t.EncodeMsg(w); err != nil {
			return fmt.Errorf("encode %s table: %w", t.Kind(), err)
		}
		return w.Flush()
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load decodes the table stored at path into t.
func Load(path string, t Table) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := msgp.NewReaderSize(f, 1<<20)
	h, err := readHeader(r)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if h.Kind != t.Kind() {
		return fmt.Errorf("load %s: %w: file holds %q, want %q", path, ErrKindMismatch, h.Kind, t.Kind())
	}
	if err := t.DecodeMsg(r); err != nil {
		return fmt.Errorf("load %s: decode %s table: %w", path, h.Kind, err)
	}
	return nil
}

// ReadHeader returns the header of the table file at path.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	h, err := readHeader(msgp.NewReader(f))
	if err != nil {
		return Header{}, fmt.Errorf("read %s: %w", path, err)
	}
	return h, nil
}

// Exists reports whether a regular file exists at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// GetOrCompute loads the table at path if present. Otherwise it runs compute,
// saves the result and returns it. A present but unreadable file is an error
// rather than a reason to rebuild.
func GetOrCompute[T any, PT interface {
	*T
	Table
}](ctx context.Context, path string, compute func(context.Context) (PT, error)) (PT, error) {
	logger := zerolog.Ctx(ctx)

	if Exists(path) {
		t := PT(new(T))
		if err := Load(path, t); err != nil {
			return nil, err
		}
		logger.Info().Str("table", t.Kind()).Str("path", path).Msg("loaded table")
		return t, nil
	}

	t, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := Save(path, t); err != nil {
		return nil, err
	}
	logger.Info().Str("table", t.Kind()).Str("path", path).Msg("saved table")
	return t, nil
}

func writeHeader(w *msgp.Writer, kind string) error {
	if err := w.WriteArrayHeader(3); err != nil {
		return err
	}
	if err := w.WriteString(magic); err != nil {
		return err
	}
	if err := w.WriteInt(version); err != nil {
		return err
	}
	return w.WriteString(kind)
}

func readHeader(r *msgp.Reader) (Header, error) {
	n, err := r.ReadArrayHeader()
	if err != nil || n != 3 {
		return Header{}, ErrMagic
	}
	m, err := r.ReadString()
	if err != nil || m != magic {
		return Header{}, ErrMagic
	}

	var h Header
	if h.Version, err = r.ReadInt(); err != nil {
		return Header{}, fmt.Errorf("read version: %w", err)
	}
	if h.Version != version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if h.Kind, err = r.ReadString(); err != nil {
		return Header{}, fmt.Errorf("read kind: %w", err)
	}
	return h, nil
}
