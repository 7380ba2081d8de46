package abstraction

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tinylib/msgp/msgp"
)

// Table kinds as recorded in persisted files.
const (
	KindStrength = "strength"
	KindFlop     = "flop"
	KindTurn     = "turn"
	KindOCHS     = "ochs"
	KindRiver    = "river"
	KindClusters = "clusters"
)

// Kinds lists the buildable tables in dependency order.
var Kinds = []string{KindStrength, KindFlop, KindTurn, KindOCHS, KindRiver}

// Large arrays are split into bin blobs of at most this many elements.
const blobElems = 1 << 24

func (t *StrengthTable) Kind() string { return KindStrength }
func (t *FlopTable) Kind() string     { return KindFlop }
func (t *TurnTable) Kind() string     { return KindTurn }
func (t *OCHSTable) Kind() string     { return KindOCHS }
func (t *RiverTable) Kind() string    { return KindRiver }
func (c *Clusters) Kind() string      { return KindClusters }

// EncodeMsg implements msgp.Encodable
func (t *StrengthTable) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(3); err != nil {
		return err
	}
	if err := w.WriteInt(t.Ranks); err != nil {
		return err
	}
	if err := w.WriteInt(t.MaxStrength); err != nil {
		return err
	}
	return writeBlobs(w, t.Values, 2, func(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) })
}

// DecodeMsg implements msgp.Decodable
func (t *StrengthTable) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindStrength, 3); err != nil {
		return err
	}
	if t.Ranks, err = r.ReadInt(); err != nil {
		return err
	}
	if t.MaxStrength, err = r.ReadInt(); err != nil {
		return err
	}
	if t.MaxStrength <= 0 {
		return fmt.Errorf("strength table: invalid max strength %d", t.MaxStrength)
	}
	t.Values, err = readBlobs(r, 2, binary.LittleEndian.Uint16)
	return err
}

// EncodeMsg implements msgp.Encodable
func (t *FlopTable) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(2); err != nil {
		return err
	}
	if err := w.WriteInt(t.Buckets); err != nil {
		return err
	}
	return writeBlobs(w, t.Counts, 2, func(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) })
}

// DecodeMsg implements msgp.Decodable
func (t *FlopTable) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindFlop, 2); err != nil {
		return err
	}
	if t.Buckets, err = readBuckets(r); err != nil {
		return err
	}
	if t.Counts, err = readBlobs(r, 2, binary.LittleEndian.Uint16); err != nil {
		return err
	}
	return checkRows(len(t.Counts), t.Buckets)
}

// EncodeMsg implements msgp.Encodable
func (t *TurnTable) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(2); err != nil {
		return err
	}
	if err := w.WriteInt(t.Buckets); err != nil {
		return err
	}
	return writeBlobs(w, t.Counts, 1, func(b []byte, v uint8) { b[0] = v })
}

// DecodeMsg implements msgp.Decodable
func (t *TurnTable) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindTurn, 2); err != nil {
		return err
	}
	if t.Buckets, err = readBuckets(r); err != nil {
		return err
	}
	if t.Counts, err = readBlobs(r, 1, func(b []byte) uint8 { return b[0] }); err != nil {
		return err
	}
	return checkRows(len(t.Counts), t.Buckets)
}

// EncodeMsg implements msgp.Encodable
func (t *OCHSTable) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(2); err != nil {
		return err
	}
	if err := w.WriteInt(t.Buckets); err != nil {
		return err
	}
	return writeBlobs(w, t.Values, 4, putFloat32)
}

// DecodeMsg implements msgp.Decodable
func (t *OCHSTable) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindOCHS, 2); err != nil {
		return err
	}
	if t.Buckets, err = readBuckets(r); err != nil {
		return err
	}
	if t.Values, err = readBlobs(r, 4, getFloat32); err != nil {
		return err
	}
	return checkRows(len(t.Values), t.Buckets)
}

// EncodeMsg implements msgp.Encodable
func (t *RiverTable) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(3); err != nil {
		return err
	}
	if err := w.WriteArrayHeader(uint32(len(t.ClusterSizes))); err != nil {
		return err
	}
	for _, n := range t.ClusterSizes {
		if err := w.WriteUint64(n); err != nil {
			return err
		}
	}
	if err := w.WriteInt(t.Clusters); err != nil {
		return err
	}
	return writeBlobs(w, t.Values, 4, putFloat32)
}

// DecodeMsg implements msgp.Decodable
func (t *RiverTable) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindRiver, 3); err != nil {
		return err
	}
	n, err := r.ReadArrayHeader()
	if err != nil {
		return err
	}
	t.ClusterSizes = make([]uint64, n)
	for i := range t.ClusterSizes {
		if t.ClusterSizes[i], err = r.ReadUint64(); err != nil {
			return err
		}
	}
	if t.Clusters, err = readBuckets(r); err != nil {
		return err
	}
	if t.Clusters != len(t.ClusterSizes) {
		return fmt.Errorf("river table: %d clusters but %d sizes", t.Clusters, len(t.ClusterSizes))
	}
	if t.Values, err = readBlobs(r, 4, getFloat32); err != nil {
		return err
	}
	return checkRows(len(t.Values), t.Clusters)
}

// EncodeMsg implements msgp.Encodable
func (c *Clusters) EncodeMsg(w *msgp.Writer) error {
	if err := w.WriteArrayHeader(1); err != nil {
		return err
	}
	return writeBlobs(w, c.Assignment, 4, func(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) })
}

// DecodeMsg implements msgp.Decodable
func (c *Clusters) DecodeMsg(r *msgp.Reader) (err error) {
	if err = readFields(r, KindClusters, 1); err != nil {
		return err
	}
	c.Assignment, err = readBlobs(r, 4, binary.LittleEndian.Uint32)
	return err
}

func putFloat32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }

func getFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }

func readFields(r *msgp.Reader, kind string, want uint32) error {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return err
	}
	if n != want {
		return fmt.Errorf("%s table: expected %d fields, got %d", kind, want, n)
	}
	return nil
}

func readBuckets(r *msgp.Reader) (int, error) {
	n, err := r.ReadInt()
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid row width %d", n)
	}
	return n, nil
}

func checkRows(values, width int) error {
	if values%width != 0 {
		return fmt.Errorf("%d values do not fill rows of %d", values, width)
	}
	return nil
}

// writeBlobs writes vs as an array of little-endian bin blobs.
func writeBlobs[T any](w *msgp.Writer, vs []T, size int, put func([]byte, T)) error {
	chunks := (len(vs) + blobElems - 1) / blobElems
	if err := w.WriteArrayHeader(uint32(chunks)); err != nil {
		return err
	}
	buf := make([]byte, min(len(vs), blobElems)*size)
	for start := 0; start < len(vs); start += blobElems {
		part := vs[start:min(start+blobElems, len(vs))]
		out := buf[:len(part)*size]
		for i, v := range part {
			put(out[i*size:], v)
		}
		if err := w.WriteBytes(out); err != nil {
			return err
		}
	}
	return nil
}

// readBlobs inverts writeBlobs.
func readBlobs[T any](r *msgp.Reader, size int, get func([]byte) T) ([]T, error) {
	chunks, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	var out []T
	var buf []byte
	for i := range chunks {
		if buf, err = r.ReadBytes(buf[:0]); err != nil {
			return nil, fmt.Errorf("blob %d: %w", i, err)
		}
		if len(buf)%size != 0 {
			return nil, fmt.Errorf("blob %d: %d bytes is not a multiple of %d", i, len(buf), size)
		}
		for off := 0; off < len(buf); off += size {
			out = append(out, get(buf[off:]))
		}
	}
	return out, nil
}
