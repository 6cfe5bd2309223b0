// Package record serializes encoded feature values into self-describing
// binary records.
//
// # Layout
//
//	magic      2 bytes  "FK"
//	version    1 byte   currently 1
//	compress   1 byte   format.CompressionType of the payload
//	length     uvarint  payload size after compression
//	payload    length bytes
//	checksum   8 bytes  little-endian xxHash64 of the stored payload
//
// The payload is a single tagged value (see format.ValueTag). Record keys are
// written in ascending order, so equal values always serialize to identical
// bytes.
package record

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/featkit/compress"
	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/features"
	"github.com/arloliu/featkit/format"
	"github.com/arloliu/featkit/internal/hash"
	"github.com/arloliu/featkit/internal/options"
	"github.com/arloliu/featkit/internal/pool"
)

const (
	// Version is the record layout version written by Encoder.
	Version = 1

	headerSize   = 4
	checksumSize = 8

	// maxDepth bounds nesting of lists and records.
	maxDepth = 32
)

var magic = [2]byte{'F', 'K'}

// Encoder serializes encoded feature values.
// An Encoder is immutable after construction and safe for concurrent use.
type Encoder struct {
	compression format.CompressionType
	codec       compress.Codec
}

// Option configures an Encoder.
type Option = options.Option[*Encoder]

// WithCompression sets the payload compression. Default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(e *Encoder) error {
		codec, err := compress.CreateCodec(c, "record")
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
		}
		e.compression = c
		e.codec = codec

		return nil
	})
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...Option) (*Encoder, error) {
	e := &Encoder{
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
	}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Compression returns the configured payload compression.
func (e *Encoder) Compression() format.CompressionType {
	return e.compression
}

// Marshal serializes v, which must be built from string, []byte, []int64,
// []string, []any, features.Record and map[string]any values.
func (e *Encoder) Marshal(v any) ([]byte, error) {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	if err := writeValue(buf, v, 0); err != nil {
		return nil, err
	}

	payload, err := e.codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress record payload: %w", err)
	}

	out := make([]byte, 0, headerSize+binary.MaxVarintLen64+len(payload)+checksumSize)
	out = append(out, magic[0], magic[1], Version, byte(e.compression))
	out = binary.AppendUvarint(out, uint64(len(payload)))
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint64(out, hash.Sum(payload))

	return out, nil
}

// MarshalExample encodes example with f and serializes the result.
func (e *Encoder) MarshalExample(f features.Feature, example any) ([]byte, error) {
	encoded, err := f.Encode(example)
	if err != nil {
		return nil, err
	}

	return e.Marshal(encoded)
}

// Unmarshal parses a record produced by Marshal. Records decode to
// features.Record, lists to []any, integer lists to []int64.
func Unmarshal(data []byte) (any, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrCorruptRecord, len(data))
	}
	if data[0] != magic[0] || data[1] != magic[1] {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrCorruptRecord, data[:2])
	}
	if data[2] != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrCorruptRecord, data[2])
	}

	codec, err := compress.GetCodec(format.CompressionType(data[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCorruptRecord, err)
	}

	rest := data[headerSize:]
	size, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad payload length", errs.ErrCorruptRecord)
	}
	rest = rest[n:]
	if size > uint64(len(rest)) || uint64(len(rest))-size != checksumSize {
		return nil, fmt.Errorf("%w: payload length %d does not match record size", errs.ErrCorruptRecord, size)
	}

	payload := rest[:size]
	want := binary.LittleEndian.Uint64(rest[size:])
	if got := hash.Sum(payload); got != want {
		return nil, fmt.Errorf("%w: got %016x, want %016x", errs.ErrChecksumMismatch, got, want)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCorruptRecord, err)
	}

	r := &reader{data: raw}
	v, err := r.value(0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrCorruptRecord, len(r.data)-r.pos)
	}

	return v, nil
}

// UnmarshalExample parses a record and decodes it with f.
func UnmarshalExample(f features.Feature, data []byte) (any, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}

	return f.Decode(v)
}

func writeValue(buf *pool.ByteBuffer, v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", errs.ErrUnsupportedType, maxDepth)
	}

	switch val := v.(type) {
	case string:
		writeTagged(buf, format.TagString, len(val))
		_, _ = buf.WriteString(val)
	case []byte:
		writeTagged(buf, format.TagBytes, len(val))
		_, _ = buf.Write(val)
	case []int64:
		writeTagged(buf, format.TagInts, len(val))
		for _, x := range val {
			buf.B = binary.AppendVarint(buf.B, x)
		}
	case []string:
		writeTagged(buf, format.TagList, len(val))
		for _, s := range val {
			writeTagged(buf, format.TagString, len(s))
			_, _ = buf.WriteString(s)
		}
	case []any:
		writeTagged(buf, format.TagList, len(val))
		for _, elem := range val {
			if err := writeValue(buf, elem, depth+1); err != nil {
				return err
			}
		}
	case features.Record:
		return writeRecord(buf, val, depth)
	case map[string]any:
		return writeRecord(buf, val, depth)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v)
	}

	return nil
}

func writeRecord(buf *pool.ByteBuffer, m map[string]any, depth int) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	writeTagged(buf, format.TagRecord, len(keys))
	for _, k := range keys {
		buf.B = binary.AppendUvarint(buf.B, uint64(len(k)))
		_, _ = buf.WriteString(k)
		if err := writeValue(buf, m[k], depth+1); err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
	}

	return nil
}

func writeTagged(buf *pool.ByteBuffer, tag format.ValueTag, n int) {
	buf.Grow(1 + binary.MaxVarintLen64 + n)
	_ = buf.WriteByte(byte(tag))
	buf.B = binary.AppendUvarint(buf.B, uint64(n))
}

// reader decodes a payload; every failure wraps errs.ErrCorruptRecord.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) fail(msg string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", errs.ErrCorruptRecord, r.pos, fmt.Sprintf(msg, args...))
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.fail("unexpected end of payload")
	}
	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// count reads a uvarint count bounded by the remaining payload, given that
// every counted item occupies at least minSize bytes.
func (r *reader) count(minSize int) (int, error) {
	n, w := binary.Uvarint(r.data[r.pos:])
	if w <= 0 {
		return 0, r.fail("bad length")
	}
	r.pos += w
	if n > math.MaxInt32 || int(n)*minSize > len(r.data)-r.pos {
		return 0, r.fail("length %d exceeds payload", n)
	}

	return int(n), nil
}

func (r *reader) bytes() ([]byte, error) {
	n, err := r.count(1)
	if err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

func (r *reader) value(depth int) (any, error) {
	if depth > maxDepth {
		return nil, r.fail("nesting deeper than %d", maxDepth)
	}

	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch format.ValueTag(tag) {
	case format.TagString:
		b, err := r.bytes()
		if err != nil {
			return nil, err
		}

		return string(b), nil
	case format.TagBytes:
		b, err := r.bytes()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)

		return out, nil
	case format.TagInts:
		n, err := r.count(1)
		if err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := range out {
			x, w := binary.Varint(r.data[r.pos:])
			if w <= 0 {
				return nil, r.fail("bad varint")
			}
			r.pos += w
			out[i] = x
		}

		return out, nil
	case format.TagList:
		n, err := r.count(2)
		if err != nil {
			return nil, err
		}
		out := make([]any, n)
		for i := range out {
			if out[i], err = r.value(depth + 1); err != nil {
				return nil, err
			}
		}

		return out, nil
	case format.TagRecord:
		n, err := r.count(3)
		if err != nil {
			return nil, err
		}
		out := make(features.Record, n)
		for i := 0; i < n; i++ {
			key, err := r.bytes()
			if err != nil {
				return nil, err
			}
			if _, dup := out[string(key)]; dup {
				return nil, r.fail("duplicate key %q", key)
			}
			if out[string(key)], err = r.value(depth + 1); err != nil {
				return nil, err
			}
		}

		return out, nil
	default:
		return nil, r.fail("unknown value tag 0x%02x", tag)
	}
}
