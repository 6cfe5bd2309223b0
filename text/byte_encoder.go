package text

import (
	"context"
	"fmt"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/storage"
)

const (
	byteEncoderExt = ".bytes"
	numBytes       = 256
)

// ByteEncoder encodes each UTF-8 byte as its value plus one.
type ByteEncoder struct{}

var _ Encoder = ByteEncoder{}

// NewByteEncoder creates a stateless byte-level encoder.
func NewByteEncoder() ByteEncoder {
	return ByteEncoder{}
}

func (ByteEncoder) Encode(s string) ([]int64, error) {
	ids := make([]int64, len(s))
	for i := 0; i < len(s); i++ {
		ids[i] = int64(s[i]) + 1
	}

	return ids, nil
}

func (ByteEncoder) Decode(ids []int64) (string, error) {
	buf := make([]byte, 0, len(ids))
	for _, id := range ids {
		if id == PaddingID {
			continue
		}
		if id < 1 || id > numBytes {
			return "", fmt.Errorf("%w: %d", errs.ErrUnknownToken, id)
		}
		buf = append(buf, byte(id-1))
	}

	return string(buf), nil
}

// VocabSize returns 257: the padding id plus one id per byte value.
func (ByteEncoder) VocabSize() int {
	return numBytes + 1
}

// Save writes an empty marker file; the byte vocabulary is implicit.
func (ByteEncoder) Save(ctx context.Context, fsys storage.FS, prefix string) error {
	return storage.WriteLines(ctx, fsys, prefix+byteEncoderExt, nil)
}

// ByteEncoderConfig returns the config restoring a ByteEncoder.
func ByteEncoderConfig() EncoderConfig {
	return EncoderConfig{
		Name:      "bytes",
		Ext:       byteEncoderExt,
		VocabSize: numBytes + 1,
		Load: func(ctx context.Context, fsys storage.FS, prefix string) (Encoder, error) {
			if _, err := fsys.ReadFile(ctx, prefix+byteEncoderExt); err != nil {
				return nil, err
			}

			return NewByteEncoder(), nil
		},
	}
}
