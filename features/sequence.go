package features

import (
	"context"
	"fmt"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/storage"
)

// SequenceDict composes named sub-features whose values are parallel sequences.
//
// Every key must be present and every sequence must have the same length.
// Each element is encoded by the key's sub-feature; the encoded value of a key
// is the []any of its element encodings.
type SequenceDict struct {
	keys     []string
	children map[string]Feature
}

var _ Feature = (*SequenceDict)(nil)

// NewSequenceDict creates a SequenceDict from children keyed by name.
func NewSequenceDict(children map[string]Feature) *SequenceDict {
	owned := make(map[string]Feature, len(children))
	for k, f := range children {
		owned[k] = f
	}

	return &SequenceDict{keys: sortedKeys(owned), children: owned}
}

// Keys returns the sequence names in ascending order.
func (s *SequenceDict) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)

	return out
}

func (s *SequenceDict) Encode(value any) (any, error) {
	seqs, err := s.sequences(value)
	if err != nil {
		return nil, err
	}

	out := make(Record, len(s.keys))
	for _, k := range s.keys {
		child := s.children[k]
		encoded := make([]any, len(seqs[k]))
		for i, elem := range seqs[k] {
			enc, err := child.Encode(elem)
			if err != nil {
				return nil, fmt.Errorf("encode %q[%d]: %w", k, i, err)
			}
			encoded[i] = enc
		}
		out[k] = encoded
	}

	return out, nil
}

// Decode returns a map[string][]any holding the decoded elements per key.
func (s *SequenceDict) Decode(encoded any) (any, error) {
	seqs, err := s.sequences(encoded)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]any, len(s.keys))
	for _, k := range s.keys {
		child := s.children[k]
		decoded := make([]any, len(seqs[k]))
		for i, elem := range seqs[k] {
			dec, err := child.Decode(elem)
			if err != nil {
				return nil, fmt.Errorf("decode %q[%d]: %w", k, i, err)
			}
			decoded[i] = dec
		}
		out[k] = decoded
	}

	return out, nil
}

// sequences validates keys and lengths and returns each key's elements.
func (s *SequenceDict) sequences(value any) (map[string][]any, error) {
	m, err := asMap(value)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(m, s.keys, s.children); err != nil {
		return nil, err
	}

	seqs := make(map[string][]any, len(s.keys))
	length := -1
	for _, k := range s.keys {
		elems, err := asSlice(m[k])
		if err != nil {
			return nil, fmt.Errorf("sequence %q: %w", k, err)
		}
		if length >= 0 && len(elems) != length {
			return nil, fmt.Errorf("%w: %q has %d elements, expected %d",
				errs.ErrLengthMismatch, k, len(elems), length)
		}
		length = len(elems)
		seqs[k] = elems
	}

	return seqs, nil
}

func (s *SequenceDict) SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	for _, k := range s.keys {
		if err := s.children[k].SaveMetadata(ctx, fsys, dir, ChildName(name, k)); err != nil {
			return err
		}
	}

	return nil
}

func (s *SequenceDict) LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	for _, k := range s.keys {
		if err := s.children[k].LoadMetadata(ctx, fsys, dir, ChildName(name, k)); err != nil {
			return err
		}
	}

	return nil
}

func (s *SequenceDict) String() string {
	return describe("SequenceDict", s.keys, s.children)
}
