package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/arloliu/featkit/storage"
)

// FeaturesDict composes a fixed set of named sub-features.
// Encoded examples must provide exactly one value per key.
type FeaturesDict struct {
	keys     []string
	children map[string]Feature
}

var _ Feature = (*FeaturesDict)(nil)

// NewFeaturesDict creates a FeaturesDict from children keyed by name.
func NewFeaturesDict(children map[string]Feature) *FeaturesDict {
	owned := make(map[string]Feature, len(children))
	for k, f := range children {
		owned[k] = f
	}

	return &FeaturesDict{keys: sortedKeys(owned), children: owned}
}

// Keys returns the sub-feature names in ascending order.
func (d *FeaturesDict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)

	return out
}

// Feature returns the sub-feature registered under key.
func (d *FeaturesDict) Feature(key string) (Feature, bool) {
	f, ok := d.children[key]
	return f, ok
}

func (d *FeaturesDict) Encode(value any) (any, error) {
	m, err := asMap(value)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(m, d.keys, d.children); err != nil {
		return nil, err
	}

	out := make(Record, len(d.keys))
	for _, k := range d.keys {
		enc, err := d.children[k].Encode(m[k])
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		out[k] = enc
	}

	return out, nil
}

// Decode returns a map[string]any with one decoded value per key.
func (d *FeaturesDict) Decode(encoded any) (any, error) {
	m, err := asMap(encoded)
	if err != nil {
		return nil, err
	}
	if err := checkKeys(m, d.keys, d.children); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		dec, err := d.children[k].Decode(m[k])
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", k, err)
		}
		out[k] = dec
	}

	return out, nil
}

func (d *FeaturesDict) SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	for _, k := range d.keys {
		if err := d.children[k].SaveMetadata(ctx, fsys, dir, ChildName(name, k)); err != nil {
			return err
		}
	}

	return nil
}

func (d *FeaturesDict) LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error {
	for _, k := range d.keys {
		if err := d.children[k].LoadMetadata(ctx, fsys, dir, ChildName(name, k)); err != nil {
			return err
		}
	}

	return nil
}

func (d *FeaturesDict) String() string {
	return describe("FeaturesDict", d.keys, d.children)
}

func describe(kind string, keys []string, children map[string]Feature) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, children[k])
	}

	return kind + "({" + strings.Join(parts, ", ") + "})"
}
