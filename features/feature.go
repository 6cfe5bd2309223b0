// Package features implements composable schema nodes ("feature connectors")
// that convert example values to a canonical encoded form and back.
//
// # Node types
//
//   - Text: a scalar text field, optionally tokenized by a text.Encoder
//   - FeaturesDict: a fixed set of named sub-features, one value each
//   - SequenceDict: a fixed set of named sub-features holding parallel
//     sequences of equal length
//
// # Encoded values
//
// Encode produces one of the following canonical forms:
//   - string: Text without an encoder
//   - []int64: Text with an encoder
//   - Record: FeaturesDict and SequenceDict
//   - []any: the per-element encodings of one SequenceDict field
//
// These forms are what the record package serializes.
//
// # Metadata
//
// Every node implements the same SaveMetadata/LoadMetadata hooks. Composite
// nodes forward them to their children under the name "<name>-<key>", so a
// schema tree persists its state without special cases.
package features

import (
	"context"
	"fmt"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/storage"
)

// Record is the encoded form of a composite feature.
type Record map[string]any

// Feature converts between example values and their canonical encoding.
type Feature interface {
	// Encode validates value and returns its canonical encoding.
	Encode(value any) (any, error)

	// Decode converts a canonical encoding back to a plain Go value.
	Decode(encoded any) (any, error)

	// SaveMetadata persists feature state under dir, keyed by name.
	SaveMetadata(ctx context.Context, fsys storage.FS, dir, name string) error

	// LoadMetadata restores feature state written by SaveMetadata.
	LoadMetadata(ctx context.Context, fsys storage.FS, dir, name string) error
}

// MetadataPath returns the path of the metadata file for feature name with the
// given suffix, e.g. MetadataPath(fsys, "data", "translation", ".languages.txt").
func MetadataPath(fsys storage.FS, dir, name, suffix string) (string, error) {
	if name == "" {
		return "", errs.ErrMissingFeatureName
	}

	return fsys.Join(dir, name+suffix), nil
}

// ChildName returns the metadata name of the child key of feature name.
func ChildName(name, key string) string {
	if name == "" {
		return key
	}

	return name + "-" + key
}

func typeError(want string, got any) error {
	return fmt.Errorf("%w: expected %s, got %T", errs.ErrInvalidValue, want, got)
}
