// Package errs defines the sentinel errors shared by featkit packages.
//
// Errors are wrapped with additional context using fmt.Errorf and the %w verb,
// so callers should compare with errors.Is rather than by equality.
package errs

import "errors"

// Schema and validation errors.
var (
	// ErrUnknownLanguage is returned when an example contains language codes
	// outside of the declared language set.
	ErrUnknownLanguage = errors.New("language not in valid set")

	// ErrInvalidLanguageCode is returned when tag validation is enabled and a
	// language code is not a well-formed BCP 47 tag.
	ErrInvalidLanguageCode = errors.New("invalid language code")

	// ErrEmptyLanguages is returned when a fixed translation feature is built
	// without any language.
	ErrEmptyLanguages = errors.New("language list is empty")

	// ErrInvalidValue is returned when a value passed to Encode or Decode has
	// an unsupported type or content.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnexpectedKey is returned when an example contains a key that the
	// schema does not declare.
	ErrUnexpectedKey = errors.New("unexpected key")

	// ErrMissingKey is returned when an example lacks a key declared by the schema.
	ErrMissingKey = errors.New("missing key")

	// ErrLengthMismatch is returned when parallel sequences have different lengths.
	ErrLengthMismatch = errors.New("sequence length mismatch")

	// ErrEncoderNotLoaded is returned when a text feature was configured with an
	// encoder config but the encoder has not been restored from metadata yet.
	ErrEncoderNotLoaded = errors.New("text encoder not loaded")

	// ErrUnknownToken is returned when a token id has no entry in the vocabulary.
	ErrUnknownToken = errors.New("unknown token id")
)

// Metadata and storage errors.
var (
	// ErrMissingFeatureName is returned when a metadata path is requested
	// without a feature name.
	ErrMissingFeatureName = errors.New("feature name is required")

	// ErrMetadataNotFound is returned when a metadata file does not exist.
	ErrMetadataNotFound = errors.New("metadata file not found")

	// ErrInvalidConfig is returned when a storage backend is misconfigured.
	ErrInvalidConfig = errors.New("invalid storage configuration")

	// ErrAccessDenied is returned when the storage backend rejects an operation.
	ErrAccessDenied = errors.New("storage access denied")
)

// Record serialization errors.
var (
	ErrCorruptRecord    = errors.New("corrupt record")
	ErrChecksumMismatch = errors.New("record checksum mismatch")
	ErrUnsupportedType  = errors.New("unsupported value type")
)
