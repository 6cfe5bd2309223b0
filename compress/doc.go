// Package compress provides the compression codecs applied to serialized
// featkit records.
//
// A record payload is encoded first and then optionally compressed as a
// single unit. The algorithm is stored in the record header, so readers pick
// the matching Decompressor automatically.
//
// Supported algorithms:
//   - None (format.CompressionNone): payload stored as is
//   - Zstd (format.CompressionZstd): best ratio, good for text-heavy examples
//   - S2 (format.CompressionS2): balanced speed and ratio
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Zstd uses the pure Go klauspost/compress implementation by default. Build
// with the gozstd tag (and cgo enabled) to switch to the libzstd binding.
//
// Usage:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "record")
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
package compress
