// Package format defines the wire constants of serialized featkit records.
package format

type (
	CompressionType uint8
	ValueTag        uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Value tags prefix every value in a record payload.
const (
	TagString ValueTag = 0x1 // TagString is a uvarint length followed by UTF-8 bytes.
	TagBytes  ValueTag = 0x2 // TagBytes is a uvarint length followed by raw bytes.
	TagInts   ValueTag = 0x3 // TagInts is a uvarint count followed by zigzag varints.
	TagList   ValueTag = 0x4 // TagList is a uvarint count followed by tagged values.
	TagRecord ValueTag = 0x5 // TagRecord is a uvarint count followed by sorted (key, tagged value) entries.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (t ValueTag) String() string {
	switch t {
	case TagString:
		return "String"
	case TagBytes:
		return "Bytes"
	case TagInts:
		return "Ints"
	case TagList:
		return "List"
	case TagRecord:
		return "Record"
	default:
		return "Unknown"
	}
}
