package hash

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SetFingerprint returns an order-independent xxHash64 of a string set.
// Members are sorted and separated by a zero byte before hashing, so two sets
// with the same members always share a fingerprint.
func SetFingerprint(members []string) uint64 {
	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)

	d := xxhash.New()
	for _, m := range sorted {
		_, _ = d.WriteString(m)
		_, _ = d.Write([]byte{0})
	}

	return d.Sum64()
}
