package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
			assert.Equal(t, tt.id, Sum([]byte(tt.data)))
		})
	}
}

func TestSetFingerprint(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		a := SetFingerprint([]string{"fr", "en", "de"})
		b := SetFingerprint([]string{"de", "fr", "en"})
		require.Equal(t, a, b)
	})

	t.Run("does not reorder input", func(t *testing.T) {
		in := []string{"fr", "en"}
		SetFingerprint(in)
		require.Equal(t, []string{"fr", "en"}, in)
	})

	t.Run("separator prevents concatenation clashes", func(t *testing.T) {
		require.NotEqual(t, SetFingerprint([]string{"ab", "c"}), SetFingerprint([]string{"a", "bc"}))
	})

	t.Run("different sets differ", func(t *testing.T) {
		require.NotEqual(t, SetFingerprint([]string{"en"}), SetFingerprint([]string{"fr"}))
	})
}

func BenchmarkSetFingerprint(b *testing.B) {
	langs := []string{"de", "en", "es", "fr", "it", "ja", "pt", "ru", "zh"}
	for i := 0; i < b.N; i++ {
		SetFingerprint(langs)
	}
}
