package featkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/format"
	"github.com/arloliu/featkit/record"
	"github.com/arloliu/featkit/storage"
	"github.com/arloliu/featkit/text"
	"github.com/arloliu/featkit/translation"
)

func TestEncodeExample_Translation(t *testing.T) {
	tr, err := NewTranslation([]string{"en", "fr"})
	require.NoError(t, err)

	data, err := EncodeExample(tr, map[string]string{"en": "the cat", "fr": "le chat"})
	require.NoError(t, err)
	require.Equal(t, byte(format.CompressionS2), data[3])

	decoded, err := DecodeExample(tr, data)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"en": "the cat", "fr": "le chat"}, decoded)
}

func TestEncodeExample_TranslationWithEncoder(t *testing.T) {
	tr, err := NewTranslation([]string{"en", "fr"}, translation.WithEncoder(text.NewByteEncoder()))
	require.NoError(t, err)

	data, err := EncodeExample(tr, map[string]string{"en": "héllo", "fr": "salut"})
	require.NoError(t, err)

	decoded, err := DecodeExample(tr, data)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"en": "héllo", "fr": "salut"}, decoded)
}

func TestEncodeExample_VariableTranslation(t *testing.T) {
	v, err := NewVariableTranslation(translation.WithLanguages([]string{"en", "fr", "de"}))
	require.NoError(t, err)

	for _, c := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionLZ4} {
		enc, err := NewRecordEncoder(record.WithCompression(c))
		require.NoError(t, err)

		data, err := enc.MarshalExample(v, map[string]any{
			"en": "the cat",
			"fr": []string{"le chat", "la chatte"},
			"de": "die katze",
		})
		require.NoError(t, err)

		decoded, err := DecodeExample(v, data)
		require.NoError(t, err)
		require.Equal(t, map[string][]string{
			translation.LanguageKey:    {"de", "en", "fr", "fr"},
			translation.TranslationKey: {"die katze", "the cat", "la chatte", "le chat"},
		}, decoded)
	}

	_, err = EncodeExample(v, map[string]any{"zh": "猫"})
	require.ErrorIs(t, err, errs.ErrUnknownLanguage)
}

func TestMetadataRoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := NewLocalFS()
	dir := t.TempDir()

	saved, err := NewTranslation([]string{"fr", "en", "de"})
	require.NoError(t, err)
	require.NoError(t, saved.SaveMetadata(ctx, fsys, dir, "translation"))

	fixed, err := NewTranslation([]string{"en"})
	require.NoError(t, err)
	require.NoError(t, fixed.LoadMetadata(ctx, fsys, dir, "translation"))
	require.Equal(t, LanguageSetID(saved.Languages()), LanguageSetID(fixed.Languages()))

	variable, err := NewVariableTranslation()
	require.NoError(t, err)
	require.NoError(t, variable.LoadMetadata(ctx, fsys, dir, "translation"))
	langs, ok := variable.Languages()
	require.True(t, ok)
	require.Equal(t, []string{"de", "en", "fr"}, langs)
}

func TestLanguageSetID(t *testing.T) {
	require.Equal(t, LanguageSetID([]string{"en", "fr"}), LanguageSetID([]string{"fr", "en"}))
	require.NotEqual(t, LanguageSetID([]string{"en", "fr"}), LanguageSetID([]string{"en", "de"}))
	require.NotEqual(t, LanguageSetID([]string{"ab", "c"}), LanguageSetID([]string{"a", "bc"}))
}

func TestNewMemoryFS(t *testing.T) {
	ctx := context.Background()
	fsys := NewMemoryFS()

	v, err := NewVariableTranslation(translation.WithLanguages([]string{"en"}))
	require.NoError(t, err)
	require.NoError(t, v.SaveMetadata(ctx, fsys, "data", "tr"))
	require.Equal(t, []string{"data/tr.languages.txt"}, fsys.Paths())
}

func TestNewS3FS_InvalidConfig(t *testing.T) {
	_, err := NewS3FS(storage.Config{})
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}
