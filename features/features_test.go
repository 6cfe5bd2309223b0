package features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/featkit/errs"
	"github.com/arloliu/featkit/storage"
	"github.com/arloliu/featkit/text"
)

func mustText(t *testing.T, opts ...TextOption) *Text {
	t.Helper()
	f, err := NewText(opts...)
	require.NoError(t, err)

	return f
}

func TestText_Plain(t *testing.T) {
	f := mustText(t)

	enc, err := f.Encode("the cat")
	require.NoError(t, err)
	require.Equal(t, "the cat", enc)

	enc, err = f.Encode([]byte("le chat"))
	require.NoError(t, err)
	require.Equal(t, "le chat", enc)

	dec, err := f.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, "le chat", dec)

	t.Run("rejects non-text", func(t *testing.T) {
		_, err := f.Encode(42)
		require.ErrorIs(t, err, errs.ErrInvalidValue)

		_, err = f.Decode(3.5)
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})

	t.Run("rejects invalid utf8", func(t *testing.T) {
		_, err := f.Encode([]byte{0xff, 0xfe})
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})

	t.Run("decoding ids needs an encoder", func(t *testing.T) {
		_, err := f.Decode([]int64{1, 2})
		require.ErrorIs(t, err, errs.ErrEncoderNotLoaded)
	})
}

func TestText_WithEncoder(t *testing.T) {
	f := mustText(t, WithTextEncoder(text.NewByteEncoder()))

	enc, err := f.Encode("ab")
	require.NoError(t, err)
	require.Equal(t, []int64{'a' + 1, 'b' + 1}, enc)

	dec, err := f.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, "ab", dec)
	require.Equal(t, "Text(vocab_size=257)", f.String())
}

func TestText_VocabSizeMismatch(t *testing.T) {
	cfg := text.ByteEncoderConfig()
	cfg.VocabSize = 10

	_, err := NewText(WithTextEncoder(text.NewByteEncoder()), WithTextEncoderConfig(cfg))
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestText_Metadata(t *testing.T) {
	ctx := context.Background()
	fsys := storage.NewMemory()

	vocab, err := text.NewTokenEncoder([]string{"le", "chat"})
	require.NoError(t, err)

	saved := mustText(t, WithTextEncoder(vocab))
	require.NoError(t, saved.SaveMetadata(ctx, fsys, "data", "fr"))
	require.Equal(t, []string{"data/fr.text.tokens"}, fsys.Paths())

	restored := mustText(t, WithTextEncoderConfig(text.TokenEncoderConfig()))
	_, err = restored.Encode("le chat")
	require.ErrorIs(t, err, errs.ErrEncoderNotLoaded)

	require.NoError(t, restored.LoadMetadata(ctx, fsys, "data", "fr"))
	enc, err := restored.Encode("le chat")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, enc)

	t.Run("missing vocabulary is skipped", func(t *testing.T) {
		f := mustText(t, WithTextEncoderConfig(text.TokenEncoderConfig()))
		require.NoError(t, f.LoadMetadata(ctx, fsys, "data", "de"))
		require.Nil(t, f.Encoder())
	})

	t.Run("plain text has no metadata", func(t *testing.T) {
		empty := storage.NewMemory()
		require.NoError(t, mustText(t).SaveMetadata(ctx, empty, "data", "en"))
		require.NoError(t, mustText(t).LoadMetadata(ctx, empty, "data", "en"))
		require.Empty(t, empty.Paths())
	})

	t.Run("feature name required", func(t *testing.T) {
		err := saved.SaveMetadata(ctx, fsys, "data", "")
		require.ErrorIs(t, err, errs.ErrMissingFeatureName)
	})
}

func TestFeaturesDict(t *testing.T) {
	d := NewFeaturesDict(map[string]Feature{
		"fr": mustText(t),
		"en": mustText(t),
	})
	require.Equal(t, []string{"en", "fr"}, d.Keys())
	require.Equal(t, "FeaturesDict({en: Text, fr: Text})", d.String())

	enc, err := d.Encode(map[string]string{"en": "the cat", "fr": "le chat"})
	require.NoError(t, err)
	require.Equal(t, Record{"en": "the cat", "fr": "le chat"}, enc)

	dec, err := d.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"en": "the cat", "fr": "le chat"}, dec)

	t.Run("unexpected key", func(t *testing.T) {
		_, err := d.Encode(map[string]any{"en": "a", "fr": "b", "de": "c"})
		require.ErrorIs(t, err, errs.ErrUnexpectedKey)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := d.Encode(map[string]any{"en": "a"})
		require.ErrorIs(t, err, errs.ErrMissingKey)
	})

	t.Run("child error is wrapped", func(t *testing.T) {
		_, err := d.Encode(map[string]any{"en": "a", "fr": 1})
		require.ErrorIs(t, err, errs.ErrInvalidValue)
		require.Contains(t, err.Error(), `"fr"`)
	})

	t.Run("not a map", func(t *testing.T) {
		_, err := d.Encode("the cat")
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})
}

func TestFeaturesDict_Metadata(t *testing.T) {
	ctx := context.Background()
	fsys := storage.NewMemory()

	d := NewFeaturesDict(map[string]Feature{
		"en": mustText(t, WithTextEncoder(text.NewByteEncoder())),
		"fr": mustText(t),
	})
	require.NoError(t, d.SaveMetadata(ctx, fsys, "data", "translation"))
	require.Equal(t, []string{"data/translation-en.text.bytes"}, fsys.Paths())

	restored := NewFeaturesDict(map[string]Feature{
		"en": mustText(t, WithTextEncoderConfig(text.ByteEncoderConfig())),
		"fr": mustText(t),
	})
	require.NoError(t, restored.LoadMetadata(ctx, fsys, "data", "translation"))

	en, ok := restored.Feature("en")
	require.True(t, ok)
	require.NotNil(t, en.(*Text).Encoder())
}

func TestSequenceDict(t *testing.T) {
	s := NewSequenceDict(map[string]Feature{
		"language":    mustText(t),
		"translation": mustText(t),
	})
	require.Equal(t, []string{"language", "translation"}, s.Keys())

	enc, err := s.Encode(map[string]any{
		"language":    []string{"en", "fr"},
		"translation": []any{"the cat", "le chat"},
	})
	require.NoError(t, err)
	require.Equal(t, Record{
		"language":    []any{"en", "fr"},
		"translation": []any{"the cat", "le chat"},
	}, enc)

	dec, err := s.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, map[string][]any{
		"language":    {"en", "fr"},
		"translation": {"the cat", "le chat"},
	}, dec)

	t.Run("empty sequences", func(t *testing.T) {
		enc, err := s.Encode(map[string][]string{"language": {}, "translation": {}})
		require.NoError(t, err)
		require.Equal(t, Record{"language": []any{}, "translation": []any{}}, enc)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := s.Encode(map[string][]string{"language": {"en"}, "translation": {}})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("scalar is not a sequence", func(t *testing.T) {
		_, err := s.Encode(map[string]any{"language": "en", "translation": "x"})
		require.ErrorIs(t, err, errs.ErrInvalidValue)
	})

	t.Run("arrays are sequences", func(t *testing.T) {
		enc, err := s.Encode(map[string]any{
			"language":    [1]string{"de"},
			"translation": [1]string{"die katze"},
		})
		require.NoError(t, err)
		require.Equal(t, []any{"de"}, enc.(Record)["language"])
	})
}

func TestChildName(t *testing.T) {
	require.Equal(t, "en", ChildName("", "en"))
	require.Equal(t, "translation-en", ChildName("translation", "en"))
}
