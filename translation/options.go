package translation

import (
	"log/slog"

	"github.com/arloliu/featkit/internal/options"
	"github.com/arloliu/featkit/text"
)

// config collects the settings shared by Translation and VariableTranslation.
type config struct {
	languages     []string
	encoder       text.Encoder
	encoderConfig *text.EncoderConfig
	logger        *slog.Logger
	validateTags  bool
}

// Option configures a translation feature.
type Option = options.Option[*config]

// WithLanguages sets the allow-list of a VariableTranslation.
// An empty list leaves the language set unknown.
func WithLanguages(languages []string) Option {
	return options.NoError(func(c *config) {
		c.languages = append([]string(nil), languages...)
	})
}

// WithEncoder sets the text encoder used by every language of a Translation.
// If unset, text is stored as UTF-8 strings.
func WithEncoder(enc text.Encoder) Option {
	return options.NoError(func(c *config) {
		c.encoder = enc
	})
}

// WithEncoderConfig sets the config used to restore the text encoder of a
// Translation when its metadata is loaded.
func WithEncoderConfig(cfg text.EncoderConfig) Option {
	return options.NoError(func(c *config) {
		c.encoderConfig = &cfg
	})
}

// WithLogger sets the logger used for metadata operations.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = l
	})
}

// WithTagValidation requires every language code to be a well-formed BCP 47
// tag known to golang.org/x/text/language. Codes are not canonicalized.
func WithTagValidation() Option {
	return options.NoError(func(c *config) {
		c.validateTags = true
	})
}
