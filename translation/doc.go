// Package translation provides feature connectors for multilingual text.
//
// Translation handles examples with a fixed set of languages: every example
// carries exactly one text per configured language. VariableTranslation
// handles examples whose languages vary; it flattens each example into two
// aligned sequences of language codes and texts, optionally restricted to an
// allow-list.
//
// Both features persist their language set as a newline-delimited sidecar
// file named <feature name>.languages.txt next to the dataset's other
// metadata. Translation requires that file when loading; VariableTranslation
// treats a missing file as "languages unknown".
package translation
