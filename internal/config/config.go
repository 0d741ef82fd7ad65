// Package config loads the fixed, enumerated lexer option bag from a TOML
// file, for callers that want persistent configuration instead of (or in
// addition to) command-line flags.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/veficos/occ/lexer"
)

// File mirrors lexer.Options with TOML tags. Fields absent from the file
// keep Go's zero value, matching lexer.Options' own zero-value default.
type File struct {
	WarnBackslashNewlineSpace bool `toml:"warn_backslash_newline_space"`
	WarnNoNewlineEOF          bool `toml:"warn_no_newline_eof"`
	StrictEscapes             bool `toml:"strict_escapes"`
}

// Load parses the TOML file at path into a File.
func Load(path string) (File, error) {
	var f File
	_, err := toml.DecodeFile(path, &f)
	return f, err
}

// Options converts f into the lexer.Option list New expects.
func (f File) Options() []lexer.Option {
	return []lexer.Option{
		lexer.WithBackslashNewlineSpaceWarning(f.WarnBackslashNewlineSpace),
		lexer.WithNoNewlineEOFWarning(f.WarnNoNewlineEOF),
		lexer.WithStrictEscapes(f.StrictEscapes),
	}
}
