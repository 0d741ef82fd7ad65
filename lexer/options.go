package lexer

// Options is the fixed, enumerated option bag the lexer and its reader
// consult while scanning. The zero value is a quiet configuration: no
// warnings are enabled, and the non-standard "\e"/"\E" escape is accepted
// without a warning.
type Options struct {
	// WarnBackslashNewlineSpace warns when whitespace separates a
	// backslash from the newline it splices.
	WarnBackslashNewlineSpace bool
	// WarnNoNewlineEOF warns when a backslash-newline splice is the last
	// thing in the file, i.e. the file has no final newline.
	WarnNoNewlineEOF bool
	// StrictEscapes gates the warning emitted for the non-standard
	// "\e"/"\E" escape extension (0x1B). When false, the extension is
	// accepted silently.
	StrictEscapes bool
}

// Option configures an Options value. Following the functional-options
// idiom, New accepts a variadic list of Options to apply over the zero
// value.
type Option func(*Options)

// WithBackslashNewlineSpaceWarning toggles WarnBackslashNewlineSpace.
func WithBackslashNewlineSpaceWarning(b bool) Option {
	return func(o *Options) { o.WarnBackslashNewlineSpace = b }
}

// WithNoNewlineEOFWarning toggles WarnNoNewlineEOF.
func WithNoNewlineEOFWarning(b bool) Option {
	return func(o *Options) { o.WarnNoNewlineEOF = b }
}

// WithStrictEscapes toggles StrictEscapes.
func WithStrictEscapes(b bool) Option {
	return func(o *Options) { o.StrictEscapes = b }
}
