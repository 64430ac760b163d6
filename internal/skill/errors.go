package skill

import "errors"

// ParseErrorKind is the taxonomy of fatal parse failures (spec §4.1, §7).
type ParseErrorKind string

const (
	KindMalformedFile    ParseErrorKind = "MalformedFile"
	KindSchemaViolation  ParseErrorKind = "SchemaViolation"
)

// ParseError is returned by Parse when a file cannot be turned into a valid
// Skill. It carries enough context for the Indexing Engine to aggregate
// per-file failures without aborting a reindex pass.
type ParseError struct {
	Kind ParseErrorKind
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return string(e.Kind) + ": " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	// ErrNoFrontMatter is wrapped into a MalformedFile ParseError when the
	// file does not open with a "---" fence.
	ErrNoFrontMatter = errors.New("file does not begin with front-matter fences")

	// ErrMissingName is wrapped into a SchemaViolation ParseError.
	ErrMissingName = errors.New("front-matter is missing required field: name")

	// ErrMissingDescription is wrapped into a SchemaViolation ParseError.
	ErrMissingDescription = errors.New("front-matter is missing required field: description")

	// ErrDescriptionTooShort is wrapped into a SchemaViolation ParseError.
	ErrDescriptionTooShort = errors.New("description must be at least 10 characters")

	// ErrInstructionsTooShort is wrapped into a SchemaViolation ParseError.
	ErrInstructionsTooShort = errors.New("instructions (body) must be at least 50 characters")

	// ErrNameTooLong is wrapped into a SchemaViolation ParseError.
	ErrNameTooLong = errors.New("name must be 64 characters or fewer")
)
