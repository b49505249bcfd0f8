package hbars

import (
	"fmt"
	"strings"
)

// Pos is a source position: a byte offset plus the 1-based line/column
// it corresponds to.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// SyntaxErrorKind enumerates the ways compiling a template can fail.
// The richer flag set described in spec.md's Open Questions is used
// here (parent counters, explicit-this, local identifiers, array
// access) rather than the narrower legacy variant.
type SyntaxErrorKind int

const (
	ErrUnterminatedTag SyntaxErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedComment
	ErrUnterminatedRawBlock
	ErrStringLiteralNewline
	ErrUnknownEscape
	ErrNewlineInTag
	ErrEmptyStatement
	ErrEmptyPath
	ErrExpectedIdentifier
	ErrBlockNameNotIdentifier
	ErrPartialIdentifier
	ErrBlockIdentifier
	ErrUnexpectedPathExplicitThis
	ErrUnexpectedPathParent
	ErrUnexpectedPathLocal
	ErrUnexpectedPathDelimiter
	ErrExpectedPathDelimiter
	ErrUnexpectedPathParentWithLocal
	ErrUnexpectedPathParentWithExplicit
	ErrOpenSubExpression
	ErrTagNameMismatch
	ErrBlockNotOpen
	ErrUnclosedBlock
	ErrDuplicateHashKey
	ErrPositionalAfterHash
	ErrMixedPartialConditional
	ErrBlockTargetSubExpr
	ErrUnexpectedToken
)

var syntaxErrorMessages = map[SyntaxErrorKind]string{
	ErrUnterminatedTag:                  "tag was not terminated",
	ErrUnterminatedString:               "string literal was not closed",
	ErrUnterminatedComment:              "comment was not closed",
	ErrUnterminatedRawBlock:             "raw block was not closed",
	ErrStringLiteralNewline:             "new lines in string literals must be escaped (\\n)",
	ErrUnknownEscape:                    "unknown escape sequence in string literal",
	ErrNewlineInTag:                     "newline not allowed within a tag",
	ErrEmptyStatement:                   "statement is empty",
	ErrEmptyPath:                        "path is empty",
	ErrExpectedIdentifier:               "expecting identifier",
	ErrBlockNameNotIdentifier:           "block name must be a simple identifier",
	ErrPartialIdentifier:                "partial requires an identifier",
	ErrBlockIdentifier:                  "block scope requires an identifier",
	ErrUnexpectedPathExplicitThis:       "explicit this reference must be at the start of a path",
	ErrUnexpectedPathParent:             "parent scopes must be at the start of a path",
	ErrUnexpectedPathLocal:              "local scope identifiers must be at the start of a path",
	ErrUnexpectedPathDelimiter:          "expected identifier but got a path delimiter",
	ErrExpectedPathDelimiter:            "expected a path delimiter (. or /)",
	ErrUnexpectedPathParentWithLocal:    "parent scopes and local identifiers are mutually exclusive",
	ErrUnexpectedPathParentWithExplicit: "parent scopes and explicit this are mutually exclusive",
	ErrOpenSubExpression:                "sub-expression was not terminated",
	ErrTagNameMismatch:                  "closing tag name does not match the opening tag",
	ErrBlockNotOpen:                     "closing tag found but no block is open",
	ErrUnclosedBlock:                    "block was not closed before end of input",
	ErrDuplicateHashKey:                 "duplicate hash parameter key",
	ErrPositionalAfterHash:              "positional argument may not follow a hash argument",
	ErrMixedPartialConditional:          "partials and conditionals may not be combined",
	ErrBlockTargetSubExpr:               "block target sub-expressions are only supported for partials",
	ErrUnexpectedToken:                  "unexpected token",
}

func (k SyntaxErrorKind) String() string {
	if s, ok := syntaxErrorMessages[k]; ok {
		return s
	}
	return "syntax error"
}

// SyntaxError is produced during lexing or parsing. It carries the
// source position, the offending name (if any), and free-form notes.
type SyntaxError struct {
	Filename string
	Kind     SyntaxErrorKind
	Pos      Pos
	Name     string
	Notes    []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		fmt.Fprintf(&b, "%s:", e.Filename)
	}
	fmt.Fprintf(&b, "%d:%d: syntax error: %s", e.Pos.Line, e.Pos.Column, e.Kind.String())
	if e.Name != "" {
		fmt.Fprintf(&b, " (%q)", e.Name)
	}
	for _, n := range e.Notes {
		fmt.Fprintf(&b, "\n  note: %s", n)
	}
	return b.String()
}

// Is supports errors.Is comparison by kind, as required by spec.md §7
// ("each error is equality-comparable by kind+identifier for testing").
func (e *SyntaxError) Is(target error) bool {
	other, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind && e.Name == other.Name
}

// RenderErrorKind enumerates render-time failures.
type RenderErrorKind int

const (
	ErrTemplateNotFound RenderErrorKind = iota
	ErrPartialNotFound
	ErrWriterFailed
	ErrSerializationFailed
	ErrScopeUnderflow
	ErrHelperFailed
	ErrMissingValueStrict
)

var renderErrorMessages = map[RenderErrorKind]string{
	ErrTemplateNotFound:   "template not found",
	ErrPartialNotFound:    "partial not found",
	ErrWriterFailed:       "writer returned an error",
	ErrSerializationFailed: "value could not be serialized",
	ErrScopeUnderflow:     "parent scope reference exceeds the current scope depth",
	ErrHelperFailed:       "helper returned an error",
	ErrMissingValueStrict: "path did not resolve to a value (strict mode)",
}

func (k RenderErrorKind) String() string {
	if s, ok := renderErrorMessages[k]; ok {
		return s
	}
	return "render error"
}

// RenderError is produced while walking the AST against a data value.
type RenderError struct {
	Filename string
	Kind     RenderErrorKind
	Name     string
	Pos      Pos
	Cause    error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		fmt.Fprintf(&b, "%s:", e.Filename)
	}
	if e.Pos.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", e.Pos.Line, e.Pos.Column)
	}
	fmt.Fprintf(&b, "render error: %s", e.Kind.String())
	if e.Name != "" {
		fmt.Fprintf(&b, " (%q)", e.Name)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %s", e.Cause.Error())
	}
	return b.String()
}

func (e *RenderError) Unwrap() error { return e.Cause }

func (e *RenderError) Is(target error) bool {
	other, ok := target.(*RenderError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind && e.Name == other.Name
}

// HelperErrorKind enumerates the ways a helper call can be misused.
type HelperErrorKind int

const (
	ErrArityExact HelperErrorKind = iota
	ErrArityRange
	ErrArgType
	ErrHashType
	ErrHelperMessage
)

// HelperError reports helper misuse (arity, argument or hash type) or,
// with Kind ErrHelperMessage, an arbitrary helper-raised message. A
// HelperError returned by a helper reaches the caller as is; any other
// error a helper returns is wrapped in a RenderError of kind
// ErrHelperFailed.
type HelperError struct {
	Helper  string
	Kind    HelperErrorKind
	Lo, Hi  int
	ArgIdx  int
	Want    string
	Message string
}

func (e *HelperError) Error() string {
	switch e.Kind {
	case ErrArityExact:
		return fmt.Sprintf("helper %q expects exactly %d argument(s)", e.Helper, e.Lo)
	case ErrArityRange:
		return fmt.Sprintf("helper %q expects between %d and %d argument(s)", e.Helper, e.Lo, e.Hi)
	case ErrArgType:
		return fmt.Sprintf("helper %q argument %d: expected %s", e.Helper, e.ArgIdx, e.Want)
	case ErrHashType:
		return fmt.Sprintf("helper %q hash parameter %q: expected %s", e.Helper, e.Want, e.Message)
	default:
		return fmt.Sprintf("helper %q: %s", e.Helper, e.Message)
	}
}

func arityExact(helper string, n int) *HelperError {
	return &HelperError{Helper: helper, Kind: ErrArityExact, Lo: n}
}

func arityRange(helper string, lo, hi int) *HelperError {
	return &HelperError{Helper: helper, Kind: ErrArityRange, Lo: lo, Hi: hi}
}

func argTypeError(helper string, idx int, want string) *HelperError {
	return &HelperError{Helper: helper, Kind: ErrArgType, ArgIdx: idx, Want: want}
}
