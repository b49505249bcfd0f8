package hbars

import "strings"

// lexParamsEntry returns the parameter-mode state function bound to
// whether the enclosing tag used triple braces, so the closer it
// looks for is "}}}" rather than "}}".
func lexParamsEntry(triple bool) lexerStateFn {
	return func(l *lexer) lexerStateFn {
		return lexParams(l, triple)
	}
}

// lexParams tokenizes the content of a single {{ ... }} / {{{ ... }}}
// tag: identifiers, local identifiers, parent references, path
// delimiters, array access, JSON literals, quoted strings,
// sub-expression parens, hash separators, and the closing delimiter.
func lexParams(l *lexer, triple bool) lexerStateFn {
	for {
		// Skip intra-tag whitespace; newlines inside a tag are a
		// syntax error (spec.md §4.A parameter mode).
		for l.peek() == ' ' || l.peek() == '\t' || l.peek() == '\r' {
			l.next()
		}
		if l.peek() == '\n' {
			return l.errorf("newline not allowed within a tag")
		}
		l.ignore()

		if closed, trimAfter := l.matchClose(triple); closed {
			l.tokens = append(l.tokens, Token{
				Kind:      TokenEnd,
				Span:      Span{l.start, l.pos},
				Line:      l.startLine,
				Col:       l.startCol,
				TrimAfter: trimAfter,
				Triple:    triple,
			})
			l.reset()
			return lexOuter
		}

		switch r := l.peek(); {
		case r == eof:
			return l.errorf("tag was not terminated")
		case r == '"' || r == '\'':
			return lexString(l, r, lexParamsEntry(triple))
		case r == '(':
			l.next()
			l.emit(TokenSubExprOpen)
		case r == ')':
			l.next()
			l.emit(TokenSubExprClose)
		case r == '[':
			if arrayLiteralAhead(l) {
				l.next()
				l.emit(TokenArrayLiteralOpen)
				l.arrayDepth++
			} else if !lexArrayAccess(l) {
				return nil
			}
		case r == ']' && l.arrayDepth > 0:
			l.next()
			l.emit(TokenArrayLiteralClose)
			l.arrayDepth--
		case r == ',' && l.arrayDepth > 0:
			l.next()
			l.emit(TokenComma)
		case r == '@':
			l.next()
			if !isIdentStart(l.peek()) {
				return l.errorf("expecting identifier after '@'")
			}
			l.ignore() // exclude the '@' itself from the token's Val
			for isIdentChar(l.peek()) {
				l.next()
			}
			l.emit(TokenLocalIdentifier)
		case l.hasPrefix("../"):
			l.advanceBytes(3)
			l.emit(TokenParentRef)
		case l.hasPrefix("./"):
			l.advanceBytes(2)
			l.emit(TokenThisDotSlash)
		case r == '.' || r == '/':
			l.next()
			l.emit(TokenPathDelimiter)
		case r == '=':
			l.next()
			l.emit(TokenHashEquals)
		case r == '^':
			l.next()
			l.emitVal(TokenIdentifier, "^")
		case isDigit(r) || (r == '-' && isDigit(l.peekAt(1))):
			lexNumber(l)
		case isIdentStart(r):
			lexIdentifier(l)
		default:
			return l.errorf("unexpected character %q", string(r))
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// matchClose consumes the closing delimiter for the current tag if
// it is present at the cursor, honoring an optional trim sigil.
func (l *lexer) matchClose(triple bool) (ok bool, trimAfter bool) {
	want := "}}"
	if triple {
		want = "}}}"
	}
	if l.hasPrefix("~" + want) {
		l.advanceBytes(1 + len(want))
		return true, true
	}
	if l.hasPrefix(want) {
		l.advanceBytes(len(want))
		return true, false
	}
	return false, false
}

func lexIdentifier(l *lexer) {
	for isIdentChar(l.peek()) {
		l.next()
	}
	switch l.value() {
	case "this":
		l.emit(TokenThisKeyword)
	case "true", "false":
		l.emit(TokenBool)
	case "null", "undefined":
		l.emit(TokenNull)
	default:
		l.emit(TokenIdentifier)
	}
}

func lexNumber(l *lexer) {
	if l.peek() == '-' {
		l.next()
	}
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}
	l.emit(TokenNumber)
}

// arrayLiteralAhead looks ahead from an unconsumed '[' to decide
// whether it opens a JSON array literal (spec.md §3's
// ParameterValue::Json array shape) rather than a path's array-access
// subscript: a top-level comma before the matching ']' means a
// literal ({{helper [1, 2, 3]}}); a single bare segment ({{foo.[0]}})
// stays array access, preserving the existing path grammar.
func arrayLiteralAhead(l *lexer) bool {
	depth := 0
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case '"', '\'':
			quote := l.input[i]
			i++
			for i < len(l.input) && l.input[i] != quote {
				if l.input[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case '[':
			depth++
			i++
		case ']':
			if depth == 0 {
				return false
			}
			depth--
			i++
		case ',':
			if depth == 0 {
				return true
			}
			i++
		default:
			i++
		}
	}
	return false
}

// lexArrayAccess consumes a [...] segment, allowing nested quoted
// strings so a literal "]" may appear inside a quoted key.
func lexArrayAccess(l *lexer) bool {
	l.next() // consume '['
	contentStart := l.pos
	depth := 0
	for {
		switch r := l.peek(); {
		case r == eof:
			l.errorf("array access was not closed")
			return false
		case r == '"' || r == '\'':
			quote := r
			l.next()
			for l.peek() != quote {
				if l.peek() == eof {
					l.errorf("string literal was not closed")
					return false
				}
				if l.peek() == '\\' {
					l.next()
				}
				l.next()
			}
			l.next()
		case r == '[':
			depth++
			l.next()
		case r == ']':
			if depth == 0 {
				content := l.input[contentStart:l.pos]
				l.next() // consume ']'
				l.emitVal(TokenArrayAccess, strings.Trim(content, `"'`))
				return true
			}
			depth--
			l.next()
		default:
			l.next()
		}
	}
}
