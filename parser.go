package hbars

// Parser walks a flat token stream (produced by lex) into a Node
// tree. It is a straightforward recursive-descent parser: each tag
// kind has its own parse method, and block bodies recurse back into
// the shared node-sequence parser.
type Parser struct {
	name   string
	source string
	toks   []Token
	pos    int
}

// Parse lexes and parses a template, returning its Document root.
func Parse(name, source string) (*Node, error) {
	toks, err := lex(name, source)
	if err != nil {
		return nil, err
	}
	p := &Parser{name: name, source: source, toks: toks}

	children, _, err := p.parseNodes("")
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errAt(p.cur(), ErrBlockNotOpen, p.cur().Val)
	}

	lastLine := 1
	if len(toks) > 0 {
		lastLine = toks[len(toks)-1].Line
	}
	return &Node{
		kind:      KindDocument,
		source:    source,
		span:      Span{0, len(source)},
		children:  children,
		lineStart: 1,
		lineEnd:   lastLine,
	}, nil
}

func (p *Parser) atEOF() bool { return p.pos >= len(p.toks) }

func (p *Parser) cur() Token {
	if p.atEOF() {
		if len(p.toks) == 0 {
			return Token{Kind: TokenEnd}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() Token {
	t := p.cur()
	if !p.atEOF() {
		p.pos++
	}
	return t
}

func (p *Parser) errAt(t Token, kind SyntaxErrorKind, name string) error {
	return &SyntaxError{
		Filename: p.name,
		Kind:     kind,
		Pos:      Pos{Offset: t.Span.Start, Line: t.Line, Column: t.Col},
		Name:     name,
	}
}

// elseMarker records the two whitespace-trim sigils of an
// {{else}}/{{^}} separator: the open tag's leading "~" (trims the
// last node of the body that precedes it) and the close tag's
// trailing "~" (trims the first node of the inverse body).
type elseMarker struct {
	trimBefore bool
	trimAfter  bool
}

// parseNodes parses a run of sibling nodes. When closing is non-empty
// it is the name of the enclosing block. parseNodes stops (without
// consuming) at any TokenCloseBlock/TokenCloseRawBlock, leaving the
// name check to the caller, or at
// an {{else}}/{{^}} statement (whose tokens it DOES consume),
// returning its trim sigils as elseInfo so the caller can parse the
// inverse body.
func (p *Parser) parseNodes(closing string) (nodes []*Node, elseInfo *elseMarker, err error) {
	for {
		if p.atEOF() {
			if closing != "" {
				return nil, nil, p.errAt(p.cur(), ErrUnclosedBlock, closing)
			}
			return nodes, nil, nil
		}
		tok := p.cur()
		switch tok.Kind {
		case TokenCloseBlock, TokenCloseRawBlock:
			return nodes, nil, nil

		case TokenText:
			p.advance()
			nodes = append(nodes, &Node{
				kind: KindText, source: p.source, span: tok.Span,
				lineStart: tok.Line, lineEnd: tok.Line,
			})

		case TokenRawStatement:
			p.advance()
			nodes = append(nodes, &Node{
				kind: KindRawStatement, source: p.source, span: tok.Span,
				lineStart: tok.Line, lineEnd: tok.Line,
			})

		case TokenCommentBody:
			p.advance()
			nodes = append(nodes, &Node{
				kind: KindComment, source: p.source, span: Span{tok.Span.Start - len("{{!"), tok.Span.End + len("}}")},
				lineStart: tok.Line, lineEnd: tok.Line,
			})

		case TokenRawCommentBody:
			p.advance()
			nodes = append(nodes, &Node{
				kind: KindRawComment, source: p.source, span: Span{tok.Span.Start - len("{{!--"), tok.Span.End + len("--}}")},
				lineStart: tok.Line, lineEnd: tok.Line,
			})

		case TokenOpenRawBlock:
			n, perr := p.parseRawBlock()
			if perr != nil {
				return nil, nil, perr
			}
			nodes = append(nodes, n)

		case TokenOpenStatement, TokenOpenUnescaped, TokenOpenPartial:
			n, isElse, elseTrimAfter, perr := p.parseStatement()
			if perr != nil {
				return nil, nil, perr
			}
			if isElse {
				if closing == "" {
					return nil, nil, p.errAt(tok, ErrBlockNotOpen, "else")
				}
				return nodes, &elseMarker{trimBefore: tok.TrimBefore, trimAfter: elseTrimAfter}, nil
			}
			nodes = append(nodes, n)

		case TokenOpenBlock, TokenOpenPartialBlock:
			n, perr := p.parseBlock()
			if perr != nil {
				return nil, nil, perr
			}
			nodes = append(nodes, n)

		default:
			return nil, nil, p.errAt(tok, ErrUnexpectedToken, tok.Val)
		}
	}
}

// parseStatement parses a {{ ... }}, {{{ ... }}} or {{> ... }} tag
// into a Statement Node. It reports isElse=true (without building a
// Node) when the call is the bare "else"/"^" separator, along with
// that tag's closing TrimAfter sigil.
func (p *Parser) parseStatement() (node *Node, isElse bool, elseTrimAfter bool, err error) {
	open := p.advance()

	call, err := p.parseCall(open)
	if err != nil {
		return nil, false, false, err
	}

	end := p.cur()
	if end.Kind != TokenEnd {
		return nil, false, false, p.errAt(end, ErrUnterminatedTag, "")
	}
	p.advance()
	call.CloseSpan = end.Span

	if !call.Partial && call.Sub == nil && len(call.Args) == 0 && len(call.Hash) == 0 {
		if name := call.Name(); name == "else" || name == "^" {
			return nil, true, end.TrimAfter, nil
		}
	}

	return &Node{
		kind:       KindStatement,
		source:     p.source,
		span:       Span{open.Span.Start, end.Span.End},
		lineStart:  open.Line,
		lineEnd:    end.Line,
		trimBefore: open.TrimBefore,
		trimAfter:  end.TrimAfter,
		call:       call,
	}, false, false, nil
}

// parseBlock parses a {{#name ...}} body {{else}} inverse {{/name}}
// construct, or its partial-block variant {{#> name ...}}.
func (p *Parser) parseBlock() (*Node, error) {
	open := p.advance()
	isPartialBlock := open.Kind == TokenOpenPartialBlock

	call, err := p.parseCall(open)
	if err != nil {
		return nil, err
	}
	call.Partial = call.Partial || isPartialBlock
	if call.Sub != nil && !call.Partial {
		return nil, p.errAt(open, ErrBlockTargetSubExpr, "")
	}

	openEnd := p.cur()
	if openEnd.Kind != TokenEnd {
		return nil, p.errAt(openEnd, ErrUnterminatedTag, "")
	}
	p.advance()
	call.CloseSpan = openEnd.Span

	name := call.Name()
	if name == "" && call.Sub == nil {
		return nil, p.errAt(open, ErrBlockIdentifier, "")
	}

	children, elseInfo, err := p.parseNodes(name)
	if err != nil {
		return nil, err
	}

	var inverse []*Node
	var elseTrimBefore, elseTrimAfter bool
	if elseInfo != nil {
		elseTrimBefore, elseTrimAfter = elseInfo.trimBefore, elseInfo.trimAfter
		inverse, _, err = p.parseNodes(name)
		if err != nil {
			return nil, err
		}
	}

	if p.atEOF() || p.cur().Kind != TokenCloseBlock {
		return nil, p.errAt(p.cur(), ErrUnclosedBlock, name)
	}
	closeOpenTok := p.advance()

	closeName, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if name != "" && closeName.String() != name {
		return nil, p.errAt(closeOpenTok, ErrTagNameMismatch, closeName.String())
	}

	closeEnd := p.cur()
	if closeEnd.Kind != TokenEnd {
		return nil, p.errAt(closeEnd, ErrUnterminatedTag, "")
	}
	p.advance()

	return &Node{
		kind:            KindBlock,
		source:          p.source,
		span:            Span{open.Span.Start, closeEnd.Span.End},
		lineStart:       open.Line,
		lineEnd:         closeEnd.Line,
		trimBefore:      open.TrimBefore,
		trimAfter:       closeEnd.TrimAfter,
		openTrimAfter:   openEnd.TrimAfter,
		closeTrimBefore: closeOpenTok.TrimBefore,
		elseTrimBefore:  elseTrimBefore,
		elseTrimAfter:   elseTrimAfter,
		call:            call,
		children:        children,
		inverse:         inverse,
	}, nil
}

// parseRawBlock parses a {{{{name}}}} ... {{{{/name}}}} construct.
// Its body is plain Text (no nested tags are interpreted).
func (p *Parser) parseRawBlock() (*Node, error) {
	open := p.advance() // TokenOpenRawBlock, Val = name
	name := open.Val

	var between Span
	if p.cur().Kind == TokenRawBlockBody {
		body := p.advance()
		between = body.Span
	} else {
		between = Span{open.Span.End, open.Span.End}
	}

	if p.atEOF() || p.cur().Kind != TokenCloseRawBlock {
		return nil, p.errAt(p.cur(), ErrUnclosedBlock, name)
	}
	close := p.advance()
	if close.Val != name {
		return nil, p.errAt(close, ErrTagNameMismatch, close.Val)
	}

	call := &Call{source: p.source, Path: &Path{Components: []Component{{Kind: CompIdentifier, Value: name, Span: open.Span}}}}

	return &Node{
		kind:      KindRawBlock,
		source:    p.source,
		span:      Span{open.Span.Start - len("{{{{"), close.Span.End},
		lineStart: open.Line,
		lineEnd:   close.Line,
		call:      call,
		between:   between,
	}, nil
}
