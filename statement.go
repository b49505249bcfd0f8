package hbars

import "strconv"

// callTarget is parseCallTarget's result: exactly one of path/sub is
// set, mirroring Call's own Path/Sub target fields.
type callTarget struct {
	path *Path
	sub  *Call
}

func (p *Parser) peekKind(n int) TokenKind {
	i := p.pos + n
	if i < 0 || i >= len(p.toks) {
		return TokenEnd
	}
	return p.toks[i].Kind
}

// parseCallTarget parses a Call's target: either a Path or a
// parenthesized sub-expression.
func (p *Parser) parseCallTarget() (callTarget, error) {
	if p.cur().Kind == TokenSubExprOpen {
		sub, err := p.parseSubExpr()
		if err != nil {
			return callTarget{}, err
		}
		return callTarget{sub: sub}, nil
	}
	path, err := p.parsePath()
	if err != nil {
		return callTarget{}, err
	}
	return callTarget{path: path}, nil
}

// parseCall parses a call's target followed by positional and hash
// arguments, stopping at (but not consuming) the statement's TokenEnd.
func (p *Parser) parseCall(open Token) (*Call, error) {
	call := &Call{
		source:   p.source,
		Partial:  open.Kind == TokenOpenPartial,
		Escaped:  open.Kind != TokenOpenUnescaped,
		OpenSpan: open.Span,
	}

	if p.cur().Kind == TokenEnd {
		return nil, p.errAt(p.cur(), ErrEmptyStatement, "")
	}

	target, err := p.parseCallTarget()
	if err != nil {
		return nil, err
	}
	call.Path = target.path
	call.Sub = target.sub

	seenHash := false
	for p.cur().Kind != TokenEnd {
		if p.atEOF() {
			return nil, p.errAt(p.cur(), ErrUnterminatedTag, "")
		}
		if p.cur().Kind == TokenIdentifier && p.peekKind(1) == TokenHashEquals {
			hashTok := p.advance()
			p.advance() // '='
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			for _, h := range call.Hash {
				if h.Name == hashTok.Val {
					return nil, p.errAt(hashTok, ErrDuplicateHashKey, hashTok.Val)
				}
			}
			call.Hash = append(call.Hash, HashEntry{Name: hashTok.Val, Value: val})
			seenHash = true
			continue
		}
		if seenHash {
			return nil, p.errAt(p.cur(), ErrPositionalAfterHash, "")
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, val)
	}
	return call, nil
}

// parseSubExpr parses a "(" ... ")" sub-expression: a nested call
// closed by TokenSubExprClose rather than a statement's TokenEnd.
func (p *Parser) parseSubExpr() (*Call, error) {
	open := p.advance() // '('
	call := &Call{source: p.source, Escaped: true, OpenSpan: open.Span}

	target, err := p.parseCallTarget()
	if err != nil {
		return nil, err
	}
	call.Path = target.path
	call.Sub = target.sub

	seenHash := false
	for {
		if p.atEOF() {
			return nil, p.errAt(p.cur(), ErrOpenSubExpression, "")
		}
		if p.cur().Kind == TokenSubExprClose {
			close := p.advance()
			call.CloseSpan = close.Span
			return call, nil
		}
		if p.cur().Kind == TokenIdentifier && p.peekKind(1) == TokenHashEquals {
			hashTok := p.advance()
			p.advance() // '='
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			for _, h := range call.Hash {
				if h.Name == hashTok.Val {
					return nil, p.errAt(hashTok, ErrDuplicateHashKey, hashTok.Val)
				}
			}
			call.Hash = append(call.Hash, HashEntry{Name: hashTok.Val, Value: val})
			seenHash = true
			continue
		}
		if seenHash {
			return nil, p.errAt(p.cur(), ErrPositionalAfterHash, "")
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, val)
	}
}

// parseValue parses one positional argument or hash value: a path, a
// JSON literal (scalar or array), or a sub-expression.
func (p *Parser) parseValue() (ParameterValue, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenSubExprOpen:
		sub, err := p.parseSubExpr()
		if err != nil {
			return ParameterValue{}, err
		}
		return ParameterValue{Kind: ParamSubExpr, Sub: sub}, nil
	case TokenString:
		p.advance()
		return ParameterValue{Kind: ParamJSON, JSON: tok.Val}, nil
	case TokenNumber:
		p.advance()
		n, err := strconv.ParseFloat(tok.Val, 64)
		if err != nil {
			return ParameterValue{}, p.errAt(tok, ErrUnexpectedToken, tok.Val)
		}
		return ParameterValue{Kind: ParamJSON, JSON: n}, nil
	case TokenBool:
		p.advance()
		return ParameterValue{Kind: ParamJSON, JSON: tok.Val == "true"}, nil
	case TokenNull:
		p.advance()
		return ParameterValue{Kind: ParamJSON, JSON: nil}, nil
	case TokenArrayLiteralOpen:
		lit, err := p.parseJSONLiteral()
		if err != nil {
			return ParameterValue{}, err
		}
		return ParameterValue{Kind: ParamJSON, JSON: lit}, nil
	default:
		path, err := p.parsePath()
		if err != nil {
			return ParameterValue{}, err
		}
		return ParameterValue{Kind: ParamPath, Path: path}, nil
	}
}

// parseJSONLiteral parses a JSON-shaped literal value directly: a
// string, number, bool, null, or a bracketed, comma-separated array of
// the same (spec.md §3's "array literal" ParameterValue::Json shape).
// Unlike parseValue, array elements may only be further literals, not
// paths or sub-expressions, matching the static nature of a JSON
// literal.
func (p *Parser) parseJSONLiteral() (any, error) {
	tok := p.cur()
	switch tok.Kind {
	case TokenString:
		p.advance()
		return tok.Val, nil
	case TokenNumber:
		p.advance()
		n, err := strconv.ParseFloat(tok.Val, 64)
		if err != nil {
			return nil, p.errAt(tok, ErrUnexpectedToken, tok.Val)
		}
		return n, nil
	case TokenBool:
		p.advance()
		return tok.Val == "true", nil
	case TokenNull:
		p.advance()
		return nil, nil
	case TokenArrayLiteralOpen:
		p.advance()
		elems := []any{}
		for p.cur().Kind != TokenArrayLiteralClose {
			if p.atEOF() {
				return nil, p.errAt(p.cur(), ErrUnterminatedTag, "")
			}
			v, err := p.parseJSONLiteral()
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
			if p.cur().Kind == TokenComma {
				p.advance()
				continue
			}
			break
		}
		if p.cur().Kind != TokenArrayLiteralClose {
			return nil, p.errAt(p.cur(), ErrUnexpectedToken, p.cur().Val)
		}
		p.advance()
		return elems, nil
	default:
		return nil, p.errAt(tok, ErrUnexpectedToken, tok.Val)
	}
}
