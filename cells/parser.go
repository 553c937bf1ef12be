package cells

import (
	"fmt"
	"strconv"
	"strings"
)

type parseError struct {
	pos int
	msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.pos, e.msg)
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	l := newLexer(input)
	p := &parser{l: l}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.prefixFns[tokenIdent] = p.parseIdentExpression
	p.prefixFns[tokenNumber] = p.parseNumberLiteral
	p.prefixFns[tokenString] = p.parseStringLiteral
	p.prefixFns[tokenLParen] = p.parseGroupedExpression
	p.prefixFns[tokenMinus] = p.parsePrefixExpression
	p.prefixFns[tokenPlus] = p.parsePrefixExpression

	p.infixFns[tokenEQ] = p.parseInfixExpression
	p.infixFns[tokenNotEQ] = p.parseInfixExpression
	p.infixFns[tokenLT] = p.parseInfixExpression
	p.infixFns[tokenLTE] = p.parseInfixExpression
	p.infixFns[tokenGT] = p.parseInfixExpression
	p.infixFns[tokenGTE] = p.parseInfixExpression
	p.infixFns[tokenAmpersand] = p.parseInfixExpression
	p.infixFns[tokenPlus] = p.parseInfixExpression
	p.infixFns[tokenMinus] = p.parseInfixExpression
	p.infixFns[tokenAsterisk] = p.parseInfixExpression
	p.infixFns[tokenSlash] = p.parseInfixExpression
	p.infixFns[tokenCaret] = p.parsePowerExpression
	p.infixFns[tokenColon] = p.parseRangeExpression

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// parseFormula parses one formula body (the text after the leading
// "="). Anything left over after the expression is an error.
func parseFormula(body string) (Expression, error) {
	p := newParser(body)
	expr := p.parseExpression(lowestPrec)
	if len(p.errors) == 0 && p.peekToken.Type != tokenEOF {
		p.errorUnexpected(p.peekToken)
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

// Precedence ladder, loosest first. Comparison binds loosest so
// 1+2=3 reads as (1+2)=3; the range colon binds tightest so A1:B2
// stays a unit under any operator.
const (
	lowestPrec = iota
	precCompare
	precConcat
	precSum
	precProduct
	precPower
	precUnary
	precRange
)

var precedences = map[TokenType]int{
	tokenEQ:        precCompare,
	tokenNotEQ:     precCompare,
	tokenLT:        precCompare,
	tokenLTE:       precCompare,
	tokenGT:        precCompare,
	tokenGTE:       precCompare,
	tokenAmpersand: precConcat,
	tokenPlus:      precSum,
	tokenMinus:     precSum,
	tokenAsterisk:  precProduct,
	tokenSlash:     precProduct,
	tokenCaret:     precPower,
	tokenColon:     precRange,
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

// parseIdentExpression resolves an identifier by position: followed
// by "(" it names a function, otherwise it must spell a cell address.
// TRUE and FALSE read as literals.
func (p *parser) parseIdentExpression() Expression {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	if p.peekToken.Type == tokenLParen {
		p.nextToken()
		return p.parseCallExpression(name, pos)
	}

	if strings.EqualFold(name, "TRUE") {
		return &BoolLit{Value: true, position: pos}
	}
	if strings.EqualFold(name, "FALSE") {
		return &BoolLit{Value: false, position: pos}
	}

	if addr, err := ParseAddress(name); err == nil {
		return &CellRefExpr{Addr: addr, position: pos}
	}
	return &NameExpr{Name: name, position: pos}
}

func (p *parser) parseNumberLiteral() Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errors = append(p.errors, &parseError{pos: p.curToken.Pos, msg: "invalid number literal"})
		return nil
	}
	return &NumberLit{Value: value, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLit{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precUnary)
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

// parsePowerExpression parses the right operand one level below its
// own precedence, making ^ right-associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePowerExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPower - 1)
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

// parseRangeExpression requires a cell reference on both sides of the
// colon; anything else is malformed rather than a looser expression.
func (p *parser) parseRangeExpression(left Expression) Expression {
	pos := p.curToken.Pos

	start, ok := left.(*CellRefExpr)
	if !ok {
		p.errors = append(p.errors, &parseError{pos: pos, msg: "left side of : is not a cell address"})
		return nil
	}

	if p.peekToken.Type != tokenIdent {
		p.errorExpected(p.peekToken, "cell address after :")
		return nil
	}
	p.nextToken()

	end, err := ParseAddress(p.curToken.Literal)
	if err != nil {
		p.errors = append(p.errors, &parseError{pos: p.curToken.Pos, msg: fmt.Sprintf("%q is not a cell address", p.curToken.Literal)})
		return nil
	}

	return &RangeRefExpr{From: start.Addr, To: end, position: start.Pos()}
}

func (p *parser) parseCallExpression(name string, pos int) Expression {
	args := []Expression{}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return &CallExpr{Name: name, Args: args, position: pos}
	}

	p.nextToken()
	args = append(args, p.parseExpression(lowestPrec))

	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(lowestPrec))
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}

	return &CallExpr{Name: name, Args: args, position: pos}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, string(tt))
	return false
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: fmt.Sprintf("expected %s, got %s", expected, tok.Type)})
}

func (p *parser) errorUnexpected(tok Token) {
	switch tok.Type {
	case tokenIllegal:
		p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: tok.Literal})
	case tokenEOF:
		p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: "unexpected end of formula"})
	default:
		p.errors = append(p.errors, &parseError{pos: tok.Pos, msg: fmt.Sprintf("unexpected token %s", tok.Type)})
	}
}
