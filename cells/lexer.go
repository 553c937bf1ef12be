package cells

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	var r rune
	var w int
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w = utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

func (l *lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.currentOffset()

	switch l.ch {
	case 0:
		return Token{Type: tokenEOF, Pos: start, End: start}
	case '+':
		l.readRune()
		return l.spanToken(tokenPlus, "+", start)
	case '-':
		l.readRune()
		return l.spanToken(tokenMinus, "-", start)
	case '*':
		l.readRune()
		return l.spanToken(tokenAsterisk, "*", start)
	case '/':
		l.readRune()
		return l.spanToken(tokenSlash, "/", start)
	case '^':
		l.readRune()
		return l.spanToken(tokenCaret, "^", start)
	case '&':
		l.readRune()
		return l.spanToken(tokenAmpersand, "&", start)
	case '=':
		l.readRune()
		return l.spanToken(tokenEQ, "=", start)
	case '<':
		switch l.peekRune() {
		case '>':
			l.readRune()
			l.readRune()
			return l.spanToken(tokenNotEQ, "<>", start)
		case '=':
			l.readRune()
			l.readRune()
			return l.spanToken(tokenLTE, "<=", start)
		default:
			l.readRune()
			return l.spanToken(tokenLT, "<", start)
		}
	case '>':
		if l.peekRune() == '=' {
			l.readRune()
			l.readRune()
			return l.spanToken(tokenGTE, ">=", start)
		}
		l.readRune()
		return l.spanToken(tokenGT, ">", start)
	case ',':
		l.readRune()
		return l.spanToken(tokenComma, ",", start)
	case ':':
		l.readRune()
		return l.spanToken(tokenColon, ":", start)
	case '(':
		l.readRune()
		return l.spanToken(tokenLParen, "(", start)
	case ')':
		l.readRune()
		return l.spanToken(tokenRParen, ")", start)
	case '"':
		literal, errMsg := l.readString()
		if errMsg != "" {
			return l.spanToken(tokenIllegal, errMsg, start)
		}
		return l.spanToken(tokenString, literal, start)
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			return l.spanToken(tokenIdent, literal, start)
		case unicode.IsDigit(l.ch):
			literal := l.readNumber()
			return l.spanToken(tokenNumber, literal, start)
		default:
			errMsg := fmt.Sprintf("unrecognized character %q", l.ch)
			l.readRune()
			return l.spanToken(tokenIllegal, errMsg, start)
		}
	}
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

// spanToken builds a token whose span runs from start to the offset of
// the rune now current, so it must be called after the token's runes
// have been consumed.
func (l *lexer) spanToken(tt TokenType, literal string, start int) Token {
	return Token{Type: tt, Literal: literal, Pos: start, End: l.currentOffset()}
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes digits, an optional fraction, and an optional
// exponent. A dot or exponent marker not followed by a digit is left
// for the next token.
func (l *lexer) readNumber() string {
	start := l.currentOffset()

	for unicode.IsDigit(l.peekRune()) {
		l.readRune()
	}

	if l.peekRune() == '.' && unicode.IsDigit(l.peekRuneN(1)) {
		l.readRune()
		for unicode.IsDigit(l.peekRune()) {
			l.readRune()
		}
	}

	if r := l.peekRune(); r == 'e' || r == 'E' {
		switch next := l.peekRuneN(1); {
		case unicode.IsDigit(next):
			l.readRune()
		case (next == '+' || next == '-') && unicode.IsDigit(l.peekRuneN(2)):
			l.readRune()
			l.readRune()
		default:
			goto done
		}
		for unicode.IsDigit(l.peekRune()) {
			l.readRune()
		}
	}

done:
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readString decodes a double-quoted literal where "" stands for one
// quote. The second return is a diagnostic, "" on success.
func (l *lexer) readString() (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0:
			return "", "unterminated string"
		case '"':
			if l.peekRune() == '"' {
				l.readRune()
				sb.WriteByte('"')
				continue
			}
			l.readRune()
			return sb.String(), ""
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}
