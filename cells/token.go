package cells

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenPlus      TokenType = "+"
	tokenMinus     TokenType = "-"
	tokenAsterisk  TokenType = "*"
	tokenSlash     TokenType = "/"
	tokenCaret     TokenType = "^"
	tokenAmpersand TokenType = "&"
	tokenEQ        TokenType = "="
	tokenNotEQ     TokenType = "<>"
	tokenLT        TokenType = "<"
	tokenGT        TokenType = ">"
	tokenLTE       TokenType = "<="
	tokenGTE       TokenType = ">="

	tokenComma  TokenType = ","
	tokenColon  TokenType = ":"
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
)

// Token captures lexical information for the parser. Pos and End are
// byte offsets into the formula body; body[Pos:End] is the token's
// source text, which reference shifting relies on. String tokens hold
// the decoded text in Literal, so their span is wider than their
// literal. Illegal tokens carry a diagnostic message instead of
// source text.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	End     int
}
