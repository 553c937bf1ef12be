package cells

type Node interface {
	Pos() int
}

type Expression interface {
	Node
	exprNode()
}

type NumberLit struct {
	Value    float64
	position int
}

func (e *NumberLit) exprNode() {}
func (e *NumberLit) Pos() int  { return e.position }

type StringLit struct {
	Value    string
	position int
}

func (e *StringLit) exprNode() {}
func (e *StringLit) Pos() int  { return e.position }

type BoolLit struct {
	Value    bool
	position int
}

func (e *BoolLit) exprNode() {}
func (e *BoolLit) Pos() int  { return e.position }

type CellRefExpr struct {
	Addr     Address
	position int
}

func (e *CellRefExpr) exprNode() {}
func (e *CellRefExpr) Pos() int  { return e.position }

type RangeRefExpr struct {
	From     Address
	To       Address
	position int
}

func (e *RangeRefExpr) exprNode() {}
func (e *RangeRefExpr) Pos() int  { return e.position }

// NameExpr is an identifier that is neither a call nor a cell
// address. It always evaluates to an invalid-reference error.
type NameExpr struct {
	Name     string
	position int
}

func (e *NameExpr) exprNode() {}
func (e *NameExpr) Pos() int  { return e.position }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	position int
}

func (e *UnaryExpr) exprNode() {}
func (e *UnaryExpr) Pos() int  { return e.position }

type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position int
}

func (e *BinaryExpr) exprNode() {}
func (e *BinaryExpr) Pos() int  { return e.position }

type CallExpr struct {
	Name     string
	Args     []Expression
	position int
}

func (e *CallExpr) exprNode() {}
func (e *CallExpr) Pos() int  { return e.position }
