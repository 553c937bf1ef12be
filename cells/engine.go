package cells

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Grid supplies raw cell content to an Engine. RawContent returns the
// literal text stored at an address, or "" when the cell is unset. The
// engine always asks with a plain relative address, so implementations
// never see "$" pin flags.
type Grid interface {
	RawContent(addr Address) string
}

// Config carries the collaborators an Engine needs. Grid is required.
// Clock and Rand feed NOW, TODAY and RAND; nil fields fall back to
// the real clock and math/rand.
type Config struct {
	Grid  Grid
	Clock func() time.Time
	Rand  func() float64
}

// Env gives function implementations access to engine facilities.
type Env struct {
	Clock func() time.Time
	Rand  func() float64
}

// Engine evaluates cell formulas against a Grid, caching each cell's
// result until InvalidateCache is called. An Engine is not safe for
// concurrent use.
type Engine struct {
	grid Grid
	env  Env

	functions map[string]Function
	cache     map[cellKey]Value
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Grid == nil {
		return nil, errors.New("cells: Config.Grid is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}

	e := &Engine{
		grid:      cfg.Grid,
		env:       Env{Clock: cfg.Clock, Rand: cfg.Rand},
		functions: make(map[string]Function),
		cache:     make(map[cellKey]Value),
	}
	registerBuiltins(e)
	return e, nil
}

// MustNewEngine is NewEngine for callers that treat a bad Config as a
// programming error.
func MustNewEngine(cfg Config) *Engine {
	e, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate returns the value of the cell at addr. Raw content is
// fetched through the Grid at most once per cell between cache
// invalidations; failures come back as error values, never Go errors.
func (e *Engine) Evaluate(addr Address) Value {
	return e.newEvaluation().evalCell(addr)
}

// EvaluateContent evaluates raw cell text that is not stored in any
// cell, such as a formula bar draft. References resolve against the
// Grid and their cells are cached, but the result itself is not.
func (e *Engine) EvaluateContent(raw string) Value {
	return asScalar(e.newEvaluation().evalRaw(raw))
}

// InvalidateCache drops every cached result. Hosts call this after
// any cell content changes; the next Evaluate recomputes from raw
// content.
func (e *Engine) InvalidateCache() {
	clear(e.cache)
}

// RegisterFunction adds fn to the function table, replacing any
// existing function with the same name. Names are case-insensitive.
func (e *Engine) RegisterFunction(fn Function) error {
	if fn.Name == "" {
		return errors.New("cells: function name is required")
	}
	if fn.Call == nil && fn.lazy == nil {
		return errors.New("cells: function " + fn.Name + " has no implementation")
	}
	e.functions[strings.ToUpper(fn.Name)] = fn
	return nil
}

func (e *Engine) mustRegister(fn Function) {
	if err := e.RegisterFunction(fn); err != nil {
		panic(err)
	}
}

// Functions lists the registered functions sorted by name.
func (e *Engine) Functions() []Function {
	out := make([]Function, 0, len(e.functions))
	for _, fn := range e.functions {
		out = append(out, fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
