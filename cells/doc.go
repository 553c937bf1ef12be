// Package cells implements a spreadsheet formula engine. It evaluates
// the raw text a host grid stores per cell, supporting:
//   - Formulas marked by a leading `=`; other text classifies as a
//     number, text, or an empty cell.
//   - Literals for numbers (with decimal and exponent forms), strings
//     in double quotes with `""` as the escaped quote, and TRUE/FALSE.
//   - Arithmetic (+, -, *, /, ^), text concatenation (&), and
//     comparison operators (=, <>, <, >, <=, >=) with parentheses for
//     grouping.
//   - A1-style cell references with optional `$` pins per axis, and
//     rectangular ranges like A1:B3 as function arguments.
//   - A function library (SUM, AVERAGE, IF, CONCATENATE, and friends)
//     extensible through RegisterFunction.
//
// Evaluation failures are values, not Go errors: a broken formula
// yields a Value of KindError carrying a code such as #DIV/0! or
// #CYCLE!, and errors flow through dependent formulas. Results are
// cached per cell until InvalidateCache; reference cycles are
// detected and reported rather than looping. ShiftReferences rewrites
// a formula's relative references for copy and fill operations.
package cells
