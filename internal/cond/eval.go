package cond

import (
	"strconv"
	"strings"

	"tcab/internal/buildvar"
	"tcab/internal/diag"
	"tcab/internal/token"
)

// Evaluate computes "name op literal". at anchors diagnostics when expr is empty.
// Only an uninferable literal is an error; everything else reports and yields false.
func Evaluate(at token.Token, expr token.Stream, vars *buildvar.Set, r diag.Reporter) (bool, error) {
	if len(expr) < 3 {
		anchor := at
		if len(expr) > 0 {
			anchor = expr[0]
		}
		diag.ReportError(r, diag.SynShortCondition, &anchor, "condition must be 'name operator value'").
			WithHint("Write the condition as e.g. 'DEBUG == true'.").Emit()
		return false, nil
	}

	nameTok := expr[0]
	v, ok := vars.Lookup(nameTok.Text)
	if !ok {
		return false, nil
	}

	j := 1
	var op strings.Builder
	for j < len(expr) && isOperatorPart(expr[j].Kind) {
		op.WriteString(expr[j].Text)
		j++
	}
	opTok := expr[1]
	if !validOperator(op.String()) {
		diag.ReportError(r, diag.SynBadOperator, &opTok, "unknown comparison operator '"+op.String()+"'").
			WithHint("Use one of ==, !=, <, <=, >, >=.").Emit()
		return false, nil
	}
	if j >= len(expr) {
		diag.ReportError(r, diag.SynShortCondition, &opTok, "condition has no value after '"+op.String()+"'").
			WithHint("Write the condition as e.g. 'DEBUG == true'.").Emit()
		return false, nil
	}

	litTok := expr[j]
	var lit strings.Builder
	for _, tok := range expr[j:] {
		lit.WriteString(tok.Text)
	}
	literal := lit.String()

	kind, err := buildvar.InferKind(literal)
	if err != nil {
		return false, diag.ReportError(r, diag.CmpCannotInferKind, &litTok, "cannot infer the kind of '"+literal+"'").
			WithHint("Use true/false, a number or a quoted string.").Fatal()
	}
	if kind != v.Kind {
		diag.ReportError(r, diag.CmpKindMismatch, &litTok,
			"'"+v.Name+"' is "+v.Kind.String()+" but '"+literal+"' is "+kind.String()).Emit()
		return false, nil
	}
	if op.String() != "==" && op.String() != "!=" && !kind.Ordered() {
		diag.ReportError(r, diag.CmpOrderingUnsupported, &opTok,
			"operator '"+op.String()+"' is not defined for "+kind.String()).
			WithHint("Compare with == or !=.").Emit()
		return false, nil
	}

	return compare(kind, v.Value, op.String(), literal), nil
}

func isOperatorPart(k token.Kind) bool {
	switch k {
	case token.Assign, token.Bang, token.Lt, token.Gt:
		return true
	}
	return false
}

func validOperator(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func compare(kind buildvar.Kind, left, op, right string) bool {
	var c int
	switch kind {
	case buildvar.Int:
		l, _ := strconv.ParseInt(left, 10, 64)
		r, _ := strconv.ParseInt(right, 10, 64)
		c = cmp3(l < r, l > r)
	case buildvar.Float:
		l, _ := strconv.ParseFloat(left, 64)
		r, _ := strconv.ParseFloat(right, 64)
		c = cmp3(l < r, l > r)
	default:
		c = cmp3(false, left != right)
	}
	switch op {
	case "==":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	}
	return false
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}
