package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-esnorm/internal/ast"
)

// genTmp returns a fresh "tmp<k>" name and appends its declarator to the
// entity's hoisted tmps list (spec.md §4.2).
func (e *entity) genTmp() string {
	name := fmt.Sprintf("tmp%d", e.sh.counter)
	e.sh.counter++
	e.tmps = append(e.tmps, ast.NewVariableDeclarator(ident(name), nil))
	return name
}

// genLabel returns a fresh name from the same space as genTmp, but does
// not declare it: labels are never var-declared (spec.md §4.2).
func (e *entity) genLabel() string {
	name := fmt.Sprintf("tmp%d", e.sh.counter)
	e.sh.counter++
	return name
}

// target returns t, or allocates a fresh temporary via genTmp on first
// use when t is empty (spec.md §4.3's getTarget()).
func (e *entity) target(t string) string {
	if t == "" {
		return e.genTmp()
	}
	return t
}

// isTmp identifies generated temporaries by name (spec.md invariant 1/6).
func isTmp(name string) bool {
	if !strings.HasPrefix(name, "tmp") {
		return false
	}
	_, err := strconv.Atoi(name[3:])
	return err == nil
}
