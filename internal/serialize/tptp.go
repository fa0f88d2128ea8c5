// Package serialize renders a proof context and goal into an external
// prover's wire format and invokes the prover subprocess to classify the
// result: the export(onReduced, iteration, provers, instructions, context,
// goal) -> IO Bool collaborator consumed by C7 (reasoncore.LaunchProver).
//
// The subprocess-invoke-then-classify shape is grounded on
// other_examples' formal_verifier.go Z3Prover/DafnyVerifier pair: build a
// textual task, run the external checker, and pattern-match its output
// against known success/failure markers rather than parse a structured
// result. That example simulates the subprocess call; here it is real,
// using exec.CommandContext under the caller's context so a prover that
// hangs past its deadline is killed instead of leaking a process.
package serialize

import (
	"fmt"
	"strings"

	"github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"
)

// ToTPTP renders context entries and a goal as a TPTP fof problem: one
// axiom annotation per context entry, with the most-recent-first input
// order reversed to chronological, followed by the goal itself as the
// conjecture.
func ToTPTP(context []*reasoncore.ContextEntry, goal reasoncore.Formula) string {
	var b strings.Builder
	n := 0
	for i := len(context) - 1; i >= 0; i-- {
		n++
		fmt.Fprintf(&b, "fof(ax%d, axiom, %s).\n", n, tptpFormula(context[i].F))
	}
	fmt.Fprintf(&b, "fof(goal, conjecture, %s).\n", tptpFormula(goal))
	return b.String()
}

// ToDFG renders the same task as a minimal SPASS DFG problem.
func ToDFG(context []*reasoncore.ContextEntry, goal reasoncore.Formula) string {
	var b strings.Builder
	b.WriteString("begin_problem(task).\n")
	b.WriteString("list_of_descriptions.\nname({*task*}).\nauthor({*reasoncore*}).\nstatus(unknown).\ndescription({*generated*}).\nend_of_list.\n")
	b.WriteString("list_of_formulae(axioms).\n")
	n := 0
	for i := len(context) - 1; i >= 0; i-- {
		n++
		fmt.Fprintf(&b, "formula(%s, ax%d).\n", dfgFormula(context[i].F), n)
	}
	b.WriteString("end_of_list.\n")
	b.WriteString("list_of_formulae(conjectures).\n")
	fmt.Fprintf(&b, "formula(%s, goal).\n", dfgFormula(goal))
	b.WriteString("end_of_list.\nend_problem.\n")
	return b.String()
}

func tptpFormula(f reasoncore.Formula) string {
	switch n := f.(type) {
	case *reasoncore.Not:
		return "~(" + tptpFormula(n.F) + ")"
	case *reasoncore.And:
		return "(" + tptpFormula(n.F) + " & " + tptpFormula(n.G) + ")"
	case *reasoncore.Or:
		return "(" + tptpFormula(n.F) + " | " + tptpFormula(n.G) + ")"
	case *reasoncore.Imp:
		return "(" + tptpFormula(n.F) + " => " + tptpFormula(n.G) + ")"
	case *reasoncore.Iff:
		return "(" + tptpFormula(n.F) + " <=> " + tptpFormula(n.G) + ")"
	case *reasoncore.All:
		return "! [" + strings.ToUpper(n.Decl.Name) + "] : (" + tptpFormula(n.F) + ")"
	case *reasoncore.Exists:
		return "? [" + strings.ToUpper(n.Decl.Name) + "] : (" + tptpFormula(n.F) + ")"
	case *reasoncore.Top:
		return "$true"
	case *reasoncore.Bot:
		return "$false"
	case *reasoncore.Trm:
		return tptpTerm(n)
	default:
		return f.String()
	}
}

func tptpTerm(t *reasoncore.Trm) string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		if inner, ok := a.(*reasoncore.Trm); ok {
			parts[i] = tptpTerm(inner)
		} else {
			parts[i] = tptpFormula(a)
		}
	}
	return t.Name + "(" + strings.Join(parts, ",") + ")"
}

func dfgFormula(f reasoncore.Formula) string {
	switch n := f.(type) {
	case *reasoncore.Not:
		return "not(" + dfgFormula(n.F) + ")"
	case *reasoncore.And:
		return "and(" + dfgFormula(n.F) + "," + dfgFormula(n.G) + ")"
	case *reasoncore.Or:
		return "or(" + dfgFormula(n.F) + "," + dfgFormula(n.G) + ")"
	case *reasoncore.Imp:
		return "implies(" + dfgFormula(n.F) + "," + dfgFormula(n.G) + ")"
	case *reasoncore.Iff:
		return "equiv(" + dfgFormula(n.F) + "," + dfgFormula(n.G) + ")"
	case *reasoncore.All:
		return "forall([" + strings.ToUpper(n.Decl.Name) + "]," + dfgFormula(n.F) + ")"
	case *reasoncore.Exists:
		return "exists([" + strings.ToUpper(n.Decl.Name) + "]," + dfgFormula(n.F) + ")"
	case *reasoncore.Top:
		return "true"
	case *reasoncore.Bot:
		return "false"
	case *reasoncore.Trm:
		if len(n.Args) == 0 {
			return n.Name
		}
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = dfgFormula(a)
		}
		return n.Name + "(" + strings.Join(parts, ",") + ")"
	default:
		return f.String()
	}
}
