package meson

import (
	"fmt"

	"github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"
)

// Literal is a clause element: an atom and its polarity.
type Literal struct {
	Atom     *reasoncore.Trm
	Positive bool
}

// Clause is a disjunction of literals, the unit the resolution search
// operates on.
type Clause []Literal

// clausify opens f's leading quantifiers (universals become fresh
// resolution variables, existentials become skolem constants drawn from
// the shared counter) and distributes the remaining And/Or skeleton into
// conjunctive normal form. Only And, Or and literals (an atom, a negated
// atom, or Top) are converted: a subformula of any other shape, such as
// Imp, Iff or a quantifier below a connective, yields no clauses, and an
// Or containing one yields none either.
func clausify(f reasoncore.Formula, skolem *int64) []Clause {
	return toClauses(openQuantifiers(f, skolem))
}

func openQuantifiers(f reasoncore.Formula, skolem *int64) reasoncore.Formula {
	switch n := f.(type) {
	case *reasoncore.All:
		*skolem++
		fresh := &reasoncore.Var{Name: fmt.Sprintf("U%d", *skolem)}
		return openQuantifiers(instWith(0, n.F, fresh), skolem)
	case *reasoncore.Exists:
		*skolem++
		fresh := &reasoncore.Trm{Name: fmt.Sprintf("sk%d", *skolem)}
		return openQuantifiers(instWith(0, n.F, fresh), skolem)
	default:
		return f
	}
}

// instWith is a local re-derivation of reasoncore.Inst's binder-opening
// walk, generalized to close with an arbitrary replacement formula (a
// fresh Var for universals, a skolem Trm constant for existentials)
// instead of always introducing a Var.
func instWith(depth int, f, replacement reasoncore.Formula) reasoncore.Formula {
	switch n := f.(type) {
	case *reasoncore.Ind:
		if n.Depth == depth {
			return replacement
		}
		return n
	case *reasoncore.Not:
		return &reasoncore.Not{F: instWith(depth, n.F, replacement)}
	case *reasoncore.And:
		return &reasoncore.And{F: instWith(depth, n.F, replacement), G: instWith(depth, n.G, replacement)}
	case *reasoncore.Or:
		return &reasoncore.Or{F: instWith(depth, n.F, replacement), G: instWith(depth, n.G, replacement)}
	case *reasoncore.Imp:
		return &reasoncore.Imp{F: instWith(depth, n.F, replacement), G: instWith(depth, n.G, replacement)}
	case *reasoncore.Iff:
		return &reasoncore.Iff{F: instWith(depth, n.F, replacement), G: instWith(depth, n.G, replacement)}
	case *reasoncore.All:
		return &reasoncore.All{Decl: n.Decl, F: instWith(depth+1, n.F, replacement)}
	case *reasoncore.Exists:
		return &reasoncore.Exists{Decl: n.Decl, F: instWith(depth+1, n.F, replacement)}
	case *reasoncore.TagF:
		return &reasoncore.TagF{Tag: n.Tag, F: instWith(depth, n.F, replacement)}
	case *reasoncore.Trm:
		args := make([]reasoncore.Formula, len(n.Args))
		for i, a := range n.Args {
			args[i] = instWith(depth, a, replacement)
		}
		return &reasoncore.Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
	default:
		return f
	}
}

func toClauses(f reasoncore.Formula) []Clause {
	switch n := f.(type) {
	case *reasoncore.And:
		return append(toClauses(n.F), toClauses(n.G)...)
	case *reasoncore.Or:
		left := toClauses(n.F)
		right := toClauses(n.G)
		out := make([]Clause, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				merged := make(Clause, 0, len(l)+len(r))
				merged = append(merged, l...)
				merged = append(merged, r...)
				out = append(out, merged)
			}
		}
		return out
	default:
		lit, ok := toLiteral(n)
		if !ok {
			return nil
		}
		return []Clause{{lit}}
	}
}

func toLiteral(f reasoncore.Formula) (Literal, bool) {
	switch n := f.(type) {
	case *reasoncore.Trm:
		return Literal{Atom: n, Positive: true}, true
	case *reasoncore.Not:
		if t, ok := n.F.(*reasoncore.Trm); ok {
			return Literal{Atom: t, Positive: false}, true
		}
	case *reasoncore.Top:
		return Literal{Atom: &reasoncore.Trm{Name: "$true"}, Positive: true}, true
	}
	return Literal{}, false
}
