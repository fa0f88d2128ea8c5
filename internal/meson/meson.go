// Package meson implements the MESON-style model-elimination collaborator
// consumed by C6 (spec §6): prove(skolemInt, localContext, posRules,
// negRules, goal) -> Bool. It is grounded on the teacher's goal/stream
// committed-choice shape (pkg/minikanren/core.go's Goal/Stream,
// pkg/minikanren/control_flow.go's Ifte "commit to first solution, fall
// through to else" idiom) adapted from a lazy-stream search to a direct
// recursive linear resolution with an ancestor list, since C6 only needs a
// single definite verdict within a hard time budget rather than a stream
// of bindings.
package meson

import (
	"context"
	"fmt"

	"github.com/NaProChe/NaProChe-SAD/internal/unify"
	"github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"
)

// maxDepth bounds the resolution chain so the search terminates even if
// the caller's context has no deadline; in practice the 1ms budget imposed
// by reasoncore.LaunchReasoning cuts the search off first.
const maxDepth = 16

// Engine is the default reasoncore.MesonEngine implementation.
type Engine struct{}

// New returns a ready-to-use Engine.
func New() *Engine { return &Engine{} }

// Prove clausifies the local context and rule sets, clausifies the
// negated goal as the set-of-support, and searches for a linear
// resolution refutation (the empty clause) rooted at each support clause.
func (e *Engine) Prove(ctx context.Context, skolem int64, localContext []*reasoncore.ContextEntry, posRules, negRules []reasoncore.Formula, goal reasoncore.Formula) bool {
	sk := skolem
	var db []Clause
	for _, entry := range localContext {
		db = append(db, clausify(entry.F, &sk)...)
	}
	for _, r := range posRules {
		db = append(db, clausify(r, &sk)...)
	}
	for _, r := range negRules {
		db = append(db, clausify(r, &sk)...)
	}

	support := clausify(reasoncore.Negate(goal), &sk)
	if len(support) == 0 {
		return false
	}

	for _, start := range support {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if linearResolve(ctx, start, db, nil, unify.Bindings{}, maxDepth, new(int)) {
			return true
		}
	}
	return false
}

// linearResolve is a model-elimination-style linear resolution: center is
// the clause currently being reduced, ancestors holds the chain of clauses
// center descends from (consulted for the ancestor/reduction cut before
// ever touching the database), and db is the static clause set.
func linearResolve(ctx context.Context, center Clause, db []Clause, ancestors []Clause, env unify.Bindings, depth int, renameCounter *int) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}
	if len(center) == 0 {
		return true
	}
	if depth == 0 {
		return false
	}

	lit := center[0]
	rest := center[1:]

	for _, anc := range ancestors {
		for _, aLit := range anc {
			if aLit.Positive == lit.Positive {
				continue
			}
			if newEnv, ok := unify.Unify(lit.Atom, aLit.Atom, env); ok {
				if linearResolve(ctx, rest, db, ancestors, newEnv, depth-1, renameCounter) {
					return true
				}
			}
		}
	}

	for _, clause := range db {
		renamed := renameApart(clause, renameCounter)
		for i, cLit := range renamed {
			if cLit.Positive == lit.Positive {
				continue
			}
			newEnv, ok := unify.Unify(lit.Atom, cLit.Atom, env)
			if !ok {
				continue
			}
			next := make(Clause, 0, len(rest)+len(renamed)-1)
			next = append(next, rest...)
			next = append(next, withoutIndex(renamed, i)...)
			nextAncestors := append(append([]Clause{}, ancestors...), center)
			if linearResolve(ctx, next, db, nextAncestors, newEnv, depth-1, renameCounter) {
				return true
			}
		}
	}

	return false
}

func withoutIndex(c Clause, i int) Clause {
	out := make(Clause, 0, len(c)-1)
	for j, l := range c {
		if j != i {
			out = append(out, l)
		}
	}
	return out
}

// renameApart gives clause a fresh set of variable names so two uses of
// the same database clause within one derivation never capture each
// other's bindings.
func renameApart(clause Clause, counter *int) Clause {
	*counter++
	suffix := fmt.Sprintf("#%d", *counter)
	renaming := map[string]*reasoncore.Var{}
	out := make(Clause, len(clause))
	for i, l := range clause {
		out[i] = Literal{Atom: renameTrm(l.Atom, suffix, renaming), Positive: l.Positive}
	}
	return out
}

func renameTrm(t *reasoncore.Trm, suffix string, renaming map[string]*reasoncore.Var) *reasoncore.Trm {
	args := make([]reasoncore.Formula, len(t.Args))
	for i, a := range t.Args {
		args[i] = renameFormula(a, suffix, renaming)
	}
	return &reasoncore.Trm{ID: t.ID, Name: t.Name, Args: args, Info: t.Info, Sort: t.Sort}
}

func renameFormula(f reasoncore.Formula, suffix string, renaming map[string]*reasoncore.Var) reasoncore.Formula {
	switch n := f.(type) {
	case *reasoncore.Var:
		if v, ok := renaming[n.Name]; ok {
			return v
		}
		fresh := &reasoncore.Var{Name: n.Name + suffix}
		renaming[n.Name] = fresh
		return fresh
	case *reasoncore.Trm:
		return renameTrm(n, suffix, renaming)
	default:
		return n
	}
}
