// Package unify provides a term-level Robinson unifier over
// reasoncore.Formula trees: the "term-level unifier/matcher" collaborator
// named in spec §6. It is grounded on the teacher's walk/bind/recurse
// unification shape (pkg/minikanren/primitives.go's unify/Substitution),
// generalized from miniKanren's Term/Var/Substitution to this core's
// Formula tree, where *reasoncore.Var plays the role of a unification
// variable and Ind/Top/Bot/ThisT compare by strict equality.
//
// internal/meson is the only consumer: the reasoning core itself (C1) owns
// its own one-sided match() directly (see pkg/reasoncore/match.go) so that
// package never needs to import this one.
package unify

import "github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"

// Bindings maps a Var's name to the formula it is bound to. Chains are not
// flattened eagerly; Walk follows them lazily, matching the teacher's
// Substitution.Walk idiom.
type Bindings map[string]reasoncore.Formula

// Walk follows f through env until it reaches an unbound Var or a non-Var
// node, the same "follow the binding chain" loop as Substitution.Walk.
func Walk(f reasoncore.Formula, env Bindings) reasoncore.Formula {
	for {
		v, ok := f.(*reasoncore.Var)
		if !ok {
			return f
		}
		bound, has := env[v.Name]
		if !has {
			return f
		}
		f = bound
	}
}

// Bind extends env with v -> term, refusing a self-binding exactly like
// Substitution.Bind does for the occurs-free case of binding a variable to
// itself.
func Bind(env Bindings, v *reasoncore.Var, term reasoncore.Formula) Bindings {
	if other, ok := term.(*reasoncore.Var); ok && other.Name == v.Name {
		return env
	}
	next := make(Bindings, len(env)+1)
	for k, val := range env {
		next[k] = val
	}
	next[v.Name] = term
	return next
}

// Unify attempts to make a and b identical under env, returning the
// extended bindings on success. Variables unify with anything; Trm nodes
// unify structurally by name/arity; Ind, Top, Bot and ThisT compare by
// strict equality; everything else fails.
func Unify(a, b reasoncore.Formula, env Bindings) (Bindings, bool) {
	x := Walk(a, env)
	y := Walk(b, env)

	if reasoncore.Equal(x, y) {
		return env, true
	}

	if v, ok := x.(*reasoncore.Var); ok {
		return Bind(env, v, y), true
	}
	if v, ok := y.(*reasoncore.Var); ok {
		return Bind(env, v, x), true
	}

	xt, xok := x.(*reasoncore.Trm)
	yt, yok := y.(*reasoncore.Trm)
	if xok && yok && xt.Name == yt.Name && len(xt.Args) == len(yt.Args) {
		cur := env
		for i := range xt.Args {
			var ok bool
			cur, ok = Unify(xt.Args[i], yt.Args[i], cur)
			if !ok {
				return nil, false
			}
		}
		return cur, true
	}

	return nil, false
}

// Resolve substitutes every binding in env into f, recursively, so a
// caller can materialize a fully-walked formula instead of re-walking on
// every access.
func Resolve(f reasoncore.Formula, env Bindings) reasoncore.Formula {
	f = Walk(f, env)
	trm, ok := f.(*reasoncore.Trm)
	if !ok {
		return f
	}
	args := make([]reasoncore.Formula, len(trm.Args))
	for i, a := range trm.Args {
		args[i] = Resolve(a, env)
	}
	return &reasoncore.Trm{ID: trm.ID, Name: trm.Name, Args: args, Info: trm.Info, Sort: trm.Sort}
}
