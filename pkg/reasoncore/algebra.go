package reasoncore

// Strip strips outer Tag wrappers, returning the innermost non-Tag formula.
func Strip(f Formula) Formula {
	for {
		t, ok := f.(*TagF)
		if !ok {
			return f
		}
		f = t.F
	}
}

// Bool constant-folds the trivial connective identities: F∧Top=F, F∧Bot=Bot,
// F∨Top=Top, F∨Bot=F, Top⇒G=G, Bot⇒G=Top, F⇒Top=Top, and the matching Iff
// identities. It does not recurse; callers fold bottom-up (see Albet).
func Bool(f Formula) Formula {
	switch n := f.(type) {
	case *And:
		if IsTop(n.F) {
			return n.G
		}
		if IsTop(n.G) {
			return n.F
		}
		if IsBot(n.F) || IsBot(n.G) {
			return &Bot{}
		}
	case *Or:
		if IsTop(n.F) || IsTop(n.G) {
			return &Top{}
		}
		if IsBot(n.F) {
			return n.G
		}
		if IsBot(n.G) {
			return n.F
		}
	case *Imp:
		if IsTop(n.F) {
			return n.G
		}
		if IsBot(n.F) {
			return &Top{}
		}
		if IsTop(n.G) {
			return &Top{}
		}
	case *Iff:
		if IsTop(n.F) {
			return n.G
		}
		if IsTop(n.G) {
			return n.F
		}
	}
	return f
}

// Albet puts f into the canonical polarity-normalized form: negations are
// pushed to literals (De Morgan, double-negation elimination, quantifier
// duals) and every And/Or/Imp/Iff node is constant-folded via Bool once its
// children are normalized. This is the "albet" of spec §6.
func Albet(f Formula) Formula {
	switch n := f.(type) {
	case *Not:
		switch inner := n.F.(type) {
		case *Not:
			return Albet(inner.F)
		case *And:
			return Albet(&Or{&Not{inner.F}, &Not{inner.G}})
		case *Or:
			return Albet(&And{&Not{inner.F}, &Not{inner.G}})
		case *Imp:
			return Albet(&And{inner.F, &Not{inner.G}})
		case *Iff:
			return Albet(&Or{&And{inner.F, &Not{inner.G}}, &And{&Not{inner.F}, inner.G}})
		case *All:
			return Albet(&Exists{inner.Decl, &Not{inner.F}})
		case *Exists:
			return Albet(&All{inner.Decl, &Not{inner.F}})
		case *Top:
			return &Bot{}
		case *Bot:
			return &Top{}
		default:
			return &Not{Albet(n.F)}
		}
	case *And:
		return Bool(&And{Albet(n.F), Albet(n.G)})
	case *Or:
		return Bool(&Or{Albet(n.F), Albet(n.G)})
	case *Imp:
		return Bool(&Imp{Albet(n.F), Albet(n.G)})
	case *Iff:
		return Bool(&Iff{Albet(n.F), Albet(n.G)})
	case *All:
		return &All{n.Decl, Albet(n.F)}
	case *Exists:
		return &Exists{n.Decl, Albet(n.F)}
	case *TagF:
		return &TagF{n.Tag, Albet(n.F)}
	default:
		return f
	}
}

// MapF rebuilds f, applying fn to each of its immediate formula children
// (not to f itself). Leaves are returned as they are; Trm Args and Info are
// not visited (nor are they by FoldFM or RoundFM).
func MapF(fn func(Formula) Formula, f Formula) Formula {
	switch n := f.(type) {
	case *Not:
		return &Not{fn(n.F)}
	case *And:
		return &And{fn(n.F), fn(n.G)}
	case *Or:
		return &Or{fn(n.F), fn(n.G)}
	case *Imp:
		return &Imp{fn(n.F), fn(n.G)}
	case *Iff:
		return &Iff{fn(n.F), fn(n.G)}
	case *All:
		return &All{n.Decl, fn(n.F)}
	case *Exists:
		return &Exists{n.Decl, fn(n.F)}
	case *TagF:
		return &TagF{n.Tag, fn(n.F)}
	default:
		return f
	}
}

// FoldFM folds combine, starting from zero, over the immediate structural
// children of f, left to right; it does not recurse by itself.
func FoldFM[T any](zero T, combine func(T, Formula) T, f Formula) T {
	acc := zero
	switch n := f.(type) {
	case *Not:
		acc = combine(acc, n.F)
	case *And:
		acc = combine(combine(acc, n.F), n.G)
	case *Or:
		acc = combine(combine(acc, n.F), n.G)
	case *Imp:
		acc = combine(combine(acc, n.F), n.G)
	case *Iff:
		acc = combine(combine(acc, n.F), n.G)
	case *All:
		acc = combine(acc, n.F)
	case *Exists:
		acc = combine(acc, n.F)
	case *TagF:
		acc = combine(acc, n.F)
	}
	return acc
}

// RoundFM is structural recursion with binder awareness: fn is called on
// every node with the number of binders crossed so far (depth), and RoundFM
// rebuilds the tree from fn's results, incrementing depth under All/Exists.
func RoundFM(depth int, fn func(int, Formula) Formula, f Formula) Formula {
	switch n := f.(type) {
	case *Not:
		return fn(depth, &Not{RoundFM(depth, fn, n.F)})
	case *And:
		return fn(depth, &And{RoundFM(depth, fn, n.F), RoundFM(depth, fn, n.G)})
	case *Or:
		return fn(depth, &Or{RoundFM(depth, fn, n.F), RoundFM(depth, fn, n.G)})
	case *Imp:
		return fn(depth, &Imp{RoundFM(depth, fn, n.F), RoundFM(depth, fn, n.G)})
	case *Iff:
		return fn(depth, &Iff{RoundFM(depth, fn, n.F), RoundFM(depth, fn, n.G)})
	case *All:
		return fn(depth, &All{n.Decl, RoundFM(depth+1, fn, n.F)})
	case *Exists:
		return fn(depth, &Exists{n.Decl, RoundFM(depth+1, fn, n.F)})
	case *TagF:
		return fn(depth, &TagF{n.Tag, RoundFM(depth, fn, n.F)})
	default:
		return fn(depth, f)
	}
}

// Inst opens a binder: given the body of an All/Exists (with the bound
// occurrences still represented as Ind{0}), it returns the body with every
// Ind at the opened depth (0, plus one per nested binder) replaced by a
// fresh Var named decl.Name. Every other Ind is left as it is; no index is
// shifted.
func Inst(decl Decl, body Formula) Formula {
	var open func(depth int, f Formula) Formula
	open = func(depth int, f Formula) Formula {
		switch n := f.(type) {
		case *Ind:
			if n.Depth == depth {
				return &Var{Name: decl.Name}
			}
			return n
		case *Not:
			return &Not{open(depth, n.F)}
		case *And:
			return &And{open(depth, n.F), open(depth, n.G)}
		case *Or:
			return &Or{open(depth, n.F), open(depth, n.G)}
		case *Imp:
			return &Imp{open(depth, n.F), open(depth, n.G)}
		case *Iff:
			return &Iff{open(depth, n.F), open(depth, n.G)}
		case *All:
			return &All{n.Decl, open(depth+1, n.F)}
		case *Exists:
			return &Exists{n.Decl, open(depth+1, n.F)}
		case *TagF:
			return &TagF{n.Tag, open(depth, n.F)}
		case *Trm:
			args := make([]Formula, len(n.Args))
			for i, a := range n.Args {
				args[i] = open(depth, a)
			}
			return &Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
		default:
			return f
		}
	}
	return open(0, body)
}

// Subst substitutes term for every free Var named "name" within f.
func Subst(term Formula, name string, f Formula) Formula {
	switch n := f.(type) {
	case *Var:
		if n.Name == name {
			return term
		}
		return n
	case *Trm:
		args := make([]Formula, len(n.Args))
		for i, a := range n.Args {
			args[i] = Subst(term, name, a)
		}
		return &Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
	default:
		return MapF(func(g Formula) Formula { return Subst(term, name, g) }, f)
	}
}

// Equal reports whether two formulas are syntactically identical: node
// kinds, Trm names and arguments, Var names, Decl names, Ind depths and tags
// must all agree; Trm ID, Info and Sort and Var Info are not compared.
// Unlike LtTwins it does not strip tags; Replace uses it to find occurrences.
func Equal(a, b Formula) bool {
	switch x := a.(type) {
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.F, y.F)
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.F, y.F) && Equal(x.G, y.G)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.F, y.F) && Equal(x.G, y.G)
	case *Imp:
		y, ok := b.(*Imp)
		return ok && Equal(x.F, y.F) && Equal(x.G, y.G)
	case *Iff:
		y, ok := b.(*Iff)
		return ok && Equal(x.F, y.F) && Equal(x.G, y.G)
	case *All:
		y, ok := b.(*All)
		return ok && x.Decl.Name == y.Decl.Name && Equal(x.F, y.F)
	case *Exists:
		y, ok := b.(*Exists)
		return ok && x.Decl.Name == y.Decl.Name && Equal(x.F, y.F)
	case *Trm:
		y, ok := b.(*Trm)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *Ind:
		y, ok := b.(*Ind)
		return ok && x.Depth == y.Depth
	case *TagF:
		y, ok := b.(*TagF)
		return ok && x.Tag == y.Tag && Equal(x.F, y.F)
	case *Top:
		_, ok := b.(*Top)
		return ok
	case *Bot:
		_, ok := b.(*Bot)
		return ok
	case *ThisT:
		_, ok := b.(*ThisT)
		return ok
	}
	return false
}

// Replace returns f with every occurrence structurally equal to old
// (per Equal) replaced by new. Used pervasively to close the ThisT hole:
// Replace(template, &ThisT{}, actual).
func Replace(f Formula, old, new Formula) Formula {
	if Equal(f, old) {
		return new
	}
	switch n := f.(type) {
	case *Trm:
		args := make([]Formula, len(n.Args))
		changed := false
		for i, a := range n.Args {
			args[i] = Replace(a, old, new)
			if !Equal(args[i], a) {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
	case *Not, *And, *Or, *Imp, *Iff, *All, *Exists, *TagF:
		return MapF(func(g Formula) Formula { return Replace(g, old, new) }, f)
	default:
		return f
	}
}

// ltTwinsStrip drops GenericMark/HeadTerm wrappers and Ind depth is compared
// by value, matching "ignores tags and Ind bindings of equal depth".
func ltTwinsStrip(f Formula) Formula {
	return Strip(f)
}

// LtTwins is the syntactic literal-equivalence relation used by the evidence
// reducer: it strips Tag wrappers from both sides and compares the result
// structurally; Ind placeholders compare equal when their depths match.
func LtTwins(a, b Formula) bool {
	return Equal(ltTwinsStrip(a), ltTwinsStrip(b))
}

// Negate builds albet(Not(f)) — the canonical negation of a formula, used
// whenever the reducer or unfolder needs "the opposite of this literal".
func Negate(f Formula) Formula {
	return Albet(&Not{f})
}
