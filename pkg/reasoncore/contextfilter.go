package reasoncore

import "fmt"

// FilterContext is C3: it chooses which prior statements reach the prover.
// With an empty link set every non-trivial entry is kept (in order),
// head-rewriting definitions and signatures along the way. With a
// non-empty link set the ambient context is partitioned by IsLowLevel; the
// low-level prefix is always kept, the named citations are pulled from the
// top-level segment (missing names are logged, not fatal), and every
// non-trivial Definition/Signature from the same top-level segment is kept
// alongside them since the ATP always needs their type information.
func FilterContext(vs *VState, link map[string]struct{}, rs *RState) []*ContextEntry {
	if len(link) == 0 {
		var out []*ContextEntry
		for _, e := range vs.Context {
			reduced := ReduceWithEvidenceCounted(e.F, rs)
			if IsTop(reduced) {
				continue
			}
			next := *e
			next.Reduced = reduced
			if e.Kind == Definition || e.Kind == Signature {
				next.F = RewriteHead(e, vs, rs)
				rs.NoteSection(e.Kind)
			}
			out = append(out, &next)
		}
		return out
	}

	var low, top []*ContextEntry
	for _, e := range vs.Context {
		if e.IsLowLevel {
			low = append(low, e)
		} else {
			top = append(top, e)
		}
	}

	byLabel := make(map[string]*ContextEntry, len(top))
	for _, e := range top {
		byLabel[e.Label] = e
	}

	var linked []*ContextEntry
	var missing []string
	for name := range link {
		if e, ok := byLabel[name]; ok {
			linked = append(linked, e)
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		rs.Logf("warn", "citation miss: %v not found in ambient context", missing)
	}

	var defsAndSigs []*ContextEntry
	for _, e := range top {
		if e.Kind != Definition && e.Kind != Signature {
			continue
		}
		reduced := ReduceWithEvidenceCounted(e.F, rs)
		if IsTop(reduced) {
			continue
		}
		next := *e
		next.Reduced = reduced
		next.F = RewriteHead(e, vs, rs)
		rs.NoteSection(e.Kind)
		defsAndSigs = append(defsAndSigs, &next)
	}

	out := make([]*ContextEntry, 0, len(low)+len(linked)+len(defsAndSigs))
	out = append(out, low...)
	out = append(out, linked...)
	out = append(out, defsAndSigs...)
	return out
}

// RewriteHead implements §4.3: a Definition/Signature head has shape
// ∀v. (Tag HeadTerm (t0 = t) ⇒ F) for a signature or ⇔ F for a definition.
// The outer universals are stripped (rebinding bound occurrences to fresh
// stable names), the equation's right-hand side t is substituted for ThisT
// in F, and the defining equation itself is erased for the implication
// case or kept as a reverse implication for the bi-implication case. A
// body that isn't head-shaped (already rewritten, or a plain axiom) is
// returned unchanged.
func RewriteHead(entry *ContextEntry, vs *VState, rs *RState) Formula {
	names, body := openHeadUniversals(entry.F, vs)

	var headEq, bodyF Formula
	isIff := false
	switch b := body.(type) {
	case *Imp:
		headEq, bodyF = b.F, b.G
	case *Iff:
		headEq, bodyF = b.F, b.G
		isIff = true
	default:
		return entry.F
	}

	eqTrm, ok := Strip(headEq).(*Trm)
	if !ok || eqTrm.Name != "=" || len(eqTrm.Args) != 2 {
		return entry.F
	}
	for _, a := range eqTrm.Args {
		if t, ok := a.(*Trm); ok {
			rs.NoteSymbol(t.Name)
		}
	}
	t := eqTrm.Args[1]

	substituted := Replace(bodyF, &ThisT{}, t)
	if IsTop(Albet(substituted)) {
		return &Top{}
	}

	forward := closeUniversals(names, substituted)
	if !isIff {
		return forward
	}
	reverse := closeUniversals(names, &Imp{bodyF, headEq})
	return &And{forward, reverse}
}

func openHeadUniversals(f Formula, vs *VState) (names []string, body Formula) {
	cur := f
	for {
		a, ok := cur.(*All)
		if !ok {
			break
		}
		fresh := fmt.Sprintf("%s$%d", a.Decl.Name, vs.NextSkolem())
		names = append(names, fresh)
		cur = Inst(Decl{Name: fresh}, a.F)
	}
	return names, cur
}

func closeUniversals(names []string, body Formula) Formula {
	n := len(names)
	closed := body
	for i, name := range names {
		closed = abstractVar(name, n-1-i, closed)
	}
	result := closed
	for i := n - 1; i >= 0; i-- {
		result = &All{Decl{Name: names[i]}, result}
	}
	return result
}

// abstractVar is the inverse of Inst: it replaces free Var occurrences
// named `name` with an Ind placeholder at the given depth, incrementing
// depth under nested binders.
func abstractVar(name string, depth int, f Formula) Formula {
	switch n := f.(type) {
	case *Var:
		if n.Name == name {
			return &Ind{Depth: depth}
		}
		return n
	case *Trm:
		args := make([]Formula, len(n.Args))
		for i, a := range n.Args {
			args[i] = abstractVar(name, depth, a)
		}
		return &Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
	case *All:
		return &All{n.Decl, abstractVar(name, depth+1, n.F)}
	case *Exists:
		return &Exists{n.Decl, abstractVar(name, depth+1, n.F)}
	default:
		return MapF(func(g Formula) Formula { return abstractVar(name, depth, g) }, f)
	}
}
