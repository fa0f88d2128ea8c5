package reasoncore

// EvalRule is one entry of the evaluation discrimination tree (VState.Evals):
// a pattern over a term, side conditions that must reduce to Top before the
// rule fires, and the two branches selected by polarity.
type EvalRule struct {
	Pattern    Formula
	Conditions []Formula
	Positives  Formula
	Negatives  Formula
}

// UnfoldState bundles the unfolder's read-only inputs for one pass:
// the definition map, the evaluation rules, and the two gating flags
// (Unfold/Unfoldsf, already resolved against Unfoldlow/Unfoldlowsf by the
// caller for the entry currently being walked).
type UnfoldState struct {
	Defs             map[int64]*DefEntry
	Evals            []*EvalRule
	UnfoldSetting    bool
	UnfoldSetSetting bool
}

// Unfold is the entry point of C4: it builds the task list
// (Context.setForm thesis (¬thesis.formula) followed by the current
// context), splits off the low-level prefix, unfolds each low-level entry,
// and fails the alternative (NoProgress) if nothing expanded.
func Unfold(vs *VState, rs *RState) ([]*ContextEntry, error) {
	inst := vs.Instructions
	if !inst.Unfold && !inst.Unfoldlow {
		return nil, NewReasonError(NoProgress, "unfolding disabled by instructions", nil)
	}

	thesis := &ContextEntry{Label: "thesis", Kind: Axiom, F: Negate(vs.Goal), IsLowLevel: true}
	task := make([]*ContextEntry, 0, len(vs.Context)+1)
	task = append(task, thesis)
	task = append(task, vs.Context...)

	lowLevel, topLevel := splitLowLevel(task)

	st := UnfoldState{
		Defs:             vs.Defs,
		Evals:            vs.Evals,
		UnfoldSetting:    inst.Unfold,
		UnfoldSetSetting: inst.Unfoldsf,
	}

	refreshed := make([]*ContextEntry, len(lowLevel))
	total := 0
	for i, e := range lowLevel {
		entrySt := st
		if i > 0 {
			// The thesis (index 0) uses the general switches; the low-level
			// context items after it are also gated by Unfoldlow/Unfoldlowsf.
			entrySt.UnfoldSetting = inst.Unfold && inst.Unfoldlow
			entrySt.UnfoldSetSetting = inst.Unfoldsf && inst.Unfoldlowsf
		}
		f, n := unfoldConservative(e, entrySt, rs)
		total += n
		next := *e
		next.F = f
		refreshed[i] = &next
	}

	if total == 0 {
		return nil, NewReasonError(NoProgress, "nothing to unfold", nil)
	}
	if vs.Instructions.Printunfold {
		vs.Logger.Debugw("unfold pass complete", "expansions", total)
	}
	return append(refreshed, topLevel...), nil
}

func splitLowLevel(entries []*ContextEntry) (low, top []*ContextEntry) {
	i := 0
	for i < len(entries) && entries[i].IsLowLevel {
		i++
	}
	return entries[:i], entries[i:]
}

// unfoldConservative walks a single context entry's formula, skipping
// LowDefinition entries outright, and reports how many expansion sites it
// rewrote.
func unfoldConservative(entry *ContextEntry, st UnfoldState, rs *RState) (Formula, int) {
	if entry.Kind == LowDefinition {
		return entry.F, 0
	}
	before := rs.Snapshot().Unfolds
	out := walkPolarity(entry.F, true, 0, st, rs)
	after := rs.Snapshot().Unfolds
	return out, after - before
}

// walkPolarity carries (localContext implicit in st, sign, depth) through
// the formula per §4.7: GenericMark subtrees are frozen, atomic nodes are
// handed to unfoldAtomic then reduced, Iff is rewritten to a conjunction of
// implications before recursion so every position has a defined polarity,
// and every other connective recurses structurally with the documented
// polarity flips.
func walkPolarity(f Formula, sign bool, depth int, st UnfoldState, rs *RState) Formula {
	if t, ok := f.(*TagF); ok && t.Tag == GenericMark {
		return f
	}
	if IsTrm(f) {
		return ReduceWithEvidence(unfoldAtomic(sign, f, st, rs))
	}
	switch n := f.(type) {
	case *Iff:
		rewritten := &And{&Imp{n.F, n.G}, &Imp{n.G, n.F}}
		return walkPolarity(rewritten, sign, depth, st, rs)
	case *Not:
		return &Not{walkPolarity(n.F, !sign, depth, st, rs)}
	case *Imp:
		return &Imp{walkPolarity(n.F, !sign, depth, st, rs), walkPolarity(n.G, sign, depth, st, rs)}
	case *And:
		return &And{walkPolarity(n.F, sign, depth, st, rs), walkPolarity(n.G, sign, depth, st, rs)}
	case *Or:
		return &Or{walkPolarity(n.F, sign, depth, st, rs), walkPolarity(n.G, sign, depth, st, rs)}
	case *All:
		return &All{n.Decl, walkPolarity(n.F, sign, depth+1, st, rs)}
	case *Exists:
		return &Exists{n.Decl, walkPolarity(n.F, sign, depth+1, st, rs)}
	case *TagF:
		return &TagF{n.Tag, walkPolarity(n.F, sign, depth, st, rs)}
	default:
		return f
	}
}

// unfoldAtomic combines subterm-local properties, f's own local properties,
// and the GenericMark-tagged f itself: starting from Tag(GenericMark, f),
// fold local properties with And (sign true) or Or (sign false), then fold
// subterm-local properties with And (positive) or Imp (negative).
func unfoldAtomic(sign bool, f Formula, st UnfoldState, rs *RState) Formula {
	marked := Formula(&TagF{GenericMark, f})

	combined := marked
	if local := localProperties(f, sign, st, rs); local != nil {
		if sign {
			combined = &And{marked, local}
		} else {
			combined = &Or{marked, local}
		}
	}

	result := combined
	if trm, ok := f.(*Trm); ok {
		for _, arg := range trm.Args {
			prop := localProperties(arg, sign, st, rs)
			if prop == nil {
				continue
			}
			if sign {
				result = &And{result, prop}
			} else {
				result = &Imp{prop, result}
			}
		}
	}
	return result
}

// localProperties implements the three-way dispatch of §4.7: equations get
// definitional properties of both sides plus extensionalities, applications
// and ∈-atoms get evaluation-tree rewrites, everything else gets its own
// definitional property instantiated with itself.
func localProperties(t Formula, sign bool, st UnfoldState, rs *RState) Formula {
	if l, r, ok := asEquation(t); ok {
		var parts []Formula
		if p := definitionalProperty(l, r, st, rs, sign); p != nil {
			parts = append(parts, p)
		}
		if p := definitionalProperty(r, l, st, rs, sign); p != nil {
			parts = append(parts, p)
		}
		if lt, lok := l.(*Trm); lok {
			rt, rok := r.(*Trm)
			sameSort := rok && rt.Sort == lt.Sort
			switch {
			case lt.Sort == SortSet && sameSort:
				parts = append(parts, setExtensionality(l, r))
				rs.Bump(func(c *Counters) { c.Unfolds++ })
			case lt.Sort == SortFunction && sameSort:
				parts = append(parts, functionExtensionality(l, r, sign))
				rs.Bump(func(c *Counters) { c.Unfolds++ })
			}
		}
		return conjoinAll(parts)
	}
	if trm, ok := t.(*Trm); ok && isApplicationOrElem(trm) && hasEvalRuleFor(trm.Name, st) {
		if !st.UnfoldSetSetting {
			return nil
		}
		return evaluationRewrites(t, sign, st, rs)
	}
	return definitionalProperty(t, t, st, rs, sign)
}

func asEquation(t Formula) (l, r Formula, ok bool) {
	trm, isTrm := t.(*Trm)
	if !isTrm || trm.Name != "=" || len(trm.Args) != 2 {
		return nil, nil, false
	}
	return trm.Args[0], trm.Args[1], true
}

func isApplicationOrElem(t Formula) bool {
	trm, ok := t.(*Trm)
	if !ok {
		return false
	}
	return trm.Name == "∈" || len(trm.Args) > 0
}

// hasEvalRuleFor reports whether st.Evals defines an evaluation rule for the
// given symbol name, the gate that keeps an ordinary n-ary defined atom
// (e.g. Q(y), whose DefEntry.Pattern is itself an n-ary Trm) from being
// routed to evaluationRewrites just because it takes arguments.
func hasEvalRuleFor(name string, st UnfoldState) bool {
	for _, ev := range st.Evals {
		if p, ok := ev.Pattern.(*Trm); ok && p.Name == name {
			return true
		}
	}
	return false
}

func conjoinAll(parts []Formula) Formula {
	if len(parts) == 0 {
		return nil
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out = &And{out, p}
	}
	return out
}

// definitionalProperty looks up f's defining entry, requires the polarity
// guard (signatures expand only positively), matches def.Pattern against f,
// and emits Tag(GenericMark, Replace(σ(def.Body), ThisT, g)). Signature
// kind is relaxed to LowDefinition-style single use by the caller marking
// the source entry; this function only checks the guard, not re-entrancy.
func definitionalProperty(f, g Formula, st UnfoldState, rs *RState, sign bool) Formula {
	trm, ok := f.(*Trm)
	if !ok {
		return nil
	}
	def, ok := st.Defs[trm.ID]
	if !ok || !st.UnfoldSetting {
		return nil
	}
	if !sign && def.Kind != Definition {
		return nil
	}
	bindings, ok := Match(def.Pattern, f)
	if !ok {
		return nil
	}
	body := Apply(bindings, def.Body)
	closed := Replace(body, &ThisT{}, g)
	if IsTop(Albet(closed)) {
		return nil
	}
	rs.Bump(func(c *Counters) { c.Unfolds++ })
	return &TagF{GenericMark, closed}
}

func elemOf(v, s Formula) Formula {
	return &Trm{Name: "∈", Args: []Formula{v, s}}
}

// setExtensionality builds ∀v. v ∈ f ⇔ v ∈ g.
func setExtensionality(f, g Formula) Formula {
	decl := Decl{Name: "v"}
	return &All{decl, &Iff{elemOf(&Ind{0}, f), elemOf(&Ind{0}, g)}}
}

// functionExtensionality builds (dom f = dom g) ∧ ∀v. v ∈ dom f ⇒ f(v) = g(v).
// The domain equality is syntactic when sign is true, elementwise otherwise.
func functionExtensionality(f, g Formula, sign bool) Formula {
	domF := &Trm{Name: "dom", Args: []Formula{f}}
	domG := &Trm{Name: "dom", Args: []Formula{g}}

	var domEq Formula
	if sign {
		domEq = &Trm{Name: "=", Args: []Formula{domF, domG}}
	} else {
		decl := Decl{Name: "v"}
		domEq = &All{decl, &Iff{elemOf(&Ind{0}, domF), elemOf(&Ind{0}, domG)}}
	}

	decl := Decl{Name: "v"}
	appF := &Trm{Name: "apply", Args: []Formula{f, &Ind{0}}}
	appG := &Trm{Name: "apply", Args: []Formula{g, &Ind{0}}}
	body := &Imp{elemOf(&Ind{0}, domF), &Trm{Name: "=", Args: []Formula{appF, appG}}}
	return &And{domEq, &All{decl, body}}
}

// evaluationRewrites looks t up against every EvalRule in st.Evals, picks
// the first whose pattern matches and whose conditions all reduce to Top
// under the match's bindings, and returns the selected branch with its
// ThisT hole closed by t.
func evaluationRewrites(t Formula, sign bool, st UnfoldState, rs *RState) Formula {
	for _, ev := range st.Evals {
		bindings, ok := Match(ev.Pattern, t)
		if !ok {
			continue
		}
		allTrivial := true
		for _, cond := range ev.Conditions {
			if !IsTop(ReduceWithEvidence(Apply(bindings, cond))) {
				allTrivial = false
				break
			}
		}
		if !allTrivial {
			continue
		}
		branch := ev.Positives
		if !sign {
			branch = ev.Negatives
		}
		if branch == nil {
			continue
		}
		instantiated := Apply(bindings, branch)
		closed := Replace(instantiated, &ThisT{}, t)
		rs.Bump(func(c *Counters) { c.Unfolds++ })
		return &TagF{GenericMark, closed}
	}
	return nil
}
