package reasoncore

// ReduceWithEvidence is C2: a pure, terminating, idempotent-up-to-albet
// reduction of literals against the info annotations carried on their
// argument positions.
//
// Equality atoms are returned unchanged (step 1 — equality gets its own
// treatment downstream, in the unfolder's equation handling). For any other
// literal L, its negation N = albet(Not L) is formed, and every info
// annotation attached to every argument position of the underlying atom is
// instantiated (ThisT closed with that argument) and compared against L and
// N by ltTwins; the first match decides Top or Bot. Anything else recurses
// structurally and is albet-normalized on the way back up.
func ReduceWithEvidence(f Formula) Formula {
	if trm, ok := f.(*Trm); ok && trm.Name == "=" {
		return f
	}

	if atom, _, isLit := underlyingLiteral(f); isLit {
		negated := Negate(f)
		for _, arg := range atom.Args {
			for _, ann := range infoOf(arg) {
				instantiated := Replace(ann, &ThisT{}, arg)
				if LtTwins(instantiated, f) {
					return &Top{}
				}
				if LtTwins(instantiated, negated) {
					return &Bot{}
				}
			}
		}
		return Albet(f)
	}

	switch n := f.(type) {
	case *Not:
		return Albet(&Not{ReduceWithEvidence(n.F)})
	case *And:
		return Albet(&And{ReduceWithEvidence(n.F), ReduceWithEvidence(n.G)})
	case *Or:
		return Albet(&Or{ReduceWithEvidence(n.F), ReduceWithEvidence(n.G)})
	case *Imp:
		return Albet(&Imp{ReduceWithEvidence(n.F), ReduceWithEvidence(n.G)})
	case *Iff:
		return Albet(&Iff{ReduceWithEvidence(n.F), ReduceWithEvidence(n.G)})
	case *All:
		return &All{n.Decl, ReduceWithEvidence(n.F)}
	case *Exists:
		return &Exists{n.Decl, ReduceWithEvidence(n.F)}
	case *TagF:
		return &TagF{n.Tag, ReduceWithEvidence(n.F)}
	default:
		return Albet(f)
	}
}

// ReduceWithEvidenceCounted wraps ReduceWithEvidence for call sites that
// also need to maintain the Equations counter (§6, "Counters emitted");
// the pure algorithm itself stays side-effect free so the idempotency and
// "no info/no equality ⇒ reduces to albet(F)" invariants (§8) are testable
// directly against ReduceWithEvidence.
func ReduceWithEvidenceCounted(f Formula, rs *RState) Formula {
	countEquations(f, rs)
	return ReduceWithEvidence(f)
}

func countEquations(f Formula, rs *RState) {
	switch n := f.(type) {
	case *Trm:
		if n.Name == "=" {
			rs.Bump(func(c *Counters) { c.Equations++ })
		}
		for _, a := range n.Args {
			countEquations(a, rs)
		}
	case *Not:
		countEquations(n.F, rs)
	case *And:
		countEquations(n.F, rs)
		countEquations(n.G, rs)
	case *Or:
		countEquations(n.F, rs)
		countEquations(n.G, rs)
	case *Imp:
		countEquations(n.F, rs)
		countEquations(n.G, rs)
	case *Iff:
		countEquations(n.F, rs)
		countEquations(n.G, rs)
	case *All:
		countEquations(n.F, rs)
	case *Exists:
		countEquations(n.F, rs)
	case *TagF:
		countEquations(n.F, rs)
	}
}
