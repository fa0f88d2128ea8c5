package reasoncore

import (
	"context"
	"errors"
)

// Split implements the §4.4 split rule, applied after albet-normalization:
// universals are preserved over each sub-goal, the second conjunct of an
// And is proved under the first as hypothesis, the left disjunct of an Or
// becomes a standing side-hypothesis for each sub-goal of the right
// disjunct, and anything else is a singleton goal.
func Split(f Formula) []Formula {
	switch n := Albet(f).(type) {
	case *All:
		inner := Split(n.F)
		out := make([]Formula, len(inner))
		for i, g := range inner {
			out[i] = &All{n.Decl, g}
		}
		return out
	case *And:
		left := Split(n.F)
		right := Split(&Imp{n.F, n.G})
		return append(left, right...)
	case *Or:
		rightGoals := Split(n.G)
		out := make([]Formula, len(rightGoals))
		for i, h := range rightGoals {
			out[i] = &Or{n.F, h}
		}
		return out
	default:
		return []Formula{n}
	}
}

// ProveThesis is the public entry of C5. It validates Depthlimit, filters
// the context via C3 using vs.ThesisLink, splits the (already
// albet-normalized) goal, and sequences the resulting sub-goals.
func ProveThesis(ctx context.Context, vs *VState, rs *RState) (bool, error) {
	depth := vs.Instructions.Depthlimit
	if depth <= 0 {
		return false, NewReasonError(Exhaustion, "depthlimit must be positive", nil)
	}

	filtered := FilterContext(vs, vs.ThesisLink, rs)
	vs = vs.WithContext(filtered)

	goals := Split(vs.Goal)
	return sequence(ctx, vs, rs, goals, depth, 0)
}

// sequence proves goals in left-to-right order; the context layered into
// each goal is fixed at the point of split, so later goals only see the
// effect of earlier ones through counter updates. Failure of any goal
// aborts the whole thesis.
func sequence(ctx context.Context, vs *VState, rs *RState, goals []Formula, depth, iteration int) (bool, error) {
	for _, g := range goals {
		rs.Bump(func(c *Counters) { c.Goals++ })
		ok, err := proveGoal(ctx, vs.WithGoal(g), rs, depth, iteration)
		if err != nil {
			rs.MarkFailed()
			return false, err
		}
		if !ok {
			rs.Bump(func(c *Counters) { c.FailedGoals++ })
			rs.MarkFailed()
			return false, NewReasonError(Exhaustion, "goal failed", nil)
		}
	}
	return true, nil
}

// proveGoal is the per-goal sequencing of §4.4: trivial (reduces to Top),
// then the prover step (§4.5/§4.6, C6 before C7), then recursion through
// the unfolder if remaining depth allows it.
func proveGoal(ctx context.Context, vs *VState, rs *RState, depth, iteration int) (bool, error) {
	select {
	case <-ctx.Done():
		return false, NewReasonError(Exhaustion, "cancelled", ctx.Err())
	default:
	}

	reduced := ReduceWithEvidenceCounted(vs.Goal, rs)
	if IsTop(reduced) {
		rs.Bump(func(c *Counters) { c.TrivialGoals++; c.TrivialChecks++ })
		if vs.Instructions.Printreason {
			vs.Logger.Debugw("trivial goal", "goal", vs.Goal.String())
		}
		return true, nil
	}

	ok, err := tryProver(ctx, vs, rs, iteration)
	if err == nil && ok {
		return true, nil
	}
	if err != nil && isFatalKind(err) {
		return false, err
	}

	if depth <= 1 {
		if vs.Instructions.Printreason {
			vs.Logger.Debugw("reasoning depth exceeded", "goal", vs.Goal.String())
		}
		return false, NewReasonError(Exhaustion, "reasoning depth exceeded", nil)
	}

	refreshed, uerr := Unfold(vs, rs)
	if uerr != nil {
		if vs.Instructions.Printunfold {
			vs.Logger.Debugw("nothing to unfold", "goal", vs.Goal.String())
		}
		return false, uerr
	}

	newGoal := Negate(refreshed[0].F)
	nextVs := vs.WithGoal(newGoal).WithContext(refreshed[1:])
	return sequence(ctx, nextVs, rs, []Formula{newGoal}, depth-1, iteration+1)
}

// tryProver runs C6 (a 1ms MESON pre-filter) and falls through to C7 (the
// external ATP) on MESON failure, matching §2's "C5-trivial → C7 →
// recurse-through-C4" data flow with the §4.6 MESON budget spent as a fast
// filter inside the ATP step rather than a fifth alternative.
func tryProver(ctx context.Context, vs *VState, rs *RState, iteration int) (bool, error) {
	rs.Bump(func(c *Counters) { c.HardChecks++ })

	if ok, err := LaunchReasoning(ctx, vs, rs); err == nil && ok {
		rs.Bump(func(c *Counters) { c.SuccessfulChecks++ })
		return true, nil
	}

	ok, err := LaunchProver(ctx, vs, rs, iteration)
	if err != nil {
		return false, err
	}
	if ok {
		rs.Bump(func(c *Counters) { c.SuccessfulChecks++ })
	}
	return ok, nil
}

func isFatalKind(err error) bool {
	var re *ReasonError
	if !errors.As(err, &re) {
		return true
	}
	return re.Kind == ConfigError || re.Kind == Internal
}
