package reasoncore

import (
	"context"
	"time"
)

// MesonEngine is the MESON-style model-elimination collaborator consumed
// by C6 (§6): prove(skolemInt, localContext, posRules, negRules, goal) ->
// Bool, assumed total within the caller-imposed time budget.
type MesonEngine interface {
	Prove(ctx context.Context, skolem int64, localContext []*ContextEntry, posRules, negRules []Formula, goal Formula) bool
}

// mesonBudget is the hard wall-clock budget of §4.6 (10^3 microseconds).
const mesonBudget = 1 * time.Millisecond

// LaunchReasoning is C6: it extracts the low-level prefix of the current
// context and calls the MESON engine with a hard 1ms wall-clock budget.
// Success iff the engine returns a definite "proved" verdict within the
// budget; a timeout or an absent engine is reported as ProverTimeout, a
// non-fatal kind the driver simply falls through from.
func LaunchReasoning(ctx context.Context, vs *VState, rs *RState) (bool, error) {
	if vs.Meson == nil {
		return false, NewReasonError(ProverTimeout, "no meson engine configured", nil)
	}

	if isEquationLiteral(vs.Goal) {
		rs.Bump(func(c *Counters) { c.FailedEquations++ })
	}

	localContext := lowLevelPrefix(vs.Context)

	budgetCtx, cancel := context.WithTimeout(ctx, mesonBudget)
	defer cancel()

	type result struct{ proved bool }
	done := make(chan result, 1)
	go func() {
		proved := vs.Meson.Prove(budgetCtx, *vs.SkolemCounter, localContext, vs.MesonPosRules, vs.MesonNegRules, vs.Goal)
		done <- result{proved: proved}
	}()

	select {
	case r := <-done:
		if !r.proved {
			return false, NewReasonError(ProverReject, "meson did not prove the goal", nil)
		}
		return true, nil
	case <-budgetCtx.Done():
		return false, NewReasonError(ProverTimeout, "meson exceeded its 1ms budget", budgetCtx.Err())
	}
}

func lowLevelPrefix(context []*ContextEntry) []*ContextEntry {
	var out []*ContextEntry
	for _, e := range context {
		if !e.IsLowLevel {
			break
		}
		out = append(out, e)
	}
	return out
}
