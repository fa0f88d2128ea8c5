package reasoncore

import (
	"context"
	"strings"
	"time"
)

// ProverExporter is the external prover serializer/invoker collaborator
// consumed by C7 (§6): export(onReduced, iteration, provers, instructions,
// context, goal) -> IO Bool. It synchronously serializes the task,
// launches the configured prover, and classifies the response.
type ProverExporter interface {
	Export(ctx context.Context, onReduced bool, iteration int, provers []*Prover, instructions Instructions, context []*ContextEntry, goal Formula) (bool, error)
}

// LaunchProver is C7: it optionally dumps a human-readable prover task
// under Printfulltask and runs the export under the ProofTime timer. The
// Ontored instruction is passed to the exporter as onReduced; vs.Context
// and vs.Goal are handed over as they are, not replaced by reduced forms.
// A success also adds this call's elapsed time to SuccessTime and bumps
// SuccessfulGoals.
func LaunchProver(ctx context.Context, vs *VState, rs *RState, iteration int) (bool, error) {
	if vs.Exporter == nil {
		return false, NewReasonError(ProverReject, "no prover exporter configured", nil)
	}

	if isEquationLiteral(vs.Goal) {
		rs.Bump(func(c *Counters) { c.FailedEquations++ })
	}

	if vs.Instructions.Printfulltask {
		vs.Logger.Debugw("prover task", "context", dumpTask(vs.Context), "goal", vs.Goal.String())
	}

	start := time.Now()
	ok, err := vs.Exporter.Export(ctx, vs.Instructions.Ontored, iteration, vs.Provers, vs.Instructions, vs.Context, vs.Goal)
	elapsed := time.Since(start)

	rs.Bump(func(c *Counters) { c.ProofTime += elapsed })
	if err != nil {
		return false, NewReasonError(ProverTimeout, "external prover invocation failed", err)
	}
	if !ok {
		return false, NewReasonError(ProverReject, "external prover rejected the goal", nil)
	}

	rs.Bump(func(c *Counters) {
		c.SuccessTime += elapsed
		c.SuccessfulGoals++
	})
	return true, nil
}

func isEquationLiteral(f Formula) bool {
	trm, ok := f.(*Trm)
	if ok {
		return trm.Name == "="
	}
	if n, ok := f.(*Not); ok {
		return isEquationLiteral(n.F)
	}
	return false
}

// dumpTask renders the context in chronological order (reversed from the
// most-recent-first ordering VState carries it in) followed by the
// conclusion, for the Printfulltask diagnostic dump.
func dumpTask(context []*ContextEntry) string {
	var b strings.Builder
	for i := len(context) - 1; i >= 0; i-- {
		b.WriteString(context[i].Label)
		b.WriteString(": ")
		b.WriteString(context[i].F.String())
		b.WriteString("\n")
	}
	return b.String()
}
