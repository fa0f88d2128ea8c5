package serialize

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"

	"github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"
)

// Exporter is the default reasoncore.ProverExporter: it serializes the
// task in each configured prover's wire format, runs the prover as a
// subprocess, and classifies its combined stdout and stderr against the
// prover's success/failure/
// unknown regular expressions, stopping at the first prover that returns
// a definite verdict.
type Exporter struct{}

// New returns a ready-to-use Exporter.
func New() *Exporter { return &Exporter{} }

// Export tries each prover in order. onReduced is not read: the exporter
// renders each entry's F and the goal exactly as given.
func (e *Exporter) Export(ctx context.Context, onReduced bool, iteration int, provers []*reasoncore.Prover, instructions reasoncore.Instructions, context_ []*reasoncore.ContextEntry, goal reasoncore.Formula) (bool, error) {
	for _, p := range provers {
		var task string
		switch p.Format {
		case reasoncore.DFG:
			task = ToDFG(context_, goal)
		default:
			task = ToTPTP(context_, goal)
		}

		verdict, ok, err := runProver(ctx, p, task)
		if err != nil {
			continue
		}
		if ok {
			return verdict, nil
		}
	}
	return false, reasoncore.NewReasonError(reasoncore.ProverReject, "no configured prover reached a verdict", nil)
}

// runProver launches p as a subprocess fed task on stdin, and classifies
// its combined output. The second return value is false when none of the
// prover's patterns matched (inconclusive), distinct from a hard error.
func runProver(ctx context.Context, p *reasoncore.Prover, task string) (proved bool, classified bool, err error) {
	cmd := exec.CommandContext(ctx, p.Path, p.Args...)
	cmd.Stdin = bytes.NewBufferString(task)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	output := out.String()

	for _, pat := range p.SuccessPatterns {
		if matches(pat, output) {
			return true, true, nil
		}
	}
	for _, pat := range p.FailurePatterns {
		if matches(pat, output) {
			return false, true, nil
		}
	}
	for _, pat := range p.UnknownPatterns {
		if matches(pat, output) {
			return false, true, nil
		}
	}

	if runErr != nil {
		return false, false, reasoncore.NewReasonError(reasoncore.ProverTimeout, "prover "+p.Name+" failed to run", runErr)
	}
	return false, false, nil
}

func matches(pattern, text string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
