package reasoncore

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Instructions is the tunable instruction surface of §6: a host configures
// the driver's behavior through this struct instead of global flags.
type Instructions struct {
	Depthlimit   int  `yaml:"depthlimit"`
	Ontored      bool `yaml:"ontored"`
	Unfold       bool `yaml:"unfold"`
	Unfoldlow    bool `yaml:"unfoldlow"`
	Unfoldsf     bool `yaml:"unfoldsf"`
	Unfoldlowsf  bool `yaml:"unfoldlowsf"`
	Printreason  bool `yaml:"printreason"`
	Printfulltask bool `yaml:"printfulltask"`
	Printunfold  bool `yaml:"printunfold"`
}

// DefaultInstructions returns the documented defaults for every option.
func DefaultInstructions() Instructions {
	return Instructions{
		Depthlimit:  3,
		Ontored:     false,
		Unfold:      true,
		Unfoldlow:   true,
		Unfoldsf:    true,
		Unfoldlowsf: false,
	}
}

// LoadInstructions decodes a YAML instruction profile, starting from
// DefaultInstructions so a partial document only overrides what it sets.
func LoadInstructions(r io.Reader) (Instructions, error) {
	inst := DefaultInstructions()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&inst); err != nil && err != io.EOF {
		return Instructions{}, NewReasonError(ConfigError, "decoding instructions", err)
	}
	if inst.Depthlimit == 0 {
		inst.Depthlimit = 3
	}
	return inst, nil
}

// Counters is the bookkeeping §6 requires the core to emit. Durations
// accumulate wall time; the rest are simple event counts.
type Counters struct {
	ProofTime    time.Duration
	SuccessTime  time.Duration
	SimplifyTime time.Duration

	Goals           int
	FailedGoals     int
	TrivialGoals    int
	SuccessfulGoals int
	Unfolds         int
	Sections        int
	Symbols         int
	TrivialChecks   int
	HardChecks      int
	SuccessfulChecks int
	Equations       int
	FailedEquations int
}

// LogEntry is one line of the ordered counter/diagnostic log RState keeps,
// used by the Printreason/Printfulltask/Printunfold toggles.
type LogEntry struct {
	Level   string
	Message string
}

// RState is the single mutable sink for a top-level ProveThesis call: the
// ordered log, the failed/alreadyChecked flags, and the running Counters.
// Every mutation goes through its methods so access stays serializable even
// though the core itself is single-threaded (a host embedding the core in
// a concurrent server still gets a safe handle).
type RState struct {
	mu             sync.Mutex
	Counters       Counters
	Log            []LogEntry
	Failed         bool
	AlreadyChecked bool
	CorrelationID  uuid.UUID

	seenSections map[HeadKind]bool
	seenSymbols  map[string]bool
}

// NewRState starts a fresh reasoner state with a new correlation id, as
// required per top-level ProveThesis call.
func NewRState() *RState {
	return &RState{CorrelationID: uuid.New()}
}

func (rs *RState) log(level, msg string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.Log = append(rs.Log, LogEntry{Level: level, Message: msg})
}

// Logf appends a log line under the given level.
func (rs *RState) Logf(level, format string, args ...interface{}) {
	rs.log(level, fmt.Sprintf(format, args...))
}

// MarkFailed latches the failed flag; once set it never clears within a run.
func (rs *RState) MarkFailed() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.Failed = true
}

// IsFailed reports the latched failed flag.
func (rs *RState) IsFailed() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.Failed
}

// Bump applies fn to the Counters under the state's lock; fn should mutate
// its argument in place (e.g. func(c *Counters) { c.Unfolds++ }).
func (rs *RState) Bump(fn func(*Counters)) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	fn(&rs.Counters)
}

// Snapshot returns a copy of the current counters, safe to read concurrently
// with an in-flight ProveThesis call.
func (rs *RState) Snapshot() Counters {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.Counters
}

// NoteSection bumps Sections the first time kind is seen in this run.
func (rs *RState) NoteSection(kind HeadKind) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.seenSections == nil {
		rs.seenSections = make(map[HeadKind]bool)
	}
	if rs.seenSections[kind] {
		return
	}
	rs.seenSections[kind] = true
	rs.Counters.Sections++
}

// NoteSymbol bumps Symbols the first time name is seen in this run.
func (rs *RState) NoteSymbol(name string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.seenSymbols == nil {
		rs.seenSymbols = make(map[string]bool)
	}
	if rs.seenSymbols[name] {
		return
	}
	rs.seenSymbols[name] = true
	rs.Counters.Symbols++
}

// VState is the read-mostly verification state threaded through the core.
// The core never mutates a VState in place; WithGoal/WithContext/
// WithInstructions return a shallow copy with one field overridden, matching
// "passed by value ... only layers overrides" (spec.md §3 Lifecycle).
type VState struct {
	Goal          Formula
	Context       []*ContextEntry
	Defs          map[int64]*DefEntry
	Evals         []*EvalRule
	MesonPosRules []Formula
	MesonNegRules []Formula
	Provers       []*Prover
	Instructions  Instructions
	SkolemCounter *int64
	Branch        string
	Logger        *zap.SugaredLogger
	// ThesisLink is the set of names explicitly cited by the current
	// thesis, consumed by FilterContext (C3) as the "link" set of §4.2.
	ThesisLink map[string]struct{}

	// Meson is the internal prover collaborator (C6); nil disables the
	// fast-filter step, falling straight through to the external ATP.
	Meson MesonEngine
	// Exporter is the external prover serializer/invoker collaborator
	// (C7); nil means no ATP is wired and LaunchProver always fails.
	Exporter ProverExporter
}

// NewVState builds a VState with a silent logger and a fresh skolem counter,
// ready for a top-level ProveThesis call.
func NewVState(goal Formula, context []*ContextEntry, defs map[int64]*DefEntry) *VState {
	var skolem int64
	return &VState{
		Goal:          goal,
		Context:       context,
		Defs:          defs,
		Instructions:  DefaultInstructions(),
		SkolemCounter: &skolem,
		Logger:        zap.NewNop().Sugar(),
	}
}

// WithGoal returns a copy of vs with Goal replaced.
func (vs *VState) WithGoal(goal Formula) *VState {
	cp := *vs
	cp.Goal = goal
	return &cp
}

// WithContext returns a copy of vs with Context replaced.
func (vs *VState) WithContext(ctx []*ContextEntry) *VState {
	cp := *vs
	cp.Context = ctx
	return &cp
}

// WithInstructions returns a copy of vs with Instructions replaced.
func (vs *VState) WithInstructions(inst Instructions) *VState {
	cp := *vs
	cp.Instructions = inst
	return &cp
}

// WithBranch returns a copy of vs tagged with a new branch label for use in
// logs. The driver in this package does not call it.
func (vs *VState) WithBranch(branch string) *VState {
	cp := *vs
	cp.Branch = branch
	return &cp
}

// NextSkolem advances and returns the next skolem constant index. The
// increment is not synchronized.
func (vs *VState) NextSkolem() int64 {
	*vs.SkolemCounter++
	return *vs.SkolemCounter
}
