package meson

import (
	"context"
	"testing"

	"github.com/NaProChe/NaProChe-SAD/pkg/reasoncore"
	"github.com/stretchr/testify/require"
)

func TestEngine_Prove_SucceedsWhenGoalMatchesContextFact(t *testing.T) {
	require := require.New(t)

	a := &reasoncore.Trm{Name: "a"}
	pa := &reasoncore.Trm{Name: "p", Args: []reasoncore.Formula{a}}
	localContext := []*reasoncore.ContextEntry{{Label: "fact", F: pa}}

	e := New()
	ok := e.Prove(context.Background(), 0, localContext, nil, nil, pa)
	require.True(ok)
}

func TestEngine_Prove_FailsWhenNothingResolvesTheGoal(t *testing.T) {
	require := require.New(t)

	a := &reasoncore.Trm{Name: "a"}
	pa := &reasoncore.Trm{Name: "p", Args: []reasoncore.Formula{a}}
	qa := &reasoncore.Trm{Name: "q", Args: []reasoncore.Formula{a}}
	localContext := []*reasoncore.ContextEntry{{Label: "fact", F: pa}}

	e := New()
	ok := e.Prove(context.Background(), 0, localContext, nil, nil, qa)
	require.False(ok)
}

func TestEngine_Prove_UsesPosRulesAsAdditionalFacts(t *testing.T) {
	require := require.New(t)

	a := &reasoncore.Trm{Name: "a"}
	pa := &reasoncore.Trm{Name: "p", Args: []reasoncore.Formula{a}}

	e := New()
	ok := e.Prove(context.Background(), 0, nil, []reasoncore.Formula{pa}, nil, pa)
	require.True(ok)
}

func TestEngine_Prove_StopsImmediatelyOnCancelledContext(t *testing.T) {
	require := require.New(t)

	a := &reasoncore.Trm{Name: "a"}
	pa := &reasoncore.Trm{Name: "p", Args: []reasoncore.Formula{a}}
	localContext := []*reasoncore.ContextEntry{{Label: "fact", F: pa}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New()
	ok := e.Prove(ctx, 0, localContext, nil, nil, pa)
	require.False(ok)
}

func TestRenameApart_GivesDistinctVariableInstancesAcrossCalls(t *testing.T) {
	require := require.New(t)

	x := &reasoncore.Var{Name: "x"}
	clause := Clause{{Atom: &reasoncore.Trm{Name: "p", Args: []reasoncore.Formula{x}}, Positive: true}}

	counter := new(int)
	first := renameApart(clause, counter)
	second := renameApart(clause, counter)

	firstVar := first[0].Atom.Args[0].(*reasoncore.Var)
	secondVar := second[0].Atom.Args[0].(*reasoncore.Var)
	require.NotEqual(firstVar.Name, secondVar.Name)
}
