package reasoncore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefinitionalProperty_NilWhenNoDefForSymbol(t *testing.T) {
	require := require.New(t)

	st := UnfoldState{Defs: map[int64]*DefEntry{}, UnfoldSetting: true}
	rs := NewRState()

	occurrence := &Trm{ID: 1, Name: "even", Args: []Formula{&Trm{Name: "0"}}}
	got := definitionalProperty(occurrence, occurrence, st, rs, true)
	require.Nil(got)
}

func TestDefinitionalProperty_NilWhenUnfoldSettingDisabled(t *testing.T) {
	require := require.New(t)

	def := NewDefEntry(1, Definition, &Trm{Name: "even", Args: []Formula{&Var{Name: "x"}}}, &Trm{Name: "q"})
	st := UnfoldState{Defs: map[int64]*DefEntry{1: def}, UnfoldSetting: false}
	rs := NewRState()

	occurrence := &Trm{ID: 1, Name: "even", Args: []Formula{&Trm{Name: "0"}}}
	got := definitionalProperty(occurrence, occurrence, st, rs, true)
	require.Nil(got)
}

func TestDefinitionalProperty_SignatureOnlyExpandsInPositivePolarity(t *testing.T) {
	require := require.New(t)

	def := NewDefEntry(1, Signature, &Trm{Name: "f", Args: []Formula{&Var{Name: "x"}}}, &Trm{Name: "q"})
	st := UnfoldState{Defs: map[int64]*DefEntry{1: def}, UnfoldSetting: true}
	rs := NewRState()

	occurrence := &Trm{ID: 1, Name: "f", Args: []Formula{&Trm{Name: "a"}}}
	require.Nil(definitionalProperty(occurrence, occurrence, st, rs, false))
	require.NotNil(definitionalProperty(occurrence, occurrence, st, rs, true))
}

func TestDefinitionalProperty_MarksExpansionWithGenericMark(t *testing.T) {
	require := require.New(t)

	def := NewDefEntry(1, Definition,
		&Trm{Name: "p", Args: []Formula{&Var{Name: "x"}}},
		&Trm{Name: "q", Args: []Formula{&ThisT{}}})
	st := UnfoldState{Defs: map[int64]*DefEntry{1: def}, UnfoldSetting: true}
	rs := NewRState()

	occurrence := &Trm{ID: 1, Name: "p", Args: []Formula{&Trm{Name: "a"}}}
	got := definitionalProperty(occurrence, occurrence, st, rs, true)

	tagged, ok := got.(*TagF)
	require.True(ok, "expected a GenericMark-tagged expansion, got %T", got)
	require.Equal(GenericMark, tagged.Tag)

	want := &Trm{Name: "q", Args: []Formula{occurrence}}
	require.True(Equal(want, tagged.F), "got %s", tagged.F.String())
	require.Equal(1, rs.Snapshot().Unfolds)
}

func TestUnfold_FailsWithNoProgressWhenInstructionsDisableIt(t *testing.T) {
	require := require.New(t)

	vs := NewVState(&Trm{Name: "goal"}, nil, nil)
	vs.Instructions.Unfold = false
	vs.Instructions.Unfoldlow = false
	rs := NewRState()

	_, err := Unfold(vs, rs)
	require.Error(err)
	var re *ReasonError
	require.ErrorAs(err, &re)
	require.Equal(NoProgress, re.Kind)
}

func TestLocalProperties_NAryDefinedAtomReachesDefinitionalPropertyNotEvaluationRewrites(t *testing.T) {
	require := require.New(t)

	// Q(y) <=> R(y) & S(y), with no evaluation rule registered for Q: an
	// occurrence Q(a) must still be dispatched to definitionalProperty even
	// though it has a nonzero-arity Trm shape, matching an ordinary n-ary
	// DefEntry.Pattern such as Q(y).
	def := NewDefEntry(1, Definition,
		&Trm{Name: "Q", Args: []Formula{&Var{Name: "y"}}},
		&And{
			F: &Trm{Name: "R", Args: []Formula{&Var{Name: "y"}}},
			G: &Trm{Name: "S", Args: []Formula{&Var{Name: "y"}}},
		})
	st := UnfoldState{Defs: map[int64]*DefEntry{1: def}, UnfoldSetting: true, UnfoldSetSetting: true}
	rs := NewRState()

	a := &Trm{Name: "a"}
	occurrence := &Trm{ID: 1, Name: "Q", Args: []Formula{a}}

	got := localProperties(occurrence, false, st, rs)
	require.NotNil(got, "Q(a) must reach definitionalProperty, not be swallowed by the evaluation-rewrite gate")

	tagged, ok := got.(*TagF)
	require.True(ok, "expected a GenericMark-tagged expansion, got %T", got)
	require.Equal(GenericMark, tagged.Tag)

	want := &And{
		F: &Trm{Name: "R", Args: []Formula{a}},
		G: &Trm{Name: "S", Args: []Formula{a}},
	}
	require.True(Equal(want, tagged.F), "got %s", tagged.F.String())
	require.Equal(1, rs.Snapshot().Unfolds)
}

func TestUnfold_ExpandsNAryDefinedAtomScenario5(t *testing.T) {
	require := require.New(t)

	// spec.md §8 Scenario 5: goal Q(a) where Q(y) <=> R(y) & S(y); driving
	// this through Unfold (not definitionalProperty in isolation) must
	// produce nonzero progress and a thesis entry whose expansion mentions
	// both R(a) and S(a).
	def := NewDefEntry(1, Definition,
		&Trm{Name: "Q", Args: []Formula{&Var{Name: "y"}}},
		&And{
			F: &Trm{Name: "R", Args: []Formula{&Var{Name: "y"}}},
			G: &Trm{Name: "S", Args: []Formula{&Var{Name: "y"}}},
		})
	a := &Trm{Name: "a"}
	goal := &Trm{ID: 1, Name: "Q", Args: []Formula{a}}

	vs := NewVState(goal, nil, map[int64]*DefEntry{1: def})
	rs := NewRState()

	refreshed, err := Unfold(vs, rs)
	require.NoError(err)
	require.GreaterOrEqual(rs.Snapshot().Unfolds, 1)

	thesis := refreshed[0].F.String()
	require.Contains(thesis, "R(a)")
	require.Contains(thesis, "S(a)")
}

func TestUnfold_FailsWithNoProgressWhenNoEntryExpands(t *testing.T) {
	require := require.New(t)

	entries := []*ContextEntry{
		{Label: "a", Kind: Axiom, F: &Trm{Name: "p"}, IsLowLevel: true},
	}
	vs := NewVState(&Trm{Name: "goal"}, entries, map[int64]*DefEntry{})
	rs := NewRState()

	_, err := Unfold(vs, rs)
	require.Error(err)
}
