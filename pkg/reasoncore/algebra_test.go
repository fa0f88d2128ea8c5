package reasoncore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBool_ConstantFolding(t *testing.T) {
	require := require.New(t)

	p := &Trm{Name: "p"}
	require.Equal(p, Bool(&And{&Top{}, p}))
	require.True(IsBot(Bool(&And{&Bot{}, p})))
	require.True(IsTop(Bool(&Or{&Top{}, p})))
	require.Equal(p, Bool(&Or{&Bot{}, p}))
	require.Equal(p, Bool(&Imp{&Top{}, p}))
	require.True(IsTop(Bool(&Imp{&Bot{}, p})))
}

func TestAlbet_PushesNegationToLiterals(t *testing.T) {
	require := require.New(t)

	p := &Trm{Name: "p"}
	q := &Trm{Name: "q"}

	// ~(p & q) => ~p | ~q
	got := Albet(&Not{&And{p, q}})
	want := &Or{&Not{p}, &Not{q}}
	require.True(Equal(want, got), "got %s", got.String())
}

func TestAlbet_DoubleNegationAndQuantifierDuals(t *testing.T) {
	require := require.New(t)

	p := &Trm{Name: "p"}
	require.True(Equal(p, Albet(&Not{&Not{p}})))

	decl := Decl{Name: "x"}
	got := Albet(&Not{&All{decl, p}})
	want := &Exists{decl, &Not{p}}
	require.True(Equal(want, got))
}

func TestInst_OpensOnlyMatchingDepthAndShiftsNothingElse(t *testing.T) {
	require := require.New(t)

	// forall x. p(x) & (exists y. q(y) & p(x))  -- body under the outer All
	body := &And{
		&Trm{Name: "p", Args: []Formula{&Ind{0}}},
		&Exists{Decl{"y"}, &And{
			&Trm{Name: "q", Args: []Formula{&Ind{0}}},
			&Trm{Name: "p", Args: []Formula{&Ind{1}}},
		}},
	}

	opened := Inst(Decl{"x"}, body)
	want := &And{
		&Trm{Name: "p", Args: []Formula{&Var{Name: "x"}}},
		&Exists{Decl{"y"}, &And{
			&Trm{Name: "q", Args: []Formula{&Ind{0}}},
			&Trm{Name: "p", Args: []Formula{&Var{Name: "x"}}},
		}},
	}
	require.True(Equal(want, opened), "got %s", opened.String())
}

func TestReplace_ClosesThisTHole(t *testing.T) {
	require := require.New(t)

	template := &Trm{Name: "even", Args: []Formula{&ThisT{}}}
	actual := &Trm{Name: "s", Args: []Formula{&Trm{Name: "0"}}}

	got := Replace(template, &ThisT{}, actual)
	want := &Trm{Name: "even", Args: []Formula{actual}}
	require.True(Equal(want, got))
}

func TestReplace_PreservesSortOnRebuiltTrm(t *testing.T) {
	require := require.New(t)

	// Replace must not silently drop the Sort annotation off arguments it
	// has to rebuild around a replaced occurrence.
	setTerm := &Trm{Name: "s", Sort: SortSet, Args: []Formula{&ThisT{}}}
	got := Replace(setTerm, &ThisT{}, &Trm{Name: "a"})

	trm, ok := got.(*Trm)
	require.True(ok)
	require.Equal(SortSet, trm.Sort)
}

func TestLtTwins_IgnoresTagWrappers(t *testing.T) {
	require := require.New(t)

	p := &Trm{Name: "p"}
	tagged := &TagF{Tag: GenericMark, F: p}
	require.True(LtTwins(p, tagged))
}

func TestNegate_IsAlbetNormalized(t *testing.T) {
	require := require.New(t)

	p := &Trm{Name: "p"}
	q := &Trm{Name: "q"}
	got := Negate(&And{p, q})
	want := &Or{&Not{p}, &Not{q}}
	require.True(Equal(want, got))
}
