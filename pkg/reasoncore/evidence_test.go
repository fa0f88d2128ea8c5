package reasoncore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReduceWithEvidence_EqualityPassesThroughUnchanged(t *testing.T) {
	require := require.New(t)

	eq := &Trm{Name: "=", Args: []Formula{&Trm{Name: "a"}, &Trm{Name: "b"}}}
	require.True(Equal(eq, ReduceWithEvidence(eq)))
}

func TestReduceWithEvidence_MatchingInfoReducesToTop(t *testing.T) {
	require := require.New(t)

	// p(a) where a carries the info annotation p(ThisT) => reduces to Top.
	a := &Var{Name: "a", Info: []Formula{&Trm{Name: "p", Args: []Formula{&ThisT{}}}}}
	lit := &Trm{Name: "p", Args: []Formula{a}}

	require.True(IsTop(ReduceWithEvidence(lit)))
}

func TestReduceWithEvidence_NegatedInfoReducesToBot(t *testing.T) {
	require := require.New(t)

	// a carries info ~p(ThisT); checking p(a) must reduce to Bot.
	a := &Var{Name: "a", Info: []Formula{&Not{&Trm{Name: "p", Args: []Formula{&ThisT{}}}}}}
	lit := &Trm{Name: "p", Args: []Formula{a}}

	require.True(IsBot(ReduceWithEvidence(lit)))
}

func TestReduceWithEvidence_NoMatchingInfoFallsBackToAlbet(t *testing.T) {
	require := require.New(t)

	a := &Var{Name: "a"}
	lit := &Not{&Trm{Name: "p", Args: []Formula{a}}}

	got := ReduceWithEvidence(lit)
	require.True(Equal(Albet(lit), got))
}

func TestReduceWithEvidence_IsIdempotentUpToAlbet(t *testing.T) {
	require := require.New(t)

	a := &Var{Name: "a", Info: []Formula{&Trm{Name: "p", Args: []Formula{&ThisT{}}}}}
	lit := &And{&Trm{Name: "p", Args: []Formula{a}}, &Trm{Name: "q"}}

	once := ReduceWithEvidence(lit)
	twice := ReduceWithEvidence(once)
	require.True(Equal(Albet(once), twice))
}

func TestReduceWithEvidenceCounted_BumpsEquationsPerEqualityNode(t *testing.T) {
	require := require.New(t)

	rs := NewRState()
	f := &And{
		&Trm{Name: "=", Args: []Formula{&Trm{Name: "a"}, &Trm{Name: "b"}}},
		&Trm{Name: "=", Args: []Formula{&Trm{Name: "c"}, &Trm{Name: "d"}}},
	}
	ReduceWithEvidenceCounted(f, rs)
	require.Equal(2, rs.Snapshot().Equations)
}
