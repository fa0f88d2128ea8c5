package reasoncore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterContext_EmptyLinkKeepsEveryNonTrivialEntryInOrder(t *testing.T) {
	require := require.New(t)

	entries := []*ContextEntry{
		{Label: "a", Kind: Axiom, F: &Trm{Name: "p"}},
		{Label: "trivial", Kind: Axiom, F: &Top{}},
		{Label: "b", Kind: Axiom, F: &Trm{Name: "q"}},
	}
	vs := NewVState(&Trm{Name: "goal"}, entries, nil)
	rs := NewRState()

	out := FilterContext(vs, nil, rs)
	require.Len(out, 2)
	require.Equal("a", out[0].Label)
	require.Equal("b", out[1].Label)
}

func TestFilterContext_LinkedSetKeepsLowLevelPrefixPlusCitedEntries(t *testing.T) {
	require := require.New(t)

	entries := []*ContextEntry{
		{Label: "hyp", Kind: Axiom, F: &Trm{Name: "h"}, IsLowLevel: true},
		{Label: "cited", Kind: Axiom, F: &Trm{Name: "p"}},
		{Label: "uncited", Kind: Axiom, F: &Trm{Name: "q"}},
	}
	vs := NewVState(&Trm{Name: "goal"}, entries, nil)
	rs := NewRState()

	out := FilterContext(vs, map[string]struct{}{"cited": {}}, rs)
	var labels []string
	for _, e := range out {
		labels = append(labels, e.Label)
	}
	require.Equal([]string{"hyp", "cited"}, labels)
}

func TestFilterContext_LinkedSetLogsMissingCitationWithoutFailing(t *testing.T) {
	require := require.New(t)

	entries := []*ContextEntry{
		{Label: "p", Kind: Axiom, F: &Trm{Name: "p"}},
	}
	vs := NewVState(&Trm{Name: "goal"}, entries, nil)
	rs := NewRState()

	out := FilterContext(vs, map[string]struct{}{"missing": {}}, rs)
	require.Empty(out)
	require.NotEmpty(rs.Log)
	require.Equal("warn", rs.Log[0].Level)
}

func TestRewriteHead_SignatureRewritesToForwardImplicationOnly(t *testing.T) {
	require := require.New(t)

	// forall x. (HeadTerm f(x) = g(x)) => p(ThisT)
	headEq := &TagF{Tag: HeadTerm, F: &Trm{Name: "=", Args: []Formula{
		&Trm{Name: "f", Args: []Formula{&Ind{0}}},
		&Trm{Name: "g", Args: []Formula{&Ind{0}}},
	}}}
	body := &Trm{Name: "p", Args: []Formula{&ThisT{}}}
	f := &All{Decl{"x"}, &Imp{headEq, body}}

	entry := &ContextEntry{Label: "sig", Kind: Signature, F: f}
	vs := NewVState(&Trm{Name: "goal"}, nil, nil)
	rs := NewRState()

	got := RewriteHead(entry, vs, rs)

	all, ok := got.(*All)
	require.True(ok, "expected a re-closed universal, got %s", got.String())

	want := &Trm{Name: "p", Args: []Formula{
		&Trm{Name: "g", Args: []Formula{&Ind{0}}},
	}}
	require.True(Equal(want, all.F), "got %s", all.F.String())
	require.Equal(2, rs.Snapshot().Symbols)
}

func TestRewriteHead_DefinitionKeepsReverseImplicationToo(t *testing.T) {
	require := require.New(t)

	headEq := &TagF{Tag: HeadTerm, F: &Trm{Name: "=", Args: []Formula{
		&Trm{Name: "even", Args: []Formula{&Ind{0}}},
		&Trm{Name: "zero", Args: []Formula{}},
	}}}
	body := &Trm{Name: "q", Args: []Formula{&ThisT{}}}
	f := &Iff{headEq, body}

	entry := &ContextEntry{Label: "def", Kind: Definition, F: f}
	vs := NewVState(&Trm{Name: "goal"}, nil, nil)
	rs := NewRState()

	got := RewriteHead(entry, vs, rs)
	and, ok := got.(*And)
	require.True(ok, "expected forward & reverse conjunction, got %s", got.String())

	wantForward := &Trm{Name: "q", Args: []Formula{&Trm{Name: "zero"}}}
	require.True(Equal(wantForward, and.F))

	wantReverse := &Imp{body, headEq}
	require.True(Equal(wantReverse, and.G))
}

func TestRewriteHead_NonHeadShapedBodyReturnsUnchanged(t *testing.T) {
	require := require.New(t)

	f := &Trm{Name: "axiom_body"}
	entry := &ContextEntry{Label: "ax", Kind: Axiom, F: f}
	vs := NewVState(&Trm{Name: "goal"}, nil, nil)
	rs := NewRState()

	got := RewriteHead(entry, vs, rs)
	require.True(Equal(f, got))
}
