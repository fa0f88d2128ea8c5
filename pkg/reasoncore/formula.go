// Package reasoncore implements the reasoning core of a natural-language-style
// proof assistant: given a goal formula and a stack of contextual
// assumptions, it decides whether the goal follows by direct evidence,
// bounded definition unfolding, an internal model-elimination prover, or
// delegation to an external automated theorem prover.
//
// The package is single-threaded and synchronous by design; the only
// suspension points are the external prover subprocess and the internal
// prover's time budget.
package reasoncore

import (
	"fmt"
	"strings"
)

// Tag distinguishes the closed set of formula-tree markers used by the
// unfolder and the head-rewriting logic. It is deliberately a tiny enum so
// GenericMark and HeadTerm stay cheaply distinguishable, per the design
// notes on polymorphism over formula nodes.
type Tag int

const (
	// HeadTerm marks the defining-equation head of a Definition or Signature.
	HeadTerm Tag = iota
	// GenericMark marks a subtree the unfolder has already expanded in the
	// current pass; it must never be re-entered in that pass.
	GenericMark
)

func (t Tag) String() string {
	switch t {
	case HeadTerm:
		return "HeadTerm"
	case GenericMark:
		return "GenericMark"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Formula is the closed recursive tree described in the data model: logical
// connectives, quantifiers, atomic terms, variables, bound-variable
// placeholders, tags, truth constants, and the ThisT substitution hole.
//
// Formula is a closed sum type: every variant lives in this file and
// implements the unexported formulaNode marker so no other package can add
// a variant. Consumers type-switch on the concrete pointer types.
type Formula interface {
	fmt.Stringer
	formulaNode()
}

// Decl is a quantifier declaration: the bound variable's display name. The
// core treats binders through the substitute/instantiate interface (Inst,
// Subst) rather than carrying a type signature itself.
type Decl struct {
	Name string
}

// Not is logical negation.
type Not struct{ F Formula }

// And is conjunction.
type And struct{ F, G Formula }

// Or is disjunction.
type Or struct{ F, G Formula }

// Imp is implication: F gives way to G.
type Imp struct{ F, G Formula }

// Iff is bi-implication.
type Iff struct{ F, G Formula }

// All is universal quantification over Decl in F.
type All struct {
	Decl Decl
	F    Formula
}

// Exists is existential quantification over Decl in F.
type Exists struct {
	Decl Decl
	F    Formula
}

// Sort is a coarse type tag used only by the unfolder's extensionality
// rules (§4.7): the full type system is out of scope, but "is this a set"
// / "is this a function" has to be answerable for two specific rewrites.
type Sort int

const (
	// SortIndividual is the default: no extensionality rule applies.
	SortIndividual Sort = iota
	// SortSet marks a term denoting a set, enabling set extensionality.
	SortSet
	// SortFunction marks a term denoting a function, enabling function
	// extensionality.
	SortFunction
)

// Trm is a user or defined predicate/function symbol applied to arguments.
// Info is an ordered sequence of annotations recording locally known facts
// about this specific occurrence (the evidence the reducer consumes).
type Trm struct {
	ID   int64
	Name string
	Args []Formula
	Info []Formula
	Sort Sort
}

// Var is a free logic variable carrying its own evidence annotations.
type Var struct {
	Name string
	Info []Formula
}

// Ind is a de Bruijn bound-variable placeholder; Depth counts binders
// crossed since the placeholder was introduced.
type Ind struct{ Depth int }

// TagF wraps a formula with a Tag marker.
type TagF struct {
	Tag Tag
	F   Formula
}

// Top is the truth constant true.
type Top struct{}

// Bot is the truth constant false.
type Bot struct{}

// ThisT is the substitution hole used as a placeholder in definitional
// patterns; replace(f, ThisT{}, actual) closes it.
type ThisT struct{}

func (*Not) formulaNode()    {}
func (*And) formulaNode()    {}
func (*Or) formulaNode()     {}
func (*Imp) formulaNode()    {}
func (*Iff) formulaNode()    {}
func (*All) formulaNode()    {}
func (*Exists) formulaNode() {}
func (*Trm) formulaNode()    {}
func (*Var) formulaNode()    {}
func (*Ind) formulaNode()    {}
func (*TagF) formulaNode()   {}
func (*Top) formulaNode()    {}
func (*Bot) formulaNode()    {}
func (*ThisT) formulaNode()  {}

func (f *Not) String() string    { return "~" + f.F.String() }
func (f *And) String() string    { return "(" + f.F.String() + " & " + f.G.String() + ")" }
func (f *Or) String() string     { return "(" + f.F.String() + " | " + f.G.String() + ")" }
func (f *Imp) String() string    { return "(" + f.F.String() + " => " + f.G.String() + ")" }
func (f *Iff) String() string    { return "(" + f.F.String() + " <=> " + f.G.String() + ")" }
func (f *All) String() string    { return "forall " + f.Decl.Name + ". " + f.F.String() }
func (f *Exists) String() string { return "exists " + f.Decl.Name + ". " + f.F.String() }
func (f *Top) String() string    { return "Top" }
func (f *Bot) String() string    { return "Bot" }
func (f *ThisT) String() string  { return "ThisT" }

func (f *Trm) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (f *Var) String() string { return f.Name }
func (f *Ind) String() string { return fmt.Sprintf("#%d", f.Depth) }
func (f *TagF) String() string {
	return fmt.Sprintf("[%s]%s", f.Tag, f.F.String())
}

// ---- structural predicates/accessors (formula algebra, §6) ----

// IsTrm reports whether f is an atomic Trm node.
func IsTrm(f Formula) bool {
	_, ok := f.(*Trm)
	return ok
}

// IsTop reports whether f is the Top constant.
func IsTop(f Formula) bool {
	_, ok := f.(*Top)
	return ok
}

// IsBot reports whether f is the Bot constant.
func IsBot(f Formula) bool {
	_, ok := f.(*Bot)
	return ok
}

// IsLiteral reports whether f is atomic or the negation of an atomic.
func IsLiteral(f Formula) bool {
	if IsTrm(f) {
		return true
	}
	if n, ok := f.(*Not); ok {
		return IsTrm(n.F)
	}
	return false
}

// LtAtomic reports whether f is an atomic Trm; kept distinct from IsTrm so
// call sites documenting "is this an atomic formula" read naturally
// alongside IsLiteral, matching the consumed-interface naming in spec §6.
func LtAtomic(f Formula) bool {
	return IsTrm(f)
}

// TrId returns the symbol id of a Trm node, or 0 for anything else.
func TrId(f Formula) int64 {
	if t, ok := f.(*Trm); ok {
		return t.ID
	}
	return 0
}

// TrmArgs returns the argument list of a Trm node, or nil for anything else.
func TrmArgs(f Formula) []Formula {
	if t, ok := f.(*Trm); ok {
		return t.Args
	}
	return nil
}

// TrmName returns the symbol name of a Trm node, or "" for anything else.
func TrmName(f Formula) string {
	if t, ok := f.(*Trm); ok {
		return t.Name
	}
	return ""
}

// underlyingLiteral splits a literal into its underlying atom and polarity
// sign (true for a bare atom, false for its negation). The second return
// value is false if f is not a literal.
func underlyingLiteral(f Formula) (atom *Trm, sign bool, ok bool) {
	switch n := f.(type) {
	case *Trm:
		return n, true, true
	case *Not:
		if t, isTrm := n.F.(*Trm); isTrm {
			return t, false, true
		}
	}
	return nil, false, false
}

// infoOf returns the evidence annotations attached to a term occurrence, if
// any (Trm and Var are the only variants that carry Info).
func infoOf(f Formula) []Formula {
	switch n := f.(type) {
	case *Trm:
		return n.Info
	case *Var:
		return n.Info
	default:
		return nil
	}
}
