package reasoncore

// Bindings is a one-sided match result: pattern variable name -> the
// formula it was matched against.
type Bindings map[string]Formula

// Match performs one-sided matching of pattern against target: Var nodes in
// pattern are schematic and bind to whatever they meet; every other node
// must line up structurally. A pattern variable that occurs more than once
// must bind to structurally Equal targets each time. Match is the "match"
// of spec §6, used by the unfolder to line a DefEntry's Pattern up against an
// occurrence before instantiating its Body.
func Match(pattern, target Formula) (Bindings, bool) {
	b := Bindings{}
	if matchInto(pattern, target, b) {
		return b, true
	}
	return nil, false
}

func matchInto(pattern, target Formula, b Bindings) bool {
	switch p := pattern.(type) {
	case *Var:
		if prev, bound := b[p.Name]; bound {
			return Equal(prev, target)
		}
		b[p.Name] = target
		return true
	case *Trm:
		t, ok := target.(*Trm)
		if !ok || p.Name != t.Name || len(p.Args) != len(t.Args) {
			return false
		}
		for i := range p.Args {
			if !matchInto(p.Args[i], t.Args[i], b) {
				return false
			}
		}
		return true
	case *Not:
		t, ok := target.(*Not)
		return ok && matchInto(p.F, t.F, b)
	case *And:
		t, ok := target.(*And)
		return ok && matchInto(p.F, t.F, b) && matchInto(p.G, t.G, b)
	case *Or:
		t, ok := target.(*Or)
		return ok && matchInto(p.F, t.F, b) && matchInto(p.G, t.G, b)
	case *Imp:
		t, ok := target.(*Imp)
		return ok && matchInto(p.F, t.F, b) && matchInto(p.G, t.G, b)
	case *Iff:
		t, ok := target.(*Iff)
		return ok && matchInto(p.F, t.F, b) && matchInto(p.G, t.G, b)
	case *All:
		t, ok := target.(*All)
		return ok && matchInto(p.F, t.F, b)
	case *Exists:
		t, ok := target.(*Exists)
		return ok && matchInto(p.F, t.F, b)
	case *Ind:
		t, ok := target.(*Ind)
		return ok && p.Depth == t.Depth
	case *TagF:
		t, ok := target.(*TagF)
		return ok && p.Tag == t.Tag && matchInto(p.F, t.F, b)
	case *Top:
		return IsTop(target)
	case *Bot:
		return IsBot(target)
	case *ThisT:
		_, ok := target.(*ThisT)
		return ok
	default:
		return false
	}
}

// Apply substitutes every binding in b for its corresponding Var within f.
func Apply(b Bindings, f Formula) Formula {
	switch n := f.(type) {
	case *Var:
		if v, ok := b[n.Name]; ok {
			return v
		}
		return n
	case *Trm:
		args := make([]Formula, len(n.Args))
		for i, a := range n.Args {
			args[i] = Apply(b, a)
		}
		return &Trm{ID: n.ID, Name: n.Name, Args: args, Info: n.Info, Sort: n.Sort}
	default:
		return MapF(func(g Formula) Formula { return Apply(b, g) }, f)
	}
}
