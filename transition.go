package sprite

import (
	"sort"
	"strconv"
)

// Endpoint is one side of a transition declaration: a concrete animation id
// or the wildcard "any".
type Endpoint int

// AnyEndpoint matches every concrete animation of the sprite.
const AnyEndpoint Endpoint = -1

// EndpointID returns the endpoint for a concrete animation id.
func EndpointID(id int) Endpoint { return Endpoint(id) }

// IsAny reports whether e is the wildcard.
func (e Endpoint) IsAny() bool { return e < 0 }

// ID returns the concrete animation id. It is meaningless for AnyEndpoint.
func (e Endpoint) ID() int { return int(e) }

func (e Endpoint) String() string {
	if e.IsAny() {
		return "any"
	}
	return strconv.Itoa(int(e))
}

// Transition declares that animation Anim plays when switching From → To.
// Preprocessed transitions, as returned by Info.Transitions, always have
// concrete endpoints.
type Transition struct {
	Anim     int
	From, To Endpoint
	// Line is the declaration's line in its file, 0 for generated entries.
	Line int
}

// linearScanMax is the largest per-source range searched linearly.
const linearScanMax = 5

// preprocessTransitions expands wildcards into concrete transitions, sorts
// them by (From, To) and builds the per-source index. Explicit declarations
// precede expanded ones for the same pair, so they win at lookup.
func (info *Info) preprocessTransitions(w warner) {
	info.prepared = nil
	info.transitionsFrom = nil

	ids := info.AnimationIDs()
	exists := func(e Endpoint) bool {
		return e.IsAny() || (e.ID() < MaxAnimations && info.animations[e.ID()] != nil)
	}

	var explicit, anyTo, fromAny []Transition
	seen := make(map[[2]Endpoint]int)
	for _, t := range info.transitions {
		switch {
		case t.From.IsAny() && t.To.IsAny():
			w.warnf("line %d: transition any to any dropped", t.Line)
			continue
		case t.From == t.To:
			w.warnf("line %d: transition %s to %s dropped: same animation", t.Line, t.From, t.To)
			continue
		case !exists(t.From) || !exists(t.To):
			w.warnf("line %d: transition %s to %s dropped: no such animation", t.Line, t.From, t.To)
			continue
		}

		switch {
		case t.From.IsAny():
			anyTo = append(anyTo, t)
		case t.To.IsAny():
			fromAny = append(fromAny, t)
		default:
			key := [2]Endpoint{t.From, t.To}
			if first, dup := seen[key]; dup {
				w.warnf("line %d: transition %s to %s already declared at line %d, ignored",
					t.Line, t.From, t.To, first)
			} else {
				seen[key] = t.Line
			}
			explicit = append(explicit, t)
		}
	}

	prepared := make([]Transition, 0, len(explicit)+len(ids)*(len(anyTo)+len(fromAny)))
	prepared = append(prepared, explicit...)
	for _, t := range anyTo {
		for _, id := range ids {
			if id != t.To.ID() {
				prepared = append(prepared, Transition{Anim: t.Anim, From: EndpointID(id), To: t.To})
			}
		}
	}
	for _, t := range fromAny {
		for _, id := range ids {
			if id != t.From.ID() {
				prepared = append(prepared, Transition{Anim: t.Anim, From: t.From, To: EndpointID(id)})
			}
		}
	}
	if len(prepared) == 0 {
		return
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		if prepared[i].From != prepared[j].From {
			return prepared[i].From < prepared[j].From
		}
		return prepared[i].To < prepared[j].To
	})

	sup := int(prepared[len(prepared)-1].From)
	from := make([]int, sup+2)
	for i := range from {
		from[i] = -1
	}
	for i := len(prepared) - 1; i >= 0; i-- {
		from[prepared[i].From] = i
	}
	from[sup+1] = len(prepared)
	for i := sup; i >= 0; i-- {
		if from[i] < 0 {
			from[i] = from[i+1]
		}
	}

	info.prepared = prepared
	info.transitionsFrom = from
}

// FindTransitionAnimation returns the transition animation declared for
// from → to, or nil.
func (info *Info) FindTransitionAnimation(from, to int) *Animation {
	if len(info.prepared) == 0 || from < 0 || from+1 >= len(info.transitionsFrom) {
		return nil
	}
	s, e := info.transitionsFrom[from], info.transitionsFrom[from+1]
	target := EndpointID(to)

	i := -1
	if e-s <= linearScanMax {
		for j := s; j < e; j++ {
			if info.prepared[j].To == target {
				i = j
				break
			}
		}
	} else {
		// First entry with To >= target; explicit duplicates sort first.
		j := s + sort.Search(e-s, func(k int) bool { return info.prepared[s+k].To >= target })
		if j < e && info.prepared[j].To == target {
			i = j
		}
	}
	if i < 0 {
		return nil
	}
	return info.Animation(info.prepared[i].Anim)
}

// Transitions returns a copy of the preprocessed transition table, sorted
// by (From, To).
func (info *Info) Transitions() []Transition {
	out := make([]Transition, len(info.prepared))
	copy(out, info.prepared)
	return out
}
