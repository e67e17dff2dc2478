package sprite

import (
	"image"
	"io/fs"
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/phanxgames/sprite/internal/decl"
)

var (
	percentRe    = regexp.MustCompile(`^\d{1,3}%$`)
	propertyIDRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Loader reads sprite declaration files. Every field except FS may be left
// zero: Images then defaults to a MemoryLoader over FS, Log to
// DefaultLogger and MaxFrames to DefaultMaxFrames.
//
// Spritesheet paths in source_file are relative to the root of FS, or to the
// declaring file's directory when they start with "./" or "../".
type Loader struct {
	FS        fs.FS
	Images    ImageLoader
	Log       Logger
	MaxFrames int
}

func (l *Loader) defaults() {
	if l.Images == nil {
		l.Images = NewMemoryLoader(l.FS)
	}
	if l.Log == nil {
		l.Log = DefaultLogger()
	}
	if l.MaxFrames <= 0 {
		l.MaxFrames = DefaultMaxFrames
	}
}

// LoadFile reads and loads the declaration file name from l.FS.
func (l *Loader) LoadFile(name string) ([]*Info, error) {
	src, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, errors.Wrapf(err, "sprite: reading %s", name)
	}
	return l.Load(name, src)
}

// Load parses src, the contents of the declaration file named file, and
// returns the validated sprites it declares. Repairs are reported to l.Log;
// any fatal problem aborts the whole file.
func (l *Loader) Load(file string, src []byte) ([]*Info, error) {
	l.defaults()
	prog, err := decl.Parse(file, src)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "sprite: %v", err)
	}

	var out []*Info
	for _, st := range prog {
		if st.Ident != "sprite" || st.NumParams() != 2 || st.Param(1).IsProgram() || !st.Param(2).IsProgram() {
			return nil, syntaxf(file, st.Line, "expected sprite <name> { ... }, found %q", st.Ident)
		}
		sl := &spriteLoader{
			Loader: l,
			info:   newInfo(st.Param(1).String(), file),
		}
		sl.w = warner{log: l.Log, sprite: sl.info.name, file: file}
		if err := sl.body(st.Param(2).Program()); err != nil {
			return nil, err
		}
		if err := sl.finish(); err != nil {
			return nil, err
		}
		out = append(out, sl.info)
	}
	return out, nil
}

func syntaxf(file string, line int, format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, "sprite: %s:%d: "+format, append([]any{file, line}, args...)...)
}

// spriteLoader holds the state of one sprite body being read.
type spriteLoader struct {
	*Loader
	info *Info
	w    warner

	// Set by the first animation, transition or keyframes statement.
	inAnimations bool
}

func (sl *spriteLoader) syntaxf(st *decl.Statement, format string, args ...any) error {
	return syntaxf(sl.info.file, st.Line, format, args...)
}

// --- sprite body ---

func (sl *spriteLoader) body(prog decl.Program) error {
	info := sl.info
	for _, st := range prog {
		switch st.Ident {
		case "animation", "transition", "keyframes":
			sl.inAnimations = true
		case "source_file", "source_rect", "frame_size", "hot_spot", "action_spot", "custom_properties":
			if sl.inAnimations {
				return sl.syntaxf(st, "%s must come before animations, transitions and keyframes", st.Ident)
			}
		default:
			return sl.syntaxf(st, "unknown statement %q in sprite", st.Ident)
		}

		var err error
		switch st.Ident {
		case "source_file":
			var words []string
			if words, err = sl.words(st, 1); err == nil {
				info.sourceFile = words[0]
			}
		case "source_rect":
			var v []int
			if v, err = sl.ints(st, 4); err == nil {
				info.rect = Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
				info.hasRect = true
			}
		case "frame_size":
			var v []int
			if v, err = sl.ints(st, 2); err == nil {
				info.frameW, info.frameH = v[0], v[1]
				info.hasFrameSize = true
			}
		case "hot_spot":
			info.hotSpot, err = sl.point(st)
		case "action_spot":
			info.actionSpot, err = sl.point(st)
		case "custom_properties":
			err = sl.customProperties(st)
		case "animation":
			err = sl.animation(st)
		case "transition":
			err = sl.transition(st)
		case "keyframes":
			err = sl.keyframes(st)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// finish runs the load pipeline: sheet, validation, transitions, frames.
func (sl *spriteLoader) finish() error {
	info := sl.info
	if info.sourceFile == "" {
		return info.errorf(ErrMissingSourceFile, "no source_file")
	}
	sheet, err := sl.Images.Load(sl.resolve(info.sourceFile))
	if err != nil {
		return info.errorf(ErrMissingSpritesheet, "%v", err)
	}
	info.sheet = sheet
	if len(info.AnimationIDs()) == 0 {
		return info.errorf(ErrNoAnimations, "declare at least one animation")
	}
	if err := info.validate(sl.w, sl.MaxFrames); err != nil {
		return err
	}
	info.preprocessTransitions(sl.w)
	info.buildFrames()
	return nil
}

func (sl *spriteLoader) resolve(src string) string {
	if strings.HasPrefix(src, "./") || strings.HasPrefix(src, "../") {
		return path.Join(path.Dir(sl.info.file), src)
	}
	return path.Clean(src)
}

// --- animations ---

func (sl *spriteLoader) animation(st *decl.Statement) error {
	id := 0
	var block *decl.Param
	switch st.NumParams() {
	case 1:
		block = st.Param(1)
	case 2:
		n, err := sl.atoi(st, st.Param(1))
		if err != nil {
			return err
		}
		id = n
		block = st.Param(2)
	default:
		return sl.syntaxf(st, "expected animation [<id>] { ... }")
	}
	if !block.IsProgram() {
		return sl.syntaxf(st, "animation %d has no body", id)
	}
	if id < 0 || id >= MaxAnimations {
		return errors.Wrapf(ErrAnimationID, "sprite: %s:%d: animation %d not in [0, %d)",
			sl.info.file, st.Line, id, MaxAnimations)
	}

	a := newAnimation(sl.info, id)
	if err := sl.animationBody(a, block.Program()); err != nil {
		return err
	}
	if sl.info.animations[id] != nil {
		sl.w.warnf("line %d: animation %d redefined", st.Line, id)
	}
	sl.info.animations[id] = a
	return nil
}

func (sl *spriteLoader) transition(st *decl.Statement) error {
	if st.NumParams() != 4 || st.Param(2).String() != "to" || !st.Param(4).IsProgram() {
		return sl.syntaxf(st, "expected transition <from> to <to> { ... }")
	}
	from, fromOK, err := sl.endpoint(st, st.Param(1))
	if err != nil {
		return err
	}
	to, toOK, err := sl.endpoint(st, st.Param(3))
	if err != nil {
		return err
	}
	if len(sl.info.transitionAnims) >= MaxAnimations {
		return errors.Wrapf(ErrAnimationID, "sprite: %s:%d: more than %d transitions",
			sl.info.file, st.Line, MaxAnimations)
	}

	id := MaxAnimations + len(sl.info.transitionAnims)
	a := newAnimation(sl.info, id)
	if err := sl.animationBody(a, st.Param(4).Program()); err != nil {
		return err
	}
	sl.info.transitionAnims = append(sl.info.transitionAnims, a)
	if !fromOK || !toOK {
		// Negative ids cannot be told apart from "any" once stored.
		sl.w.warnf("line %d: transition %s to %s dropped: no such animation",
			st.Line, st.Param(1).String(), st.Param(3).String())
		return nil
	}
	sl.info.transitions = append(sl.info.transitions, Transition{Anim: id, From: from, To: to, Line: st.Line})
	return nil
}

// endpoint parses an integer id or "any". Ids past the animation table are
// kept and dropped with the other unknown ids during preprocessing; a
// negative id reports ok=false.
func (sl *spriteLoader) endpoint(st *decl.Statement, p *decl.Param) (e Endpoint, ok bool, err error) {
	if p.String() == "any" {
		return AnyEndpoint, true, nil
	}
	id, err := sl.atoi(st, p)
	if err != nil {
		return 0, false, err
	}
	if id < 0 {
		return 0, false, nil
	}
	return EndpointID(id), true, nil
}

func (sl *spriteLoader) animationBody(a *Animation, prog decl.Program) error {
	for _, st := range prog {
		var err error
		switch st.Ident {
		case "repeat":
			var words []string
			if words, err = sl.words(st, 1); err == nil {
				a.repeat, err = strconv.ParseBool(words[0])
				if err != nil {
					err = sl.syntaxf(st, "repeat: %q is not a boolean", words[0])
				}
			}
		case "fps":
			var v []float64
			if v, err = sl.floats(st, 1); err == nil {
				a.fps = v[0]
			}
		case "repeat_from":
			var v []int
			if v, err = sl.ints(st, 1); err == nil {
				a.repeatFrom = v[0]
			}
		case "hot_spot":
			a.hotSpot, err = sl.point(st)
		case "action_spot":
			a.actionSpot, err = sl.point(st)
		case "data":
			if st.NumParams() == 0 {
				return sl.syntaxf(st, "data needs at least one frame index")
			}
			var v []int
			if v, err = sl.ints(st, st.NumParams()); err == nil {
				a.data = v
			}
		case "play":
			var words []string
			if words, err = sl.words(st, 1); err == nil {
				a.progName = words[0]
			}
		default:
			err = sl.syntaxf(st, "unknown statement %q in animation", st.Ident)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// --- keyframes ---

func (sl *spriteLoader) keyframes(st *decl.Statement) error {
	if st.NumParams() != 2 || st.Param(1).IsProgram() || !st.Param(2).IsProgram() {
		return sl.syntaxf(st, "expected keyframes <name> { ... }")
	}
	name := st.Param(1).String()

	duration := 1.0
	easing := EaseLinear
	var frames []Keyframe
	var explicit []bool
	for _, s := range st.Param(2).Program() {
		var err error
		switch s.Ident {
		case "duration":
			var v []float64
			if v, err = sl.floats(s, 1); err == nil {
				duration = v[0]
				if duration <= 0 || math.IsNaN(duration) {
					sl.w.warnf("line %d: keyframes %q: duration %g is not positive, set to 0", s.Line, name, duration)
					duration = 0
				}
			}
		case "easing":
			var words []string
			if words, err = sl.words(s, 1); err == nil {
				var perr error
				if easing, perr = ParseEasing(words[0]); perr != nil {
					sl.w.warnf("line %d: keyframes %q: unknown easing %q, using linear", s.Line, name, words[0])
				}
			}
		case "keyframe":
			var kf Keyframe
			var set bool
			if kf, set, err = sl.keyframe(s, name); err == nil {
				frames = append(frames, kf)
				explicit = append(explicit, set)
			}
		default:
			err = sl.syntaxf(s, "unknown statement %q in keyframes", s.Ident)
		}
		if err != nil {
			return err
		}
	}

	if err := sl.assignPercentages(st, name, frames, explicit); err != nil {
		return err
	}
	if sl.info.progAnims[name] != nil {
		sl.w.warnf("line %d: keyframes %q redefined", st.Line, name)
	}
	sl.info.progAnims[name] = NewProgAnim(name, duration, easing, frames)
	return nil
}

// keyframe reads `keyframe [<pct>%] { ... }`. set reports whether the
// percentage was given.
func (sl *spriteLoader) keyframe(st *decl.Statement, name string) (kf Keyframe, set bool, err error) {
	kf = DefaultKeyframe
	var block *decl.Param
	switch st.NumParams() {
	case 1:
		block = st.Param(1)
	case 2:
		lit := st.Param(1).String()
		if !percentRe.MatchString(lit) {
			return kf, false, sl.syntaxf(st, "keyframe percentage %q must look like 50%%", lit)
		}
		pct, _ := strconv.Atoi(strings.TrimSuffix(lit, "%"))
		if pct > 100 {
			sl.w.warnf("line %d: keyframes %q: percentage %d%% clamped to 100%%", st.Line, name, pct)
			pct = 100
		}
		kf.Percentage = pct
		set = true
		block = st.Param(2)
	default:
		return kf, false, sl.syntaxf(st, "expected keyframe [<pct>%%] { ... }")
	}
	if !block.IsProgram() {
		return kf, false, sl.syntaxf(st, "keyframe has no body")
	}

	for _, s := range block.Program() {
		var v []float64
		switch s.Ident {
		case "translation":
			if v, err = sl.floats(s, 2); err == nil {
				kf.Translation = Vec2{float32(v[0]), float32(v[1])}
			}
		case "rotation":
			if v, err = sl.floats(s, 1); err == nil {
				kf.Rotation = float32(v[0])
			}
		case "scale":
			if v, err = sl.floats(s, 2); err == nil {
				kf.Scale = Vec2{float32(v[0]), float32(v[1])}
			}
		case "opacity":
			var words []string
			if words, err = sl.words(s, 1); err != nil {
				break
			}
			o, perr := strconv.ParseFloat(strings.TrimSuffix(words[0], "%"), 32)
			if perr != nil {
				err = sl.syntaxf(s, "opacity %q is not a percentage", words[0])
				break
			}
			if o < 0 || o > 100 {
				sl.w.warnf("line %d: keyframes %q: opacity %g%% clamped to [0, 100]", s.Line, name, o)
			}
			kf.Opacity = clamp32(float32(o), 0, 100)
		default:
			err = sl.syntaxf(s, "unknown statement %q in keyframe", s.Ident)
		}
		if err != nil {
			return kf, set, err
		}
	}
	return kf, set, nil
}

// assignPercentages fills automatic percentages, or checks that explicit
// ones are in declaration order. Mixing the two is an error.
func (sl *spriteLoader) assignPercentages(st *decl.Statement, name string, frames []Keyframe, explicit []bool) error {
	n, given := len(frames), 0
	for _, e := range explicit {
		if e {
			given++
		}
	}
	switch {
	case given == 0:
		for i := range frames {
			if n > 1 {
				frames[i].Percentage = int(math.Round(100 * float64(i) / float64(n-1)))
			}
		}
	case given != n:
		return sl.syntaxf(st, "keyframes %q: either every keyframe or none has a percentage", name)
	default:
		for i := 1; i < n; i++ {
			if frames[i].Percentage < frames[i-1].Percentage {
				return errors.Wrapf(ErrKeyframeOrder, "sprite: %s:%d: keyframes %q: %d%% after %d%%",
					sl.info.file, st.Line, name, frames[i].Percentage, frames[i-1].Percentage)
			}
		}
	}
	return nil
}

// --- custom properties ---

func (sl *spriteLoader) customProperties(st *decl.Statement) error {
	if st.NumParams() != 1 || !st.Param(1).IsProgram() {
		return sl.syntaxf(st, "expected custom_properties { ... }")
	}
	for _, s := range st.Param(1).Program() {
		if !propertyIDRe.MatchString(s.Ident) {
			return sl.syntaxf(s, "invalid property name %q", s.Ident)
		}
		if s.NumParams() == 0 {
			return sl.syntaxf(s, "property %q needs at least one value", s.Ident)
		}
		values, err := sl.words(s, s.NumParams())
		if err != nil {
			return err
		}
		if _, dup := sl.info.properties[s.Ident]; dup {
			sl.w.warnf("line %d: property %q redefined", s.Line, s.Ident)
		}
		sl.info.properties[s.Ident] = values
	}
	return nil
}

// --- parameter helpers ---

// words returns exactly n word parameters.
func (sl *spriteLoader) words(st *decl.Statement, n int) ([]string, error) {
	if st.NumParams() != n {
		return nil, sl.syntaxf(st, "%s takes %d parameter(s), got %d", st.Ident, n, st.NumParams())
	}
	out := make([]string, n)
	for i := range out {
		p := st.Param(i + 1)
		if p.IsProgram() {
			return nil, sl.syntaxf(st, "%s: unexpected block", st.Ident)
		}
		out[i] = p.String()
	}
	return out, nil
}

func (sl *spriteLoader) ints(st *decl.Statement, n int) ([]int, error) {
	if _, err := sl.words(st, n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		v, err := sl.atoi(st, st.Param(i+1))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (sl *spriteLoader) floats(st *decl.Statement, n int) ([]float64, error) {
	words, err := sl.words(st, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i, w := range words {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, sl.syntaxf(st, "%s: %q is not a number", st.Ident, w)
		}
		out[i] = v
	}
	return out, nil
}

func (sl *spriteLoader) atoi(st *decl.Statement, p *decl.Param) (int, error) {
	v, err := strconv.Atoi(p.String())
	if err != nil || p.IsProgram() {
		return 0, sl.syntaxf(st, "%s: %q is not an integer", st.Ident, p.String())
	}
	return v, nil
}

func (sl *spriteLoader) point(st *decl.Statement) (image.Point, error) {
	v, err := sl.ints(st, 2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}
