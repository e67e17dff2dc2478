package sprite

import (
	"image"
	"sort"
)

// Info is a loaded sprite: a spritesheet region cut into a flat frame table,
// plus the animations, transitions, keyframe animations and custom
// properties declared for it. An Info is read-only once loaded.
type Info struct {
	name string
	file string

	sourceFile string
	sheet      Image
	rect       Rect
	frameW     int
	frameH     int
	frames     []Image

	// Set when the declaration gave the value explicitly; otherwise
	// validation derives it from the sheet.
	hasRect      bool
	hasFrameSize bool

	hotSpot    image.Point
	actionSpot image.Point

	animations      [MaxAnimations]*Animation
	transitionAnims []*Animation

	transitions     []Transition // as declared
	prepared        []Transition // expanded and sorted
	transitionsFrom []int

	progAnims  map[string]*ProgAnim
	properties map[string][]string
}

func newInfo(name, file string) *Info {
	return &Info{
		name:       name,
		file:       file,
		progAnims:  make(map[string]*ProgAnim),
		properties: make(map[string][]string),
	}
}

// Name returns the registry key of the sprite.
func (info *Info) Name() string { return info.name }

// File returns the path of the declaration file the sprite came from.
func (info *Info) File() string { return info.file }

// SourceFile returns the spritesheet path as declared.
func (info *Info) SourceFile() string { return info.sourceFile }

// Sheet returns the spritesheet image.
func (info *Info) Sheet() Image { return info.sheet }

// SourceRect returns the validated region of the sheet holding the frames.
func (info *Info) SourceRect() Rect { return info.rect }

func (info *Info) FrameWidth() int  { return info.frameW }
func (info *Info) FrameHeight() int { return info.frameH }

// HotSpot returns the sprite's default hot spot.
func (info *Info) HotSpot() image.Point { return info.hotSpot }

// ActionSpot returns the sprite's default action spot.
func (info *Info) ActionSpot() image.Point { return info.actionSpot }

// NumFrames returns the length of the frame table.
func (info *Info) NumFrames() int { return len(info.frames) }

// Frame returns entry i of the frame table, or nil if i is out of range.
func (info *Info) Frame(i int) Image {
	if i < 0 || i >= len(info.frames) {
		return nil
	}
	return info.frames[i]
}

// FrameRect returns the sheet rectangle of frame table entry i. Frames are
// numbered row-major within the source rectangle.
func (info *Info) FrameRect(i int) Rect {
	cols := info.rect.Width / info.frameW
	return Rect{
		X:      info.rect.X + (i%cols)*info.frameW,
		Y:      info.rect.Y + (i/cols)*info.frameH,
		Width:  info.frameW,
		Height: info.frameH,
	}
}

// Animation returns the animation with the given id, or nil. Ids of
// MaxAnimations and above address transition animations.
func (info *Info) Animation(id int) *Animation {
	switch {
	case id < 0:
		return nil
	case id < MaxAnimations:
		return info.animations[id]
	case id-MaxAnimations < len(info.transitionAnims):
		return info.transitionAnims[id-MaxAnimations]
	}
	return nil
}

// AnimationIDs returns the ids of the regular animations in ascending order.
func (info *Info) AnimationIDs() []int {
	var ids []int
	for id, a := range info.animations {
		if a != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// NumTransitionAnimations returns how many transition animations were
// declared. Their ids are MaxAnimations through MaxAnimations+n-1.
func (info *Info) NumTransitionAnimations() int { return len(info.transitionAnims) }

// ProgAnim returns the named keyframe animation, or nil.
func (info *Info) ProgAnim(name string) *ProgAnim { return info.progAnims[name] }

// ProgAnimNames returns the keyframe animation names, sorted.
func (info *Info) ProgAnimNames() []string { return sortedKeys(info.progAnims) }

// UserProperty returns the values of a custom property. The returned slice
// must not be modified.
func (info *Info) UserProperty(name string) ([]string, bool) {
	v, ok := info.properties[name]
	return v, ok
}

// UserPropertyNames returns the custom property names, sorted.
func (info *Info) UserPropertyNames() []string { return sortedKeys(info.properties) }

// release drops every image reference so the sheet can be collected.
func (info *Info) release() {
	info.frames = nil
	info.sheet = nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
