package sprite

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Registry maps sprite names to loaded sprites. It is created empty, filled
// by Init and emptied by Release. Lookups are only valid between the two.
//
// A Registry is not safe for concurrent use. To pick up edited declarations,
// build and Init a fresh Registry and swap it in.
type Registry struct {
	cfg     Config
	fsys    fs.FS
	images  ImageLoader
	log     Logger
	sprites map[string]*Info
}

// NewRegistry returns a registry that scans cfg.Root inside fsys. Images are
// loaded through images; a nil images uses a MemoryLoader over fsys. A nil
// log uses DefaultLogger.
func NewRegistry(fsys fs.FS, images ImageLoader, cfg Config, log Logger) *Registry {
	cfg = cfg.withDefaults()
	if log == nil {
		log = DefaultLogger()
	}
	if cfg.Quiet {
		log = Quiet(log)
	}
	if images == nil {
		images = NewMemoryLoader(fsys)
	}
	return &Registry{cfg: cfg, fsys: fsys, images: images, log: log}
}

// Config returns the registry's effective configuration.
func (r *Registry) Config() Config { return r.cfg }

// Init loads every declaration file under the configured root, in lexical
// path order. The first fatal load error stops the scan and is returned;
// sprites loaded before it stay registered. Sprites from an earlier Init are
// released first.
func (r *Registry) Init() error {
	r.Release()
	r.sprites = make(map[string]*Info)
	loader := &Loader{FS: r.fsys, Images: r.images, Log: r.log, MaxFrames: r.cfg.MaxFrames}

	root := path.Clean(r.cfg.Root)
	return fs.WalkDir(r.fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "sprite: scanning %s", root)
		}
		if d.IsDir() || !strings.HasSuffix(p, r.cfg.Extension) {
			return nil
		}
		infos, err := loader.LoadFile(p)
		if err != nil {
			return err
		}
		for _, info := range infos {
			r.insert(info)
		}
		return nil
	})
}

// MustInit is Init with failures sent to the logger's Fatalf.
func (r *Registry) MustInit() {
	if err := r.Init(); err != nil {
		r.log.Fatalf("%v", err)
	}
}

// insert applies the redefinition policy: override declarations replace an
// existing sprite, any other redefinition is dropped.
func (r *Registry) insert(info *Info) {
	prev, exists := r.sprites[info.name]
	if !exists {
		r.sprites[info.name] = info
		return
	}
	if strings.HasPrefix(info.file, r.cfg.OverridePrefix) {
		r.log.Printf("sprite: %q (%s): overrides definition from %s", info.name, info.file, prev.file)
		prev.release()
		r.sprites[info.name] = info
		return
	}
	r.log.Printf("sprite: %q (%s): already defined in %s, ignored", info.name, info.file, prev.file)
	info.release()
}

// Add registers sprites loaded outside Init under the same redefinition
// policy.
func (r *Registry) Add(infos ...*Info) {
	if r.sprites == nil {
		r.sprites = make(map[string]*Info)
	}
	for _, info := range infos {
		r.insert(info)
	}
}

// Release drops every sprite. The registry may be initialized again.
func (r *Registry) Release() {
	for _, info := range r.sprites {
		info.release()
	}
	r.sprites = nil
}

// Sprite returns the named sprite.
func (r *Registry) Sprite(name string) (*Info, error) {
	if r.sprites == nil {
		return nil, errors.Wrapf(ErrNotInitialized, "sprite: lookup %q", name)
	}
	info, ok := r.sprites[name]
	if !ok {
		return nil, errors.Wrapf(ErrSpriteNotFound, "sprite: %q", name)
	}
	return info, nil
}

// Animation returns animation id of the named sprite. An empty name selects
// animation 0 of the configured default sprite.
func (r *Registry) Animation(name string, id int) (*Animation, error) {
	if name == "" {
		name, id = r.cfg.DefaultSprite, 0
	}
	info, err := r.Sprite(name)
	if err != nil {
		return nil, err
	}
	a := info.Animation(id)
	if a == nil {
		return nil, errors.Wrapf(ErrAnimationNotFound, "sprite: %q: animation %d", name, id)
	}
	return a, nil
}

// MustAnimation is Animation with failures sent to the logger's Fatalf.
func (r *Registry) MustAnimation(name string, id int) *Animation {
	a, err := r.Animation(name, id)
	if err != nil {
		r.log.Fatalf("%v", err)
	}
	return a
}

// AnimationExists reports whether Animation would succeed.
func (r *Registry) AnimationExists(name string, id int) bool {
	_, err := r.Animation(name, id)
	return err == nil
}

// Names returns the registered sprite names, sorted.
func (r *Registry) Names() []string { return sortedKeys(r.sprites) }

// Len returns the number of registered sprites.
func (r *Registry) Len() int { return len(r.sprites) }
