// Command sprcheck loads sprite declarations the way a game would and reports
// every warning and error. With -watch it re-checks whenever a declaration
// changes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/phanxgames/sprite"
)

func main() {
	configPath := flag.String("config", "", "YAML registry configuration")
	root := flag.String("root", ".", "asset directory the configuration is relative to")
	transitions := flag.Bool("transitions", false, "print each sprite's transition table")
	quiet := flag.Bool("q", false, "only report fatal errors")
	watch := flag.Bool("watch", false, "re-check when declarations change")
	flag.Parse()

	cfg := sprite.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = sprite.ReadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *quiet {
		cfg.Quiet = true
	}
	logger := log.New(os.Stderr, "", 0)

	files := flag.Args()
	ok := check(*root, files, cfg, logger, *transitions)
	if !*watch {
		if !ok {
			os.Exit(1)
		}
		return
	}

	w, err := sprite.NewWatcher(filepath.Join(*root, cfg.Root), cfg.Extension)
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()
	log.Printf("watching %s for %s changes", filepath.Join(*root, cfg.Root), cfg.Extension)
	for {
		select {
		case name, open := <-w.Events:
			if !open {
				return
			}
			log.Printf("%s changed", name)
			check(*root, files, cfg, logger, *transitions)
		case err, open := <-w.Errors:
			if !open {
				return
			}
			log.Printf("watch: %v", err)
		}
	}
}

// check loads files, or the whole configured tree when files is empty, and
// reports whether every sprite loaded.
func check(root string, files []string, cfg sprite.Config, logger *log.Logger, transitions bool) bool {
	fsys := os.DirFS(root)
	var warn sprite.Logger = logger
	if cfg.Quiet {
		warn = sprite.Quiet(logger)
	}

	var infos []*sprite.Info
	if len(files) == 0 {
		reg := sprite.NewRegistry(fsys, nil, cfg, warn)
		if err := reg.Init(); err != nil {
			logger.Print(err)
			return false
		}
		for _, name := range reg.Names() {
			info, _ := reg.Sprite(name)
			infos = append(infos, info)
		}
	} else {
		l := &sprite.Loader{FS: fsys, Log: warn, MaxFrames: cfg.MaxFrames}
		failed := false
		for _, f := range files {
			loaded, err := l.LoadFile(filepath.ToSlash(f))
			if err != nil {
				logger.Print(err)
				failed = true
				continue
			}
			infos = append(infos, loaded...)
		}
		if failed {
			return false
		}
	}

	for _, info := range infos {
		fmt.Printf("%s (%s): %d frames of %dx%d, %d animations, %d transition animations\n",
			info.Name(), info.File(), info.NumFrames(), info.FrameWidth(), info.FrameHeight(),
			len(info.AnimationIDs()), info.NumTransitionAnimations())
		if transitions {
			for _, t := range info.Transitions() {
				if t.Line > 0 {
					fmt.Printf("    %s -> %s: animation %d (line %d)\n", t.From, t.To, t.Anim, t.Line)
				} else {
					fmt.Printf("    %s -> %s: animation %d (wildcard)\n", t.From, t.To, t.Anim)
				}
			}
		}
	}
	return true
}
