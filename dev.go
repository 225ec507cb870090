package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/donutnomad/rulekit/internal/annotation"
	"github.com/donutnomad/rulekit/internal/utils"
	"github.com/donutnomad/rulekit/rulegen"
	"github.com/fsnotify/fsnotify"
)

const devDebounce = time.Second

// devRunner regenerates a package shortly after its annotated files change.
type devRunner struct {
	verbose   bool
	debounce  time.Duration
	watcher   *fsnotify.Watcher
	scanner   *annotation.Scanner
	generator *rulegen.Generator
	ctx       context.Context

	// generate runs for one package directory; replaced in tests
	generate func(dir string)

	mu      sync.Mutex
	pending map[string]*time.Timer // by package directory
}

func runDev(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nstopping...")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	r := newDevRunner(ctx, watcher, newGenerator(cfg), *verbose)
	defer r.stop()

	dirs, err := collectWatchDirs(patternsOrDefault(args))
	if err != nil {
		return fmt.Errorf("collect watch dirs: %w", err)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("nothing to watch")
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		if r.verbose {
			fmt.Printf("watching %s\n", dir)
		}
	}

	fmt.Printf("watching %d directories, press Ctrl+C to stop\n", len(dirs))
	return r.watchLoop(ctx)
}

func newDevRunner(ctx context.Context, watcher *fsnotify.Watcher, g *rulegen.Generator, verbose bool) *devRunner {
	r := &devRunner{
		verbose:   verbose,
		debounce:  devDebounce,
		watcher:   watcher,
		scanner:   annotation.NewScanner(annotation.WithFilter(rulegen.AnnotationFamily, rulegen.AnnotationRule)),
		generator: g,
		ctx:       ctx,
		pending:   make(map[string]*time.Timer),
	}
	r.generate = r.runGenerate
	return r
}

func (r *devRunner) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, timer := range r.pending {
		timer.Stop()
	}
}

func (r *devRunner) watchLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			r.handleEvent(event)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			if r.verbose {
				fmt.Printf("watch error: %v\n", err)
			}
		}
	}
}

func (r *devRunner) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := event.Name
	if !strings.HasSuffix(path, ".go") || annotation.IsGeneratedFile(path) {
		return
	}

	matched, err := r.scanner.QuickMatchFile(path)
	if err != nil {
		if r.verbose {
			fmt.Printf("skip %s: %v\n", path, err)
		}
		return
	}
	if !matched {
		return
	}
	if err := utils.CheckSyntax(path); err != nil {
		fmt.Printf("syntax error in %s: %v\n", path, err)
		return
	}

	r.schedule(filepath.Dir(path))
}

// schedule runs generate for dir once no change arrived for r.debounce.
func (r *devRunner) schedule(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, ok := r.pending[dir]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(r.debounce, func() {
		if r.ctx.Err() != nil {
			return
		}
		r.generate(dir)

		r.mu.Lock()
		// a change during generate may have scheduled a newer timer
		if r.pending[dir] == timer {
			delete(r.pending, dir)
		}
		r.mu.Unlock()
	})
	r.pending[dir] = timer
}

func (r *devRunner) runGenerate(dir string) {
	start := time.Now()
	result, err := r.generator.Run(r.ctx, dir)
	if err != nil {
		fmt.Printf("generate %s: %v\n", dir, err)
		return
	}
	for _, e := range result.Errors {
		fmt.Println(e)
	}
	if len(result.Files) > 0 {
		fmt.Printf("generated %s (%v)\n", dir, time.Since(start).Round(time.Millisecond))
	}
}

// collectWatchDirs lists the directories to watch for patterns, skipping
// hidden, vendor and testdata directories.
func collectWatchDirs(patterns []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		recursive := strings.HasSuffix(pattern, "/...")
		base := strings.TrimSuffix(pattern, "/...")
		if base == "" {
			base = "."
		}

		absDir, err := filepath.Abs(base)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(absDir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			continue
		}
		if !recursive {
			if !seen[absDir] {
				seen[absDir] = true
				dirs = append(dirs, absDir)
			}
			continue
		}

		err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != absDir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata") {
				return filepath.SkipDir
			}
			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}
