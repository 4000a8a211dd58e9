// Package watch regenerates palettes whenever an image file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/image"
)

// DefaultDebounce is how long the file must stay quiet before it is reloaded.
const DefaultDebounce = 250 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Path is the image file to watch.
	Path string

	// Settings are used for every regeneration until Update changes them.
	Settings colour.Settings

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// Loader defaults to an image.FileLoader.
	Loader image.Loader

	Log hclog.Logger
}

// Watcher owns a colour.Session for one image file. The image is reloaded
// and rebucketed only when the file changes; settings changes reuse the
// cached buckets.
type Watcher struct {
	path     string
	debounce time.Duration
	loader   image.Loader
	log      hclog.Logger
	session  *colour.Session

	mu       sync.Mutex
	settings colour.Settings
}

// New creates a watcher. Nothing is loaded until Reload or Run.
func New(opts Options) (*Watcher, error) {
	if opts.Path == "" {
		return nil, image.ErrEmptyPath
	}
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", opts.Path, err)
	}

	w := &Watcher{
		path:     abs,
		debounce: opts.Debounce,
		loader:   opts.Loader,
		log:      opts.Log,
		session:  colour.NewSession(),
		settings: opts.Settings,
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.loader == nil {
		w.loader = image.NewFileLoader()
	}
	if w.log == nil {
		w.log = hclog.NewNullLogger()
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reload reads the image again, replaces the session's pixels and
// regenerates both palettes.
func (w *Watcher) Reload() (colour.Result, error) {
	img, err := w.loader.Load(w.path)
	if err != nil {
		return colour.Result{}, err
	}
	w.session.SetPixels(image.Pixels(img))
	return w.Update(w.currentSettings()), nil
}

// Update changes the settings and regenerates the palettes from the
// cached buckets where possible.
func (w *Watcher) Update(s colour.Settings) colour.Result {
	w.mu.Lock()
	w.settings = s
	w.mu.Unlock()
	return w.session.Update(s)
}

func (w *Watcher) currentSettings() colour.Settings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settings
}

// Run loads the image, emits its palettes, then emits again after every
// debounced change to the file until ctx is cancelled. Load failures after
// the first are logged and skipped, since editors often write in stages.
func (w *Watcher) Run(ctx context.Context, emit func(colour.Result)) error {
	res, err := w.Reload()
	if err != nil {
		return err
	}
	emit(res)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	// Watch the directory so atomic replace-by-rename is still seen.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.log.Info("watching image", "path", w.path, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("image changed", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", "error", err)

		case <-timer.C:
			res, err := w.Reload()
			if err != nil {
				w.log.Warn("failed to reload image", "path", w.path, "error", err)
				continue
			}
			if !w.session.IsCurrent(res.Generation) {
				w.log.Debug("discarding superseded result", "generation", res.Generation)
				continue
			}
			emit(res)
		}
	}
}
