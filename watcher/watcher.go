// Package watcher reloads a backing state file when it changes on disk.
//
// A Watcher monitors one file with fsnotify, debounces rapid edits, parses
// the file through a loader.Source, and delivers the reloaded root value on
// a channel. The store is confined to a single goroutine, so the watcher
// never touches it directly: the owning goroutine receives Reload values
// and applies them with Store.Set, which turns a file edit into precise
// per-path change notifications.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/jeffm24/meteor-reactive-store/loader"
)

// ErrWatcherClosed is returned by operations on a closed watcher.
var ErrWatcherClosed = errors.New("watcher: closed")

// Reload carries one reloaded root value.
type Reload struct {
	// Session identifies the watcher that produced the reload.
	Session string

	// Path is the watched file.
	Path string

	// Root is the parsed root value.
	Root map[string]any

	// Seq increments per reload within a session.
	Seq int64

	// Time is when the reload was produced.
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the delay used to coalesce rapid file events.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithBufferSize sets the reload and error channel capacity.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// Watcher monitors one state file and delivers reloads.
type Watcher struct {
	mu sync.Mutex

	session string
	path    string
	src     loader.Source

	fsw *fsnotify.Watcher

	debounce time.Duration
	bufSize  int
	timer    *time.Timer

	kick    chan struct{}
	reloads chan Reload
	errors  chan error
	seq     int64

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a watcher for the state file at path, parsed through src.
// The file's directory is watched rather than the file itself so that
// save-by-rename editors and recreated files keep producing events.
func New(path string, src loader.Source, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		session:  uuid.NewString(),
		path:     absPath,
		src:      src,
		fsw:      fsw,
		debounce: 100 * time.Millisecond,
		bufSize:  16,
		kick:     make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.reloads = make(chan Reload, w.bufSize)
	w.errors = make(chan error, w.bufSize)

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Session returns the watcher's session ID.
func (w *Watcher) Session() string {
	return w.session
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the channel of reloaded roots.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Errors returns the channel of load and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	close(w.reloads)
	close(w.errors)
	return err
}

// processLoop handles incoming fsnotify events. All reload loading and
// channel sends happen here so that Close can wait for them to drain.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case <-w.kick:
			w.fire()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// requestReload nudges processLoop to reload. Safe from any goroutine.
func (w *Watcher) requestReload() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// handleEvent schedules a debounced reload when the watched file changes.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.requestReload)
}

// fire loads the file and delivers the result. Runs on processLoop only.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	root, err := w.src.Load()
	if err != nil {
		w.sendError(err)
		return
	}
	if root == nil {
		// File gone mid-rename; the recreate event will reload it.
		return
	}

	w.mu.Lock()
	w.seq++
	r := Reload{
		Session: w.session,
		Path:    w.path,
		Root:    root,
		Seq:     w.seq,
		Time:    time.Now(),
	}
	w.mu.Unlock()

	select {
	case w.reloads <- r:
	default:
		w.sendError(fmt.Errorf("watcher: reload channel full, dropping seq %d", r.Seq))
	}
}

// sendError delivers an error to the output channel, dropping it when the
// channel is full. Runs on processLoop only.
func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Poke forces a reload without waiting for a file system event.
// The initial load at startup typically goes through Poke.
func (w *Watcher) Poke() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.mu.Unlock()

	w.requestReload()
	return nil
}
