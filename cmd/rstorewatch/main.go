// Package main is the entry point for rstorewatch, a live viewer for
// reactive state files. It loads a TOML or JSON file into a reactive
// store, watches the file for edits, and logs a line for every watched
// path whose value actually changed.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jeffm24/meteor-reactive-store/loader"
	"github.com/jeffm24/meteor-reactive-store/reactive"
	"github.com/jeffm24/meteor-reactive-store/tracker"
	"github.com/jeffm24/meteor-reactive-store/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	file     string
	paths    []string
	debounce time.Duration
	logLevel string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	log := logrus.New()
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 1
	}
	log.SetLevel(level)

	src, err := sourceFor(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	w, err := watcher.New(opts.file, src, watcher.WithDebounce(opts.debounce))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", opts.file, err)
		return 1
	}
	defer w.Close()

	tr := tracker.New()
	store := reactive.NewStore(reactive.WithTracker(tr))

	// One autorun per watched path. The first run only registers interest;
	// reruns mean the value at that path actually changed.
	for _, p := range opts.paths {
		path := p
		tr.Autorun(func(c *tracker.Computation) {
			value := store.Get(path)
			exists := store.Has(path)
			if c.FirstRun() {
				return
			}
			log.WithFields(logrus.Fields{
				"path":   path,
				"value":  value,
				"exists": exists,
			}).Info("changed")
		})
	}

	log.WithFields(logrus.Fields{
		"file":    w.Path(),
		"session": w.Session(),
		"paths":   strings.Join(opts.paths, ","),
	}).Info("watching")

	if err := w.Poke(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initial load: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	// The store is confined to this goroutine: reloads arrive on a channel
	// and are applied here, never from the watcher's goroutine.
	for {
		select {
		case r, ok := <-w.Reloads():
			if !ok {
				return 0
			}
			store.Set(r.Root)
			tr.Flush()
			log.WithFields(logrus.Fields{"seq": r.Seq}).Debug("reloaded")

		case err, ok := <-w.Errors():
			if !ok {
				return 0
			}
			log.WithError(err).Warn("reload failed")

		case sig := <-signals:
			log.WithFields(logrus.Fields{"signal": sig.String()}).Info("shutting down")
			return 0
		}
	}
}

// sourceFor picks a parser by file extension.
func sourceFor(file string) (loader.Source, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		return loader.NewTOMLSource(file), nil
	case ".json":
		return loader.NewJSONSource(file), nil
	default:
		return nil, fmt.Errorf("unsupported state file extension %q (want .toml or .json)", ext)
	}
}

func parseFlags() options {
	var opts options
	var pathList string
	var showVersion bool

	flag.StringVar(&pathList, "paths", "", "Comma-separated paths to watch (default: whole value)")
	flag.StringVar(&pathList, "p", "", "Comma-separated paths to watch (shorthand)")
	flag.DurationVar(&opts.debounce, "debounce", 100*time.Millisecond, "Delay for coalescing rapid file edits")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rstorewatch - live change viewer for reactive state files\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rstorewatch [options] <state-file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rstorewatch state.toml                    Watch the whole value\n")
		fmt.Fprintf(os.Stderr, "  rstorewatch -p server.port,user state.json  Watch two paths\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("rstorewatch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	opts.file = flag.Arg(0)

	if pathList == "" {
		opts.paths = []string{reactive.Root}
	} else {
		for _, p := range strings.Split(pathList, ",") {
			if p = strings.TrimSpace(p); p != "" {
				opts.paths = append(opts.paths, p)
			}
		}
	}

	return opts
}
