package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/xiubox/asset-manager/archive"
	"github.com/xiubox/asset-manager/cache"
	"github.com/xiubox/asset-manager/loader"
	"github.com/xiubox/asset-manager/manifest"
	"github.com/xiubox/asset-manager/metrics"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "", "Path to asset manifest (YAML)")
		rootDir      = flag.String("root", ".", "Asset root directory")
		archivePath  = flag.String("archive", "", "Read assets from an archive instead of -root")
		resolveAll   = flag.Bool("resolve-all", false, "Dispatch loads for lazy entries too")
		timeout      = flag.Duration("timeout", 30*time.Second, "Give up waiting for loads after this long")
		metricsAddr  = flag.String("metrics", "", "Serve Prometheus metrics on this address during the run")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: preload -manifest <assets.yaml> [-root dir | -archive file] [-resolve-all]")
		fmt.Fprintln(os.Stderr, "       preload -manifest <assets.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if isTerminal() {
			if err := runInteractive(*manifestPath, *rootDir, *archivePath); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		fmt.Fprintln(os.Stderr, "stdout is not a terminal, running without TUI")
	}

	setupLogging(*verbose)

	if err := run(*manifestPath, *rootDir, *archivePath, *metricsAddr, *resolveAll, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	cache.SetLogger(log.Named("cache"))
	loader.SetLogger(log.Named("loader"))
}

// newLoader picks the asset source: a directory tree, or an archive when
// archivePath is set.
func newLoader(rootDir, archivePath string) (*loader.Async, io.Closer, error) {
	if archivePath == "" {
		return loader.NewFile(rootDir), nil, nil
	}
	a, closer, err := archive.OpenFile(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	return loader.NewArchive(a), closer, nil
}

func run(manifestPath, rootDir, archivePath, metricsAddr string, resolveAll bool, timeout time.Duration) error {
	// Read the manifest
	regs, err := manifest.Load(manifestPath, manifest.StringKey)
	if err != nil {
		return err
	}

	// Pick the asset source
	ld, closer, err := newLoader(rootDir, archivePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	// Optional scrape endpoint for long preloads
	var opts []cache.Option
	if metricsAddr != "" {
		opts = append(opts, cache.WithMetrics(metrics.New(nil)))
		go func() {
			if err := http.ListenAndServe(metricsAddr, metrics.Handler()); err != nil {
				fmt.Fprintf(os.Stderr, "metrics server: %v\n", err)
			}
		}()
	}

	// Register everything; eager rows dispatch immediately
	c := cache.New[string](ld, opts...)
	c.Apply(regs)
	fmt.Printf("Manifest: %s\n", manifestPath)
	fmt.Printf("Assets: %d registered, %d loading\n", c.Len(), ld.Pending())

	if resolveAll {
		c.ResolveMany(manifest.Keys(regs))
	}

	// Wait for every dispatched load
	var resolved []string
	c.Each(func(key string, state cache.State, _ string) bool {
		if state == cache.StateResolved {
			resolved = append(resolved, key)
		}
		return true
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	for _, h := range c.GetMany(resolved) {
		g.Go(func() error {
			if err := h.Wait(ctx); err != nil {
				return fmt.Errorf("%s: %w", h.Path(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Loaded %d assets, %d registered lazily\n", len(resolved), c.Len()-len(resolved))
	return nil
}
