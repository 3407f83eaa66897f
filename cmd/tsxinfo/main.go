package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/tileset/internal/config"
	"github.com/zeusync/tileset/internal/core/catalog"
	"github.com/zeusync/tileset/internal/core/observability/log"
	"github.com/zeusync/tileset/internal/core/tileset"
	"github.com/zeusync/tileset/internal/injector"
)

var errValidation = errors.New("validation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tsxinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	level := fs.String("level", "", "log level (debug, info, warn, error, none)")
	format := fs.String("format", "text", "output format: text, json or yaml")
	strict := fs.Bool("strict", false, "exit non-zero on validation issues")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: tsxinfo [flags] [tileset.tsx ...]")
		fmt.Fprintln(stderr, "Without files the tilesets listed in -config are loaded.")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, "Error loading config:", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			cfg.Log.Level = *level
		case "strict":
			cfg.Strict = *strict
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	rep, err := newReporter(*format, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(stderr, "Error starting:", err)
		return 1
	}
	defer func() { _ = app.Logger.Sync() }()

	if fs.NArg() > 0 {
		err = inspectFiles(app, rep, fs.Args())
	} else if len(cfg.Tilesets) > 0 {
		err = inspectCatalog(ctx, app, rep)
	} else {
		fs.Usage()
		return 2
	}
	if err != nil {
		app.Logger.Error("tsxinfo failed", log.Error(err))
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// inspectFiles reports every file even when earlier ones fail.
func inspectFiles(app *injector.App, rep reporter, paths []string) error {
	var failed error
	for _, path := range paths {
		sheet, err := app.Loader.LoadFile(path)
		if err != nil {
			failed = errors.Join(failed, err)
			continue
		}
		issues := tileset.Validate(sheet)
		if err := rep.report(report{Source: path, Sheet: sheet, Issues: issues}); err != nil {
			return err
		}
		if app.Config.Strict && len(issues) > 0 {
			failed = errors.Join(failed, fmt.Errorf("%s: %w", path, errValidation))
		}
	}
	return failed
}

func inspectCatalog(ctx context.Context, app *injector.App, rep reporter) error {
	c, err := app.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	for _, e := range c.Entries() {
		if err := rep.report(reportFromEntry(e)); err != nil {
			return err
		}
	}
	return nil
}

func reportFromEntry(e *catalog.Entry) report {
	return report{
		Source:    e.Source,
		FirstGID:  e.FirstGID,
		ImagePath: e.ImagePath(),
		Sheet:     e.Sheet(),
		Issues:    e.Issues,
	}
}
