// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/artifacts"
)

const (
	defaultDir  = "artifacts/models"
	defaultKeep = 3
)

const usage = `Usage: houseoracle-artifacts <command> [flags]

Commands:
  import  -dir DIR [-format yaml|json] MANIFEST...
  list    -dir DIR [-json]
  prune   -dir DIR [-keep N] [NAME...]
`

var errUsage = errors.New("usage")

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Str("component", "artifacts-cli").Logger()

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "import":
		err = runImport(ctx, args[1:], stdout, stderr, logger)
	case "list":
		err = runList(ctx, args[1:], stdout, stderr)
	case "prune":
		err = runPrune(ctx, args[1:], stdout, stderr, logger)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		logger.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		return 1
	}
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", defaultDir, "artifact store directory")
	return fs, dir
}

// parseFlags reports flag errors as usage errors. The flag package has
// already printed them.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runImport(ctx context.Context, args []string, stdout, stderr io.Writer, logger zerolog.Logger) error {
	fs, dir := newFlagSet("import", stderr)
	format := fs.String("format", "", "manifest format (yaml or json), inferred from the extension when empty")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "import: at least one manifest file is required")
		return errUsage
	}

	store, err := artifacts.NewStore(*dir)
	if err != nil {
		return err
	}

	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		m, err := artifacts.ParseManifest(data, *format, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		meta, err := artifacts.Import(ctx, store, m, path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Info().
			Str("name", meta.Name).
			Int("version", meta.Version).
			Int64("size_bytes", meta.SizeBytes).
			Str("source", path).
			Msg("Artifact imported")
		fmt.Fprintf(stdout, "%s v%d\n", meta.Name, meta.Version)
	}
	return nil
}

func runList(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, dir := newFlagSet("list", stderr)
	asJSON := fs.Bool("json", false, "print metadata as JSON")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	store, err := artifacts.NewStore(*dir)
	if err != nil {
		return err
	}
	metas, err := store.List(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(metas)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSAVED\tSIZE\tSOURCE")
	for i := range metas {
		m := &metas[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", m.Name, m.Version, m.SavedAt.Format(time.RFC3339), m.SizeBytes, m.Source)
	}
	return tw.Flush()
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func runPrune(ctx context.Context, args []string, stdout, stderr io.Writer, logger zerolog.Logger) error {
	fs, dir := newFlagSet("prune", stderr)
	keep := fs.Int("keep", defaultKeep, "versions to keep per artifact")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *keep < 1 {
		fmt.Fprintln(stderr, "prune: -keep must be at least 1")
		return errUsage
	}

	store, err := artifacts.NewStore(*dir)
	if err != nil {
		return err
	}

	names := fs.Args()
	if len(names) == 0 {
		metas, err := store.List(ctx)
		if err != nil {
			return err
		}
		for i := range metas {
			names = append(names, metas[i].Name)
		}
	}

	total := 0
	for _, name := range names {
		n, err := store.Prune(ctx, name, *keep)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info().Str("name", name).Int("removed", n).Int("keep", *keep).Msg("Pruned artifact versions")
		}
		total += n
	}
	fmt.Fprintf(stdout, "removed %d file(s)\n", total)
	return nil
}
