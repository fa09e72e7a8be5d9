package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"os"
	"time"

	fks "github.com/joaquintides/perfect-set"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var buildOptions struct {
	lambda     uint
	configPath string
}

var cmdBuild = &cobra.Command{
	Use:   "build [flags] FILE...",
	Short: "Build a perfect-hash set from one or more key files",
	Long: `
build reads one newline-delimited key file per argument and builds an
independent fks.Set[string] from each, in parallel. It reports, per file,
the starting lambda, the bucket count, and the element count. The lambda
reported is the one the build started from, not a smaller one that a
retry may have succeeded at.

Exit status is 1 if any file failed to build.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd.Context(), args)
	},
}

func init() {
	cmdRoot.AddCommand(cmdBuild)

	f := cmdBuild.Flags()
	f.UintVar(&buildOptions.lambda, "lambda", 0, "load parameter (0 = use config/default)")
	f.StringVar(&buildOptions.configPath, "config", "", "path to a YAML build config")
}

func runBuild(ctx context.Context, files []string) error {
	cfg, err := loadConfig(buildOptions.configPath)
	if err != nil {
		return err
	}
	if buildOptions.lambda > 0 {
		cfg.Lambda = buildOptions.lambda
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	wg, _ := errgroup.WithContext(ctx)
	for _, file := range files {
		file := file
		wg.Go(func() error {
			return buildOne(file, cfg)
		})
	}
	return wg.Wait()
}

func buildOne(path string, cfg Config) error {
	keys, err := readLines(path)
	if err != nil {
		return err
	}

	hash := fks.NewStringHasher()
	start := time.Now()
	set, err := fks.Build(keys, hash,
		fks.WithLambda[string](cfg.Lambda),
		fks.WithMaxSecondaryWidth[string](cfg.MaxSecondaryWidth),
	)
	elapsed := time.Since(start)

	entry := log.WithFields(log.Fields{
		"file":     path,
		"keys":     len(keys),
		"lambda":   cfg.Lambda,
		"duration": elapsed,
	})

	if err != nil {
		switch {
		case stderrors.Is(err, fks.ErrDuplicateKey):
			entry.WithError(err).Error("build failed: duplicate key")
		case stderrors.Is(err, fks.ErrHashCollision):
			entry.WithError(err).Error("build failed: hash collision")
		case stderrors.Is(err, fks.ErrConstructionFailure):
			entry.WithError(err).Error("build failed: no lambda in the retry sequence was feasible")
		default:
			entry.WithError(err).Error("build failed")
		}
		return err
	}

	entry.WithFields(log.Fields{
		"buckets":  set.BucketCount(),
		"elements": set.Len(),
	}).Info("build succeeded")
	return nil
}

// readLines reads path as one key per line, skipping blank lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		keys = append(keys, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}
