// Command lrcembed embeds sidecar .lrc lyric files into the matching
// audio files of a music library.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lrcembed/lrcembed"
)

type cliOptions struct {
	directory string
	skip      bool
	reduce    bool
	recursive bool
	dryRun    bool
	jobs      int
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "lrcembed",
		Short: "Embed .lrc lyric files into audio file metadata",
		Long: `lrcembed scans a directory for audio files with a sidecar .lrc file
and embeds the lyric text into each file's native metadata field:
FLAC Vorbis comments, MP3 ID3v2 USLT frames, and M4A lyric atoms.

Audio data is never modified and failed sidecars are renamed to
.lrc.failed instead of being deleted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.directory, "directory", "d", "", "directory to scan (required)")
	cmd.Flags().BoolVarP(&opts.skip, "skip", "s", false, "skip files that already have embedded lyrics")
	cmd.Flags().BoolVarP(&opts.reduce, "reduce", "r", false, "delete .lrc files after successful embedding")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "R", false, "scan subdirectories")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would be embedded without writing")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "number of files processed in parallel")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func run(parent context.Context, opts *cliOptions) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	info, err := os.Stat(opts.directory)
	if err != nil {
		return fmt.Errorf("directory %s: %w", opts.directory, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", opts.directory)
	}

	files, err := collectAudioFiles(opts.directory, opts.recursive)
	if err != nil {
		return fmt.Errorf("scan %s: %w", opts.directory, err)
	}
	if len(files) == 0 {
		fmt.Println("no audio files found")
		return nil
	}

	log.Debug("scan complete",
		zap.String("directory", opts.directory),
		zap.Int("files", len(files)))

	proc := lrcembed.NewProcessor(lrcembed.WithLogger(log))
	policy := lrcembed.Policy{
		SkipIfPresent: opts.skip,
		DryRun:        opts.dryRun,
		DeleteLRC:     opts.reduce && !opts.dryRun,
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("embedding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var stats lrcembed.Stats
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for _, path := range files {
		path := path
		g.Go(func() error {
			// A cancelled context fails remaining files fast; the pool
			// itself never aborts on per-file errors.
			payload, err := lrcembed.LoadLRC(path)
			var res lrcembed.Result
			if err != nil {
				res = lrcembed.Result{Path: path, Outcome: lrcembed.OutcomeFailed, Err: err}
			} else {
				res = proc.Process(ctx, path, payload, policy)
			}
			stats.Record(res)
			bar.Add(1)
			return nil
		})
	}
	g.Wait()
	bar.Finish()

	printSummary(&stats, opts.dryRun)

	if n := stats.Failed(); n > 0 {
		return fmt.Errorf("%d file(s) failed", n)
	}
	return nil
}

// newLogger builds a console logger writing to stderr so it does not
// interleave with the summary on stdout.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

// collectAudioFiles gathers supported audio files under root, sorted for
// deterministic processing order.
func collectAudioFiles(root string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if lrcembed.DetectFormat(path) != lrcembed.FormatUnknown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func printSummary(stats *lrcembed.Stats, dryRun bool) {
	verb := "embedded"
	if dryRun {
		verb = "would embed"
	}

	fmt.Printf("\n%s: %d  skipped: %d  failed: %d  (%.0f%% of attempts succeeded)\n",
		verb, stats.Embedded(), stats.Skipped(), stats.Failed(), stats.SuccessRate()*100)

	if failed := stats.FailedPaths(); len(failed) > 0 {
		fmt.Println("\nfailed files:")
		for _, path := range failed {
			fmt.Printf("  %s\n", path)
		}
	}
}
