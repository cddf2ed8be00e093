package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tinfer/infer"
	"github.com/gnolang/tinfer/internal/cache"
	"github.com/gnolang/tinfer/internal/report"
	"github.com/gnolang/tinfer/internal/session"
	tt "github.com/gnolang/tinfer/internal/types"
)

var (
	inferJsonOutput bool
	outPath         string
	showProgress    bool
	watchTraces     bool
	cacheDir        string
)

var inferCmd = &cobra.Command{
	Use:   "infer [traces...]",
	Short: "Infer invariants from YAML trace files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide trace file paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		cx, err := infer.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		var c *cache.Cache
		if cacheDir != "" {
			if c, err = cache.New(cacheDir, 0); err != nil {
				logger.Fatal("Failed to open cache", zap.Error(err))
			}
		}

		reports, err := runInfer(ctx, cx, args, progressWriter(), c)
		if err != nil {
			logger.Error("Error inferring invariants", zap.Error(err))
			os.Exit(1)
		}

		if err := printReports(os.Stdout, reports, inferJsonOutput, outPath); err != nil {
			logger.Error("Error writing reports", zap.Error(err))
			os.Exit(1)
		}

		if watchTraces {
			if err := runWatch(cx, args); err != nil {
				logger.Error("Error watching traces", zap.Error(err))
				os.Exit(1)
			}
		}
	},
}

func init() {
	inferCmd.Flags().BoolVar(&inferJsonOutput, "json", false, "Output reports in JSON format")
	inferCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	inferCmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar on stderr")
	inferCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Reuse reports of unchanged traces from this directory")
	inferCmd.Flags().BoolVarP(&watchTraces, "watch", "w", false, "Re-run whenever a trace file is written")
}

func progressWriter() io.Writer {
	if !showProgress || inferJsonOutput && outPath == "" {
		return nil
	}
	return os.Stderr
}

// runInfer loads every trace and runs its points. Traces found in c, when
// c is set, are not run again. With a non-nil progress writer, a bar over
// the points is drawn on it.
func runInfer(ctx context.Context, cx *session.Session, paths []string, progress io.Writer, c *cache.Cache) ([]tt.PointReport, error) {
	type job struct {
		path string
		key  string
		n    int
	}

	var (
		inputs []*infer.Input
		jobs   []job
	)
	byPath := make(map[string][]tt.PointReport, len(paths))
	for _, path := range paths {
		var key string
		if c != nil {
			k, err := cache.Key(path, cx.Config)
			if err != nil {
				return nil, err
			}
			if reports, ok := c.Get(path, k); ok {
				logger.Debug("using cached reports", zap.String("path", path))
				byPath[path] = reports
				continue
			}
			key = k
		}

		in, err := infer.LoadFiles(cx, []string{path})
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in...)
		jobs = append(jobs, job{path: path, key: key, n: len(in)})
	}

	var onDone func(string)
	if progress != nil && len(inputs) > 0 {
		bar := progressbar.NewOptions(len(inputs),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("points"),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
		onDone = func(string) { _ = bar.Add(1) }
		defer fmt.Fprintln(progress)
	}

	fresh, err := infer.Run(ctx, cx, inputs, onDone)
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		byPath[j.path], fresh = fresh[:j.n], fresh[j.n:]
		if c != nil {
			if err := c.Set(j.path, j.key, byPath[j.path]); err != nil {
				logger.Warn("Error writing cache", zap.String("path", j.path), zap.Error(err))
			}
		}
	}

	var reports []tt.PointReport
	for _, path := range paths {
		reports = append(reports, byPath[path]...)
	}
	logger.Debug("inference done",
		zap.String("run", cx.ID.String()),
		zap.Int("points", len(reports)),
		zap.Int("cached", len(paths)-len(jobs)),
	)
	return reports, nil
}

func printReports(w io.Writer, reports []tt.PointReport, isJson bool, jsonOutput string) error {
	if !isJson {
		_, err := fmt.Fprint(w, report.Text(reports))
		return err
	}
	if jsonOutput == "" {
		return report.WriteJSON(w, reports)
	}
	return report.WriteJSONFile(jsonOutput, reports)
}

// runWatch re-runs every written trace until interrupted.
func runWatch(cx *session.Session, paths []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := infer.NewWatcher(cx, func(path string, reports []tt.PointReport, err error) {
		if err != nil {
			logger.Error("Error re-running trace", zap.String("path", path), zap.Error(err))
			return
		}
		if err := printReports(os.Stdout, reports, inferJsonOutput, outPath); err != nil {
			logger.Error("Error writing reports", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(paths...); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %d trace file(s), press Ctrl+C to stop\n", len(paths))
	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
