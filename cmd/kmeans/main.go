// Command kmeans clusters the 2-D points of a data file with Lloyd's
// algorithm and writes each point's cluster label to a report file.
//
// Usage:
//
//	kmeans [flags] <data-file> <number-of-clusters>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/banshee-data/kmeans/internal/chart"
	"github.com/banshee-data/kmeans/internal/config"
	"github.com/banshee-data/kmeans/internal/db"
	"github.com/banshee-data/kmeans/internal/fsutil"
	"github.com/banshee-data/kmeans/internal/kmeans"
	"github.com/banshee-data/kmeans/internal/monitoring"
	"github.com/banshee-data/kmeans/internal/pointio"
	"github.com/banshee-data/kmeans/internal/prompt"
	"github.com/banshee-data/kmeans/internal/timeutil"
	"github.com/banshee-data/kmeans/internal/version"
)

const usageLine = "Usage: kmeans [flags] <data-file> <number-of-clusters>"

var (
	fsys  fsutil.FileSystem = fsutil.OSFileSystem{}
	clock timeutil.Clock    = timeutil.RealClock{}

	// isTerminal reports whether r is an interactive terminal.
	isTerminal = func(r io.Reader) bool {
		f, ok := r.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// parseCSVIntSlice parses a comma-separated list of ints
func parseCSVIntSlice(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid int '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseClusterCount accepts only a non-negative decimal integer.
func parseClusterCount(s string) (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || k < 0 {
		return 0, fmt.Errorf("<number-of-clusters> must be a non-negative integer, got %q", s)
	}
	return k, nil
}

// flagConfig turns the flags the user actually set into a RunConfig overlay.
func flagConfig(fs *flag.FlagSet) (*config.RunConfig, error) {
	overlay := config.EmptyRunConfig()
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "seeds":
			var seeds []int
			if seeds, err = parseCSVIntSlice(v); err != nil {
				err = fmt.Errorf("-seeds: %w", err)
				return
			}
			overlay.SeedIndices = seeds
		case "random-seed":
			var seed int64
			if seed, err = strconv.ParseInt(v, 10, 64); err == nil {
				overlay.RandomSeed = &seed
			}
		case "max-points":
			var n int
			if n, err = strconv.Atoi(v); err == nil {
				overlay.MaxPoints = &n
			}
		case "out":
			overlay.OutputPath = &v
		case "plot":
			overlay.PlotPath = &v
		case "chart":
			overlay.ChartPath = &v
		case "db":
			overlay.DBPath = &v
		case "prompt":
			overlay.Prompt = &v
		case "debug":
			on := v == "true"
			overlay.Debug = &on
		}
	})
	if err != nil {
		return nil, err
	}
	if err := overlay.Validate(); err != nil {
		return nil, err
	}
	return overlay, nil
}

// seedProvider picks where the initial centroid indices come from.
func seedProvider(cfg *config.RunConfig, stdin io.Reader, stdout, stderr io.Writer) kmeans.SeedProvider {
	interactive := &prompt.Prompter{In: stdin, Out: stdout, Err: stderr}
	switch cfg.GetPrompt() {
	case config.PromptAlways:
		return interactive
	case config.PromptAuto:
		if cfg.SeedIndices == nil && isTerminal(stdin) {
			return interactive
		}
	}
	if len(cfg.SeedIndices) == 0 {
		return nil
	}
	return kmeans.FixedSeeds(cfg.SeedIndices)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)
	monitoring.SetLogger(logger.Printf)

	fs := flag.NewFlagSet("kmeans", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Path to a JSON run configuration (default "+config.DefaultConfigPath+" when present; flags override its values)")
	fs.String("seeds", "", "Comma-separated initial centroid point indices, e.g. 0,2 (skips the prompt)")
	fs.Int64("random-seed", 0, "Seed for random centroid selection (0 seeds from the clock)")
	fs.Int("max-points", 0, "Refuse data files with more points than this (0 means unlimited)")
	fs.String("out", pointio.DefaultReportPath, "Report output path")
	fs.String("plot", "", "Write a PNG scatter plot of the clusters to this path")
	fs.String("chart", "", "Write an interactive HTML scatter chart of the clusters to this path")
	fs.String("db", "", "Archive the finished run in this SQLite database")
	fs.String("prompt", config.PromptAuto, "Ask for initial centroid indices: auto (when stdin is a terminal), always or never")
	fs.Bool("debug", false, "Log every assignment round")
	listRuns := fs.Int("list-runs", 0, "List the N most recent runs archived in -db and exit")
	showVersion := fs.Bool("version", false, "Print version information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cfg := config.EmptyRunConfig()
	cfgPath := *configPath
	if cfgPath == "" {
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			cfgPath = config.DefaultConfigPath
		}
	}
	if cfgPath != "" {
		fileCfg, err := config.LoadRunConfig(cfgPath)
		if err != nil {
			logger.Printf("Failed to load config: %v", err)
			return 1
		}
		cfg.Merge(fileCfg)
	}
	overlay, err := flagConfig(fs)
	if err != nil {
		logger.Printf("Invalid flags: %v", err)
		return 2
	}
	cfg.Merge(overlay)
	monitoring.SetDebug(cfg.GetDebug())

	if *listRuns > 0 {
		if err := printRuns(cfg.GetDBPath(), *listRuns, stdout); err != nil {
			logger.Printf("Failed to list runs: %v", err)
			return 1
		}
		return 0
	}

	positional := fs.Args()
	switch {
	case len(positional) == 2:
		k, err := parseClusterCount(positional[1])
		if err != nil {
			fmt.Fprintln(stderr, err)
			fmt.Fprintln(stderr, usageLine)
			return 1
		}
		cfg.Clusters = &k
	case len(positional) == 1 && cfg.Clusters != nil:
	default:
		fmt.Fprintln(stderr, usageLine)
		return 1
	}
	dataPath := positional[0]

	if err := cluster(cfg, dataPath, stdin, stdout, stderr); err != nil {
		logger.Printf("kmeans: %v", err)
		return 1
	}
	return 0
}

// cluster runs one clustering job described by cfg and writes its outputs.
func cluster(cfg *config.RunConfig, dataPath string, stdin io.Reader, stdout, stderr io.Writer) error {
	start := clock.Now()

	points, err := pointio.LoadFile(fsys, dataPath, cfg.GetMaxPoints())
	if err != nil {
		return err
	}
	store := kmeans.NewPointStore(points)
	monitoring.Logf("loaded %d points from %s", store.Len(), dataPath)

	clusterer := kmeans.NewClusterer(kmeans.Params{
		K:        cfg.GetClusters(),
		Seeds:    seedProvider(cfg, stdin, stdout, stderr),
		RandSeed: cfg.GetRandomSeed(),
	})
	res, err := clusterer.Cluster(store)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.Diagnostic())

	labeled := res.LabeledPoints(store)
	if err := pointio.WriteReportFile(fsys, cfg.GetOutputPath(), labeled); err != nil {
		return err
	}

	summary := kmeans.Summarize(store, res)
	for _, c := range summary.Clusters {
		monitoring.Logf("cluster %d: size=%d centroid=%s inertia=%.4f mean_dist=%.4f std_dist=%.4f",
			c.Label, c.Size, c.Centroid, c.Inertia, c.MeanDistance, c.StdDistance)
	}
	monitoring.Logf("total inertia %.4f after %d rounds", summary.TotalInertia, res.Rounds)

	title := fmt.Sprintf("k-means: %s (k=%d)", filepath.Base(dataPath), len(res.Centroids))
	if path := cfg.GetPlotPath(); path != "" {
		if err := chart.WritePNG(fsys, path, title, labeled, res.Centroids); err != nil {
			return err
		}
		monitoring.Logf("wrote plot %s", path)
	}
	if path := cfg.GetChartPath(); path != "" {
		if err := chart.WriteHTML(fsys, path, title, labeled, res.Centroids); err != nil {
			return err
		}
		monitoring.Logf("wrote chart %s", path)
	}
	if path := cfg.GetDBPath(); path != "" {
		if err := archiveRun(path, dataPath, store, res, summary); err != nil {
			return err
		}
	}

	monitoring.Logf("finished in %v", clock.Since(start).Round(time.Millisecond))
	return nil
}

func archiveRun(dbPath, dataPath string, store *kmeans.PointStore, res *kmeans.Result, summary kmeans.Summary) error {
	archive, err := db.NewDBWithClock(dbPath, clock)
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}
	defer archive.Close()

	runID, err := archive.RecordRun(db.NewRunRecord(dataPath, store, res, summary))
	if err != nil {
		return fmt.Errorf("failed to archive run: %w", err)
	}
	monitoring.Logf("archived run %s in %s", runID, dbPath)
	return nil
}

func printRuns(dbPath string, limit int, w io.Writer) error {
	if dbPath == "" {
		return errors.New("-list-runs needs -db")
	}
	archive, err := db.NewDBWithClock(dbPath, clock)
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}
	defer archive.Close()

	runs, err := archive.Runs(limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSOURCE\tK\tPOINTS\tSTATE\tITERATIONS\tINERTIA")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%.4f\n",
			r.RunID, r.CreatedAt.Format(time.RFC3339), r.SourcePath, r.Clusters, r.Points,
			r.State, r.Iterations, r.TotalInertia)
	}
	return tw.Flush()
}
