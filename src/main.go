package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"lrcsolid/src/features/config"
	"lrcsolid/src/features/fetching"
	"lrcsolid/src/features/logging"
	"lrcsolid/src/features/scanning"
	"lrcsolid/src/infra/files"
	"lrcsolid/src/infra/lrclib"
	"lrcsolid/src/infra/tag"
)

func main() {
	var (
		configPath string
		recursive  bool
		override   bool
		silent     bool
		embed      bool
		watch      bool
		jobs       int
		baseURL    string
	)
	flag.StringVar(&configPath, "config", "", "path to an optional YAML config file")
	flag.BoolVar(&recursive, "r", false, "recursively process subdirectories")
	flag.BoolVar(&recursive, "recursive", false, "recursively process subdirectories")
	flag.BoolVar(&override, "o", false, "override existing lyrics files")
	flag.BoolVar(&override, "override", false, "override existing lyrics files")
	flag.BoolVar(&silent, "s", false, "suppress non-essential console output")
	flag.BoolVar(&silent, "silent", false, "suppress non-essential console output")
	flag.StringVar(&baseURL, "u", "", "URL for the lyrics database instance (e.g., self-hosted LRCLIB)")
	flag.StringVar(&baseURL, "url", "", "URL for the lyrics database instance (e.g., self-hosted LRCLIB)")
	flag.BoolVar(&embed, "embed", false, "also embed fetched lyrics into the audio file tags")
	flag.BoolVar(&watch, "watch", false, "keep watching the directory for new audio files")
	flag.IntVar(&jobs, "jobs", 0, "number of files to process in parallel")
	flag.Parse()

	// Load configuration
	cfgManager, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Flags that were set on the command line win over the config file.
	cfg := *cfgManager.Get()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r", "recursive":
			cfg.Recursive = recursive
		case "o", "override":
			cfg.Override = override
		case "s", "silent":
			cfg.Silent = silent
		case "u", "url":
			cfg.URL = baseURL
		case "embed":
			cfg.Embed = embed
		case "jobs":
			cfg.Jobs = jobs
		}
	})
	cfgManager.Update(&cfg)

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	root := flag.Arg(0)
	if root == "" {
		root = defaultMusicDir()
	}

	client := lrclib.NewClient(cfgManager.Get().URL)
	service := fetching.NewService(tag.NewReader(), client, files.NewWriter(), tag.NewEmbedder(), cfgManager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if watch {
		if err := service.Watch(ctx, root); err != nil {
			fatal(err)
		}
		return
	}

	summary, err := service.Run(ctx, root)
	if err != nil {
		fatal(err)
	}
	fmt.Println(summary.String())
}

// fatal reports a startup error and exits non-zero. Per-file failures never
// reach here; they are part of the summary.
func fatal(err error) {
	if errors.Is(err, scanning.ErrPathNotFound) {
		slog.Error("Path does not exist or is not a file or directory", "error", err)
	} else {
		slog.Error("Run failed", "error", err)
	}
	os.Exit(1)
}

// defaultMusicDir returns the platform's standard music directory.
func defaultMusicDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Music")
}
