package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/bubbletea"
	"github.com/diffmark/diffmark/chroma"
	"github.com/diffmark/diffmark/fs"
	"github.com/diffmark/diffmark/genai"
	"github.com/diffmark/diffmark/gitdiff"
	"github.com/diffmark/diffmark/grid"
	"github.com/diffmark/diffmark/jsonl"
	dv "github.com/diffmark/diffmark/lipgloss"
	"github.com/diffmark/diffmark/logutil"
	"github.com/diffmark/diffmark/yaml"
)

// Build information. Populated at build-time via -ldflags; falls back to
// runtime/debug.BuildInfo for `go install module@version` builds.
var version = "dev"

func build() string {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
		}
	}
	return v
}

type flags struct {
	ConfigPath string
	DraftsPath string
	Context    int
	Theme      string
	Model      string
	APIKey     string
	LogLevel   string
	LogFile    string
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		f         flags
	)

	app := &cli.Command{
		Name:      "diffmark",
		Usage:     "Review a diff in the terminal and attach draft comments",
		UsageText: "git diff | diffmark [options] [patch-file]",
		Description: `diffmark renders a unified diff as an interactive table. Drag over the
line-number gutter (or use v/enter) to select a range and attach a draft
comment. Drafts persist between sessions as JSON lines.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("DIFFMARK_CONFIG"),
				Value:       fs.DefaultConfigPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "drafts",
				Usage:       "path to the drafts file",
				Sources:     cli.EnvVars("DIFFMARK_DRAFTS"),
				Destination: &f.DraftsPath,
			},
			&cli.IntFlag{
				Name:        "context",
				Usage:       "unchanged lines kept visible around each change",
				Destination: &f.Context,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "color theme (default, light)",
				Sources:     cli.EnvVars("DIFFMARK_THEME"),
				Destination: &f.Theme,
			},
			&cli.StringFlag{
				Name:        "model",
				Usage:       "model used for comment suggestions",
				Sources:     cli.EnvVars("DIFFMARK_MODEL"),
				Destination: &f.Model,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Usage:       "API key for comment suggestions",
				Sources:     cli.EnvVars("GEMINI_API_KEY"),
				Destination: &f.APIKey,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("DIFFMARK_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("DIFFMARK_LOG_FILE"),
				Destination: &f.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// The TUI owns the terminal, so logs go to a file.
			logFile := f.LogFile
			if logFile == "" {
				logFile = fs.DefaultLogPath()
			}
			logger, closer, err := logutil.New(f.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := yaml.Load(f.ConfigPath)
			if err != nil {
				return err
			}
			applyFlags(cfg, f)

			store := jsonl.NewStore(cfg.DraftsPath)
			theme := dv.ByName(cfg.Theme)

			tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
			if err != nil {
				return fmt.Errorf("setup tokenizer: %w", err)
			}

			var suggester diffmark.Suggester
			if f.APIKey != "" {
				s, err := genai.NewSuggester(ctx, f.APIKey, cfg.Model)
				if err != nil {
					log.Warn().Err(err).Msg("suggestions disabled")
				} else {
					suggester = s
				}
			}

			viewerOpts := []bubbletea.Option{
				bubbletea.WithTheme(theme),
				bubbletea.WithTokenizer(tokenizer),
				bubbletea.WithLanguageDetector(chroma.NewDetector()),
				bubbletea.WithStore(store),
				bubbletea.WithGridOptions(grid.Options{
					Context:     cfg.ContextLines,
					MinCollapse: 2,
				}),
			}
			if suggester != nil {
				viewerOpts = append(viewerOpts, bubbletea.WithSuggester(suggester))
			}

			app := &App{
				Input:    os.Stdin,
				FilePath: c.Args().First(),
				Parser:   gitdiff.NewParser(),
				Store:    store,
				Viewer:   bubbletea.NewViewer(viewerOpts...),
				Logger:   log.Logger,
			}

			final, err := app.Run(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("drafts", len(final)).Msg("review finished")
			return nil
		},
	}

	err := app.Run(ctx, os.Args)
	if logCloser != nil {
		logCloser()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override file-based configuration.
func applyFlags(cfg *yaml.Config, f flags) {
	if f.DraftsPath != "" {
		cfg.DraftsPath = f.DraftsPath
	}
	if f.Context > 0 {
		cfg.ContextLines = f.Context
	}
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	if f.Model != "" {
		cfg.Model = f.Model
	}
}
