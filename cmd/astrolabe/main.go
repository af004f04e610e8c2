package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/astrolabe-dev/astrolabe/internal/batch"
	"github.com/astrolabe-dev/astrolabe/internal/config"
	"github.com/astrolabe-dev/astrolabe/internal/debug"
	"github.com/astrolabe-dev/astrolabe/internal/lang"
	"github.com/astrolabe-dev/astrolabe/internal/mcp"
	"github.com/astrolabe-dev/astrolabe/internal/parser"
	"github.com/astrolabe-dev/astrolabe/internal/report"
	"github.com/astrolabe-dev/astrolabe/internal/version"
	"github.com/astrolabe-dev/astrolabe/internal/watch"
)

func main() {
	app := &cli.App{
		Name:                   "astrolabe",
		Usage:                  "Language-agnostic code-quality metrics from syntax trees",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml)",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			parseCommand(),
			watchCommand(),
			serveCommand(),
			languagesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Workers = workers
	}
	return cfg, nil
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze source files and report quality metrics",
		ArgsUsage: "<files, directories, or globs>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "functions",
				Usage: "Include the per-function breakdown in text output",
			},
			&cli.BoolFlag{
				Name:  "suggestions",
				Usage: "Include fix suggestions under each issue",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Only analyze files matching glob patterns",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Skip files matching glob patterns",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent workers (0 = one per CPU)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no input files (try: astrolabe analyze main.go)")
			}
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}

			runner := batch.NewRunner(cfg)
			reports, runErr := runner.Run(c.Context, c.Args().Slice())

			formatter := report.NewFormatter(report.FormatterOptions{
				Format:      c.String("format"),
				ShowUnits:   c.Bool("functions"),
				ShowDetails: c.Bool("suggestions"),
			})
			for i, rep := range reports {
				out, err := formatter.Format(rep.Report)
				if err != nil {
					return err
				}
				if i > 0 && c.String("format") != "json" {
					fmt.Println()
				}
				fmt.Println(out)
			}

			if runErr != nil {
				return runErr
			}
			if len(reports) == 0 {
				return fmt.Errorf("no analyzable files found")
			}
			return nil
		},
	}
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a file and print its syntax tree",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Override language detection",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("parse takes exactly one file")
			}
			path := c.Args().First()

			l, err := resolveLanguage(path, c.String("language"))
			if err != nil {
				return err
			}

			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			ast, err := parser.NewTreeSitterParser().PrintAST(l, path, source)
			if err != nil {
				return err
			}
			fmt.Println(ast)
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch files or directories and re-analyze on change",
		ArgsUsage: "<files or directories>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text or json",
				Value:   "text",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no paths to watch")
			}
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}

			formatter := report.NewFormatter(report.FormatterOptions{Format: c.String("format")})
			runner := batch.NewRunner(cfg)
			watcher, err := watch.New(cfg, runner,
				func(rep *batch.FileReport) {
					if out, err := formatter.Format(rep.Report); err == nil {
						fmt.Println(out)
					}
				},
				func(path string, err error) {
					fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				})
			if err != nil {
				return err
			}

			for _, path := range c.Args().Slice() {
				if err := watcher.Add(path); err != nil {
					return fmt.Errorf("cannot watch %s: %w", path, err)
				}
			}
			watcher.Start()
			fmt.Fprintf(os.Stderr, "watching %d paths, ctrl-c to stop\n", c.NArg())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return watcher.Stop()
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the analyzer to host applications over MCP stdio",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfigWithOverrides(c)
			if err != nil {
				return err
			}
			debug.SetMCPMode(true)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return mcp.NewServer(cfg).Start(ctx)
		},
	}
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List supported languages",
		Action: func(c *cli.Context) error {
			for _, l := range lang.All {
				capability := "parse"
				if l.Analyzable() {
					capability = "parse, analyze"
				}
				fmt.Printf("%-12s %s\n", l, capability)
			}
			return nil
		},
	}
}

// resolveLanguage picks the language from an explicit flag or the file
// extension
func resolveLanguage(path, override string) (lang.Language, error) {
	if override != "" {
		return lang.Parse(override)
	}
	l, ok := lang.FromPath(path)
	if !ok {
		return "", fmt.Errorf("cannot infer language from extension %q (use --language)", filepath.Ext(path))
	}
	return l, nil
}
