package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/abhinavsaxena2308/codegen/internal/ai"
	"github.com/abhinavsaxena2308/codegen/internal/config"
	"github.com/abhinavsaxena2308/codegen/internal/db"
	"github.com/abhinavsaxena2308/codegen/internal/errors"
	"github.com/abhinavsaxena2308/codegen/internal/gen"
	"github.com/abhinavsaxena2308/codegen/internal/mcp"
	"github.com/abhinavsaxena2308/codegen/internal/preview"
	"github.com/abhinavsaxena2308/codegen/internal/store"
	"github.com/abhinavsaxena2308/codegen/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(baseDir string) *cli.App {
	app := &cli.App{
		Name:    "codegen",
		Usage:   "Prompt-to-component generation backend with sandboxed previews",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(baseDir),
			mcpCmd(baseDir),
			generateCmd(baseDir),
			renderCmd(),
			historyCmd(baseDir),
			languagesCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// runtime bundles the wired-up application for one command invocation.
type runtime struct {
	cfg      *config.Config
	svc      *gen.Service
	store    *store.Store
	database interface{ Close() error }
}

func (rt *runtime) close() {
	_ = rt.database.Close()
}

// setup opens the database, loads config, and wires the store and
// orchestrator rooted at baseDir.
func setup(baseDir string) (*runtime, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	st, err := store.New(database, filepath.Join(baseDir, "data"), cfg.HistoryLimit)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		svc:      gen.NewService(ai.New(cfg), st),
		store:    st,
		database: database,
	}, nil
}

// serveCmd creates the serve command (HTTP API).
func serveCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Bind address (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer rt.close()

			bind := rt.cfg.Bind
			if c.IsSet("bind") {
				bind = c.String("bind")
			}
			port := rt.cfg.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			srv := web.NewServer(rt.svc, rt.store, rt.cfg, Version, bind, port)
			return web.Run(srv)
		},
	}
}

// mcpCmd creates the mcp command (stdio MCP server).
func mcpCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio",
		Action: func(c *cli.Context) error {
			rt, err := setup(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer rt.close()

			return mcp.Run(rt.svc, rt.store, Version)
		},
	}
}

// generateCmd creates the generate command (one-shot pipeline run).
func generateCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate code for a prompt and print the record as JSON",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Value: "plain", Usage: "Target language/framework tag"},
			&cli.BoolFlag{Name: "code-only", Usage: "Print only the generated code"},
		},
		Action: func(c *cli.Context) error {
			prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if prompt == "" && stdinHasData() {
				var err error
				prompt, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if prompt == "" {
				return outputError(errors.NewInvalidRequest("prompt is required (argument or stdin)"))
			}

			rt, err := setup(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer rt.close()

			rec, err := rt.svc.Generate(context.Background(), prompt, c.String("language"))
			if err != nil {
				return outputError(err)
			}

			if c.Bool("code-only") {
				fmt.Println(rec.Code)
				return nil
			}
			return outputJSON(rec)
		},
	}
}

// renderCmd creates the render command (compile stdin code to a preview).
func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Compile code from stdin into a preview HTML document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Value: "plain", Usage: "Language/framework tag of the input"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("code must be piped via stdin"))
			}
			code, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			fmt.Println(preview.Render(code, c.String("language")))
			return nil
		},
	}
}

// historyCmd creates the history command.
func historyCmd(baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List the bounded generation history as JSON",
		Action: func(c *cli.Context) error {
			rt, err := setup(baseDir)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			defer rt.close()

			return outputJSON(rt.store.History())
		},
	}
}

// languagesCmd creates the languages command.
func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List recognized language tags",
		Action: func(c *cli.Context) error {
			return outputJSON(preview.Known())
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := err.(*errors.CodeGenError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
