package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/balsymbols/symbolindex/internal/config"
	"github.com/balsymbols/symbolindex/internal/display"
	"github.com/balsymbols/symbolindex/internal/logx"
	"github.com/balsymbols/symbolindex/internal/mcpserver"
	"github.com/balsymbols/symbolindex/internal/packages"
	"github.com/balsymbols/symbolindex/internal/query"
	"github.com/balsymbols/symbolindex/internal/symboldb"
	"github.com/balsymbols/symbolindex/internal/symbols"
	"github.com/balsymbols/symbolindex/internal/version"

	"github.com/urfave/cli/v2"
)

// env bundles the state every subcommand, "serve" included, needs: a Database
// loaded for the lifetime of this one process. There is no on-disk
// persistence between invocations — the MCP server is where the engine
// stays resident across a session; this CLI exists to discover/load and
// query in a single pass, useful for scripting and debugging.
type env struct {
	db      *symboldb.Database
	engine  *query.Engine
	manager *packages.Manager
	cfg     *config.Config
	log     *logx.Logger
}

func loadEnv(c *cli.Context) (*env, error) {
	root := c.String("root")
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", root, err)
		}
		root = abs
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if root != "" {
		cfg.Project.Root = root
	}
	cfg.LogLevel = c.String("log-level")

	log, err := logx.New(c.String("log-dir"), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	db := symboldb.New()
	manager := packages.NewManager(db)
	engine := query.NewEngine(db, cfg)

	e := &env{db: db, engine: engine, manager: manager, cfg: cfg, log: log}

	if packagesPath := c.String("packages"); packagesPath != "" {
		paths, err := e.resolvePackagePaths(packagesPath)
		if err != nil {
			return nil, err
		}
		if _, err := manager.LoadPackages(context.Background(), paths, c.Bool("force-reload")); err != nil {
			return nil, fmt.Errorf("load packages: %w", err)
		}
	} else if cfg.Project.Root != "" {
		if _, err := manager.AutoDiscover(context.Background(), cfg.Project.Root, cfg); err != nil {
			return nil, fmt.Errorf("auto-discover: %w", err)
		}
	}

	return e, nil
}

func (e *env) resolvePackagePaths(packagesPath string) ([]string, error) {
	info, err := os.Stat(packagesPath)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", packagesPath, err)
	}
	if !info.IsDir() {
		return []string{packagesPath}, nil
	}
	entries, err := os.ReadDir(packagesPath)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", packagesPath, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".app" {
			continue
		}
		paths = append(paths, filepath.Join(packagesPath, entry.Name()))
	}
	return paths, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	app := &cli.App{
		Name:    "balindexctl",
		Usage:   "Index and query BAL (AL) symbol packages",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Project root to auto-discover packages under (ignored if --packages is set)",
			},
			&cli.StringFlag{
				Name:  "packages",
				Usage: "Explicit .app file or directory of .app files to load instead of auto-discovery",
			},
			&cli.BoolFlag{
				Name:  "force-reload",
				Usage: "Reload packages even if their fingerprint is unchanged",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "debug, info, warn, or error",
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "Write logs to a file in this directory instead of stderr",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search loaded objects by name pattern",
				ArgsUsage: "<pattern>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Usage: "Restrict to one object type"},
					&cli.StringFlag{Name: "package", Usage: "Restrict to one loaded package"},
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
				},
				Action: searchCommand,
			},
			{
				Name:      "get",
				Usage:     "Print one object's definition",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "fields", Usage: "Include fields"},
					&cli.BoolFlag{Name: "keys", Usage: "Include keys"},
					&cli.BoolFlag{Name: "procedures", Usage: "Include procedures"},
				},
				Action: getCommand,
			},
			{
				Name:      "refs",
				Usage:     "Find references to a target object name",
				ArgsUsage: "<targetName>",
				Action:    refsCommand,
			},
			{
				Name:      "domain",
				Usage:     "List objects classified into a business domain",
				ArgsUsage: "<domain>",
				Action:    domainCommand,
			},
			{
				Name:      "tree",
				Usage:     "Print a Page's control tree or a Report/Query/XmlPort's data item tree",
				ArgsUsage: "<objectName>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "source", Usage: "Show each node's source field/table"},
				},
				Action: treeCommand,
			},
			{
				Name:  "stats",
				Usage: "Print counts of loaded objects by type",
				Action: func(c *cli.Context) error {
					e, err := loadEnv(c)
					if err != nil {
						return err
					}
					return printJSON(e.db.Stats())
				},
			},
			{
				Name:  "serve",
				Usage: "Start the MCP server over stdio",
				Action: func(c *cli.Context) error {
					e, err := loadEnv(c)
					if err != nil {
						return err
					}
					srv := mcpserver.New(e.db, e.manager, e.engine, e.cfg, e.log)

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()

					sigCh := make(chan os.Signal, 1)
					signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
					go func() {
						<-sigCh
						cancel()
					}()

					return srv.Run(ctx)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "balindexctl: %v\n", err)
		os.Exit(1)
	}
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: balindexctl search <pattern>")
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	input := query.SearchObjectsInput{Pattern: c.Args().First(), PackageFilter: c.String("package")}
	if raw := c.String("type"); raw != "" {
		t, ok := symbols.ParseObjectType(raw)
		if !ok {
			return fmt.Errorf("unknown object type %q", raw)
		}
		input.TypeFilter = t
		input.HasTypeFilter = true
	}

	results := e.engine.SearchObjects(input)
	if c.Bool("json") {
		return printJSON(results)
	}
	for _, r := range results {
		fmt.Printf("%s\t%s\t%s\n", r.Object.Type, r.Object.Name, r.Object.PackageName)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: balindexctl get <name>")
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	def, err := e.engine.GetObjectDefinition(query.ObjectRefInput{Name: c.Args().First()}, query.ObjectDefinitionOptions{
		IncludeFields:     c.Bool("fields"),
		IncludeKeys:       c.Bool("keys"),
		IncludeProcedures: c.Bool("procedures"),
	})
	if err != nil {
		return err
	}
	return printJSON(def)
}

func refsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: balindexctl refs <targetName>")
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	edges := e.engine.FindReferences(c.Args().First(), symboldb.FindReferencesOptions{})
	return printJSON(edges)
}

func treeCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: balindexctl tree <objectName>")
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	def, err := e.engine.GetObjectDefinition(query.ObjectRefInput{Name: c.Args().First()}, query.ObjectDefinitionOptions{})
	if err != nil {
		return err
	}

	formatter := display.NewTreeFormatter(display.FormatterOptions{ShowSourceField: c.Bool("source")})
	switch payload := def.Object.Payload.(type) {
	case symbols.PagePayload:
		fmt.Print(formatter.FormatControls(payload.Controls))
	case symbols.ReportPayload:
		fmt.Print(formatter.FormatDataItems(payload.DataItems))
	case symbols.QueryPayload:
		fmt.Print(formatter.FormatDataItems(payload.DataItems))
	case symbols.XmlPortPayload:
		fmt.Print(formatter.FormatDataItems(payload.DataItems))
	default:
		return fmt.Errorf("%s has no control or data item tree", def.Object.Name)
	}
	return nil
}

func domainCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: balindexctl domain <domain>")
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	objs := e.engine.SearchByDomain(c.Args().First(), symbols.Unknown, false)
	return printJSON(objs)
}
