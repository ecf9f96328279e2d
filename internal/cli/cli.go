// Package cli wires the cobra commands that drive the documentation
// server. The root command serves; subcommands list documents and print
// version information.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/docview/docview/internal/adapters/changewatch"
	"github.com/docview/docview/internal/adapters/composer"
	"github.com/docview/docview/internal/adapters/filewatcher"
	"github.com/docview/docview/internal/adapters/index"
	"github.com/docview/docview/internal/adapters/markdown"
	"github.com/docview/docview/internal/config"
	"github.com/docview/docview/internal/domain/usecases"
	httpserver "github.com/docview/docview/internal/infrastructure/http"
	"github.com/docview/docview/internal/netcheck"
)

var (
	v       = viper.New()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "docview [path]",
	Short: "Preview a directory of markdown documentation in the browser",
	Long: `Docview serves a directory of markdown files as a styled documentation
site with sidebar navigation, syntax highlighting, PlantUML diagrams,
and live reload on file changes.

The path may be a directory, or a single markdown file whose parent
directory is then served with that file as the start page. Without a
path the current directory is served.

Examples:
  docview                      Serve the current directory
  docview ./docs               Serve a specific directory
  docview ./docs/INDEX.md      Serve ./docs starting at INDEX.md
  docview -p 3000 ./docs       Serve on port 3000
  docview list ./docs          Show the navigation tree`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.IntP("port", "p", 8000, "port to serve on")
	flags.String("host", "", "host to bind, empty means all interfaces")
	flags.Bool("watch-log", false, "log document change events while serving")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&cfgFile, "config", "", "config file (default docview.yml in the current directory)")
	persistent.String("exclude", config.DefaultExclude, "comma-separated names hidden from navigation")
	persistent.String("default-file", "README.md", "document served for the root path")
	persistent.Bool("verbose", false, "debug-level logging")
	persistent.Bool("log-json", false, "JSON log output")

	v.BindPFlag("port", flags.Lookup("port"))
	v.BindPFlag("host", flags.Lookup("host"))
	v.BindPFlag("watch-log", flags.Lookup("watch-log"))
	v.BindPFlag("exclude", persistent.Lookup("exclude"))
	v.BindPFlag("default-file", persistent.Lookup("default-file"))
	v.BindPFlag("verbose", persistent.Lookup("verbose"))
	v.BindPFlag("log-json", persistent.Lookup("log-json"))

	config.SetDefaults(v)
	config.BindEnv(v)
}

// initConfig reads the optional config file. A missing file is not an
// error; flags and environment still apply.
func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("docview")
	}

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, argPath(args))
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if !config.HasDocuments(cfg.Root) {
		log.Warn("no documents in root, the directory listing will be served instead", "root", cfg.Root)
	}

	ln, port, err := listen(cfg, log)
	if err != nil {
		return err
	}

	srv, err := buildServer(cfg, log)
	if err != nil {
		ln.Close()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving documentation",
		"root", cfg.Root,
		"project", cfg.ProjectName,
		"excluding", cfg.ExcludeSummary(),
		"url", config.BrowseURL(cfg.Host, port),
		"default", cfg.DefaultFile,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, ln)
	})
	if cfg.WatchLog {
		g.Go(func() error {
			return watchChanges(gctx, cfg.Root, log)
		})
	}
	return g.Wait()
}

// buildServer assembles the document pipeline behind the HTTP server.
func buildServer(cfg *config.Config, log *slog.Logger) (*httpserver.Server, error) {
	idx := index.New(cfg.Root, cfg.DefaultFile, cfg.Exclude)

	comp, err := composer.New(cfg.ProjectName, cfg.DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("building composer: %w", err)
	}

	view := usecases.NewViewUseCase(idx, idx, markdown.New(), comp, cfg.DefaultFile)
	check := usecases.NewCheckUseCase(changewatch.New(cfg.Root), cfg.DefaultFile)

	return httpserver.NewServer(view, check, cfg.Root, cfg.DefaultFile, cfg.Addr(), log), nil
}

// listen binds the requested address. When the port is taken it probes
// upward for a free one: interactive sessions are asked first, anything
// else falls back automatically.
func listen(cfg *config.Config, log *slog.Logger) (net.Listener, int, error) {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err == nil {
		return ln, boundPort(ln), nil
	}

	log.Warn("port is already in use", "port", cfg.Port)

	alt, altErr := netcheck.FindAvailable(cfg.Host, cfg.Port+1, netcheck.MaxAttempts)
	if altErr != nil {
		return nil, 0, fmt.Errorf("binding %s: %w", cfg.Addr(), err)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if !confirmAlternate(cfg.Port, alt) {
			return nil, 0, fmt.Errorf("port %d unavailable", cfg.Port)
		}
	} else {
		log.Warn("falling back to alternate port", "port", alt)
	}

	ln, err = net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(alt)))
	if err != nil {
		return nil, 0, fmt.Errorf("binding alternate port %d: %w", alt, err)
	}
	return ln, alt, nil
}

func boundPort(ln net.Listener) int {
	return ln.Addr().(*net.TCPAddr).Port
}

func confirmAlternate(requested, alt int) bool {
	fmt.Fprintf(os.Stderr, "Port %d is in use. Serve on %d instead? [Y/n] ", requested, alt)

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}

// watchChanges logs document events until the context ends. It feeds no
// server state; reloads stay driven by client polling.
func watchChanges(ctx context.Context, root string, log *slog.Logger) error {
	watcher, err := filewatcher.New(log)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, root)
	if err != nil {
		return err
	}

	for event := range events {
		log.Info("document changed", "op", event.Operation.String(), "path", event.Path)
	}
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func argPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
