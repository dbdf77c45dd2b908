package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Sternrassler/issue-board/internal/config"
	"github.com/Sternrassler/issue-board/pkg/client"
	"github.com/Sternrassler/issue-board/pkg/issues"
	"github.com/Sternrassler/issue-board/pkg/logging"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app holds what every subcommand shares once the root has run.
type app struct {
	configPath string
	logLevel   string
	owner      string

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "issue-board",
		Short: "List and page through open GitHub issues",
		Long: `issue-board fetches the open issues of a GitHub account with a single
search request and shows them a page at a time: printed, in an interactive
browser, or served as a web page.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	flags.StringVar(&a.owner, "owner", "", "account whose open issues are listed")

	root.AddCommand(
		newListCommand(a),
		newBrowseCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads the configuration, applies the flags and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = logging.LogLevel(a.logLevel)
	}
	if a.owner != "" {
		cfg.Issues.Owner = a.owner
	}

	cfg.Logging.Output = cmd.ErrOrStderr()
	if !cfg.Logging.Pretty {
		cfg.Logging.Pretty = isTerminal(cfg.Logging.Output)
	}

	a.cfg = cfg
	a.logger = logging.Setup(cfg.Logging).With().Str("component", "issue-board").Logger()
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// connectRedis returns nil when no Redis is configured.
func (a *app) connectRedis(ctx context.Context) (*redis.Client, error) {
	if a.cfg.Redis.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: a.cfg.Redis.Addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", a.cfg.Redis.Addr, err)
	}
	a.logger.Info().Str("addr", a.cfg.Redis.Addr).Msg("Connected to Redis")
	return rdb, nil
}

// newLister builds the lister. The returned close func releases Redis.
func (a *app) newLister(ctx context.Context) (*issues.Lister, *redis.Client, func(), error) {
	rdb, err := a.connectRedis(ctx)
	if err != nil {
		return nil, nil, func() {}, err
	}
	closeFn := func() {
		if rdb != nil {
			rdb.Close()
		}
	}

	cc := a.cfg.ClientConfig()
	cc.Redis = rdb
	c, err := client.New(cc)
	if err != nil {
		closeFn()
		return nil, nil, func() {}, fmt.Errorf("create client: %w", err)
	}

	lister, err := issues.NewLister(c, a.cfg.Issues)
	if err != nil {
		closeFn()
		return nil, nil, func() {}, fmt.Errorf("create lister: %w", err)
	}
	return lister, rdb, closeFn, nil
}

// boardTitle names the listed account.
func (a *app) boardTitle() string {
	return fmt.Sprintf("Open issues of %s", a.cfg.Issues.Owner)
}

// issueLister is satisfied by *issues.Lister.
type issueLister interface {
	List(ctx context.Context, r issues.Renderer) issues.Result
}

// collect lists through l and returns the summaries it rendered.
func collect(ctx context.Context, l issueLister) ([]issues.Summary, issues.Result) {
	var loaded []issues.Summary
	res := l.List(ctx, issues.RendererFunc(func(_ context.Context, s []issues.Summary) error {
		loaded = append(loaded, s...)
		return nil
	}))
	return loaded, res
}
