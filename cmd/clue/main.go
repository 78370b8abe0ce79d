package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/clue/internal/cliconfig"
	"github.com/bft-labs/clue/internal/monitor"
	"github.com/bft-labs/clue/pkg/clue"
	"github.com/bft-labs/clue/pkg/log"
)

const longHelp = `
Trigger clues on a Clue server and check that it is reachable.

Settings come from $HOME/.clue/config.toml (or --config), then CLUE_*
environment variables, then flags; later sources win.

TLS certificates of the server are not verified.`

var exampleUsage = strings.TrimSpace(`
  clue --host 192.168.1.20 --port 8443 ping
  clue --host clue.example.com exec front-door
  clue watch --interval 10s
`)

// errUnreachable makes `clue ping` exit with status 2.
var errUnreachable = errors.New("unreachable")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return clue.Version
}

// app carries state shared between the root command and its subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
	client  *clue.Client
}

func newApp() *app {
	return &app{
		cfg: cliconfig.DefaultConfig(),
		log: cliconfig.Logger("info"),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "clue",
		Short:             "Trigger clues on a Clue server",
		Long:              strings.TrimSpace(longHelp),
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.clue/config.toml)")
	pf.StringVar(&a.cfg.Host, "host", a.cfg.Host, "Clue server IP address or hostname, without scheme or port")
	pf.IntVar(&a.cfg.Port, "port", a.cfg.Port, "Clue server port (values <= 0 are only accepted here, not from the config file or CLUE_PORT)")
	pf.DurationVar(&a.cfg.PingTimeout, "ping-timeout", a.cfg.PingTimeout, "TCP connect timeout for ping")
	pf.DurationVar(&a.cfg.HTTPTimeout, "http-timeout", a.cfg.HTTPTimeout, "timeout for trigger requests (0: transport default)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(a.pingCmd(), a.execCmd(), a.watchCmd())
	return root
}

func main() {
	a := newApp()
	if err := a.rootCmd().ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, errUnreachable) {
			os.Exit(2)
		}
		a.log.Error().Err(err).Msg("clue")
		os.Exit(1)
	}
}

// setup resolves configuration (defaults < file < env < flags) and builds the client.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	a.cfgPath = cfgFile

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return err
	}

	a.log = cliconfig.Logger(a.cfg.LogLevel)

	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.log.Debug().Interface("config", a.cfg).Msg("configuration")

	client, err := clue.New(a.cfg.Host, a.cfg.Port,
		clue.WithLogger(log.NewZerologAdapterWithLogger(a.log)),
		clue.WithPingTimeout(a.cfg.PingTimeout),
		clue.WithHTTPTimeout(a.cfg.HTTPTimeout),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = client
	return nil
}

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Print the TCP connect latency to the server in milliseconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms := a.client.Ping(cmd.Context())
			if ms == clue.Unreachable {
				fmt.Fprintln(cmd.OutOrStdout(), "unreachable")
				return errUnreachable
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", ms)
			return nil
		},
	}
}

func (a *app) execCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <clue>",
		Short: "Trigger a clue",
		Long: strings.TrimSpace(`
Trigger a clue with a POST to https://{host}:{port}/api/clue/{clue}.

By default the command waits for the server and fails on any non-2xx answer.
With --async it returns without waiting; the request runs in the background
and is dropped if the process exits first.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.client.Execute(cmd.Context(), name, a.cfg.Async); err != nil {
				return fmt.Errorf("execute %s: %w", name, err)
			}
			a.log.Info().Str("clue", name).Bool("async", a.cfg.Async).Msg("clue triggered")
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.cfg.Async, "async", a.cfg.Async, "do not wait for the server")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Ping the server periodically, following host/port changes in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			m := monitor.New(a.client, monitor.Config{
				ConfigPath: a.cfgPath,
				Interval:   a.cfg.Interval,
			}, log.NewZerologAdapterWithLogger(a.log))

			if err := m.Run(ctx); err != nil {
				return err
			}
			a.log.Info().Msg("received signal, stopping...")
			return nil
		},
	}
	cmd.Flags().DurationVar(&a.cfg.Interval, "interval", a.cfg.Interval, "time between pings")
	return cmd
}
