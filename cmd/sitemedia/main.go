// Command sitemedia prepares media for the portfolio site. It writes the
// images.json gallery manifest and batch converts MKV videos to MP4.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/sitemedia/internal/config"
	"github.com/backmassage/sitemedia/internal/logging"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps the outcome to an exit code: 0 when the
// command completed, 1 on a config error or an aborted run.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "sitemedia: %v\n", err)
		return 1
	}
	return 0
}

// app carries the persistent flag values and the loaded config between the
// root pre-run hook and the subcommands.
type app struct {
	configPath string
	logFile    string
	verbose    bool
	color      config.ColorFlags

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "sitemedia",
		Short:         "Gallery manifest builder and MKV to MP4 batch converter",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultPath+")")
	pf.StringVar(&a.logFile, "log", "", "Append plain-text logs to this file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug output")
	config.BindColorFlags(pf, &a.color)

	root.AddCommand(
		newManifestCmd(a),
		newTranscodeCmd(a),
		newCheckCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// load reads the config file and environment, then applies persistent flags
// that were set explicitly.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	a.color.Apply(&cfg)
	a.cfg = cfg
	return nil
}

// logger validates the final config (after command flags are applied) and
// opens the logger. Callers must Close it.
func (a *app) logger() (*logging.Logger, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return logging.NewLogger(&a.cfg)
}
