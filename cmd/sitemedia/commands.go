package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/sitemedia/internal/check"
	"github.com/backmassage/sitemedia/internal/display"
)

var errCheckFailed = errors.New("system check failed")

func newCheckCmd(a *app) *cobra.Command {
	var ffmpegBin string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify ffmpeg and the libx264/aac encoders are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("ffmpeg") {
				a.cfg.FFmpegBin = ffmpegBin
			}
			log, err := a.logger()
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout())
			if !check.RunCheck(&a.cfg, log) {
				return errCheckFailed
			}
			log.Success("All checks passed")
			return nil
		},
	}
	cmd.Flags().StringVar(&ffmpegBin, "ffmpeg", "", "ffmpeg executable (name on PATH or full path)")
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(a.cfg)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "sitemedia %s (%s)\n", version, commit)
			return err
		},
	}
}
