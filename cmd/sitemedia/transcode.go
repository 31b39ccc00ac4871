package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/sitemedia/internal/display"
	"github.com/backmassage/sitemedia/internal/pipeline"
)

func newTranscodeCmd(a *app) *cobra.Command {
	var (
		dryRun    bool
		ffmpegBin string
	)
	cmd := &cobra.Command{
		Use:   "transcode [input_dir [output_dir]]",
		Short: "Convert every .mkv in a folder to .mp4 (H.264/AAC, faststart)",
		Long: `Converts each .mkv file in input_dir (default "videos") to an .mp4 of
the same base name in output_dir (default "videos_mp4"), one file at a
time. A failed file is reported and skipped. A missing ffmpeg aborts the
batch.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tc := &a.cfg.Transcode
			if len(args) > 0 {
				tc.InputDir = args[0]
			}
			if len(args) > 1 {
				tc.OutputDir = args[1]
			}
			if cmd.Flags().Changed("dry-run") {
				tc.DryRun = dryRun
			}
			if cmd.Flags().Changed("ffmpeg") {
				a.cfg.FFmpegBin = ffmpegBin
			}

			log, err := a.logger()
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout())
			log.Info("=== sitemedia v%s ===", version)

			var ex pipeline.Executor = pipeline.ProcessExecutor{}
			if a.cfg.Verbose {
				ex = pipeline.ProcessExecutor{Tee: os.Stderr}
			}
			_, err = pipeline.Run(cmd.Context(), &a.cfg, log, ex)
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&dryRun, "dry-run", false, "Show the ffmpeg commands without running them")
	f.StringVar(&ffmpegBin, "ffmpeg", "", "ffmpeg executable (name on PATH or full path)")
	return cmd
}
