package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/sitemedia/internal/manifest"
)

func newManifestCmd(a *app) *cobra.Command {
	var (
		prefix    string
		basePath  string
		exactCase bool
		toStdout  bool
		watch     bool
	)
	cmd := &cobra.Command{
		Use:   "manifest [dir]",
		Short: "Write images.json for the images in a folder",
		Long: `Scans dir (default: the configured manifest dir) for .png/.jpg/.jpeg
images whose name starts with --prefix and writes dir/images.json, an
array of {id, name, loc, thumb} records sorted by file name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mc := &a.cfg.Manifest
			if len(args) == 1 {
				mc.Dir = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				mc.Prefix = prefix
			}
			if flags.Changed("base-path") {
				mc.BasePath = basePath
			}
			if flags.Changed("exact-case") {
				mc.ExactCase = exactCase
			}

			log, err := a.logger()
			if err != nil {
				return err
			}
			defer log.Close()

			opts := manifest.Options{
				Prefix:    mc.Prefix,
				BasePath:  mc.BasePath,
				ExactCase: mc.ExactCase,
			}

			switch {
			case watch:
				return manifest.Watch(cmd.Context(), mc.Dir, opts, log)

			case toStdout:
				m, err := manifest.Build(mc.Dir, opts)
				if err != nil {
					return err
				}
				data, err := m.Encode()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			m, path, err := manifest.Generate(mc.Dir, opts)
			if err != nil {
				return err
			}
			log.Success("Wrote %s (%d images)", path, len(m))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&prefix, "prefix", "", "Only include files starting with this prefix (stripped from names)")
	f.StringVar(&basePath, "base-path", "", "Site path prepended to each file name (default /images/)")
	f.BoolVar(&exactCase, "exact-case", false, "Match only the literal .png/.jpg/.jpeg/.PNG/.JPG/.JPEG suffixes")
	f.BoolVar(&toStdout, "stdout", false, "Print the manifest instead of writing images.json")
	f.BoolVar(&watch, "watch", false, "Regenerate images.json whenever the folder changes")
	cmd.MarkFlagsMutuallyExclusive("stdout", "watch")
	return cmd
}
