package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zeecrown-admin/pkg/logger"
	"zeecrown-admin/pkg/media"

	"github.com/spf13/cobra"
)

type compressOptions struct {
	out    string
	maxKB  int64
	maxDim int
	format string
}

func newCompressCmd() *cobra.Command {
	opts := &compressOptions{}
	cmd := &cobra.Command{
		Use:   "compress <image>",
		Short: "Compress an image with the upload pipeline settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompress(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output path (default: input name with the format's extension)")
	cmd.Flags().Int64Var(&opts.maxKB, "max-kb", 250, "size budget in KB")
	cmd.Flags().IntVar(&opts.maxDim, "max-dim", 1280, "longest edge in pixels")
	cmd.Flags().StringVar(&opts.format, "format", "webp", "output format (webp, jpeg, png)")
	return cmd
}

func runCompress(cmd *cobra.Command, input string, opts *compressOptions) error {
	format, err := media.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	out, err := media.Compress(data, media.Constraints{
		MaxBytes:        opts.maxKB * 1024,
		MaxDimensionPx:  opts.maxDim,
		PreferredFormat: format,
	})
	if err != nil {
		return err
	}

	dest := opts.out
	if dest == "" {
		dest = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format.Extension()
	}
	if dest == input {
		return fmt.Errorf("refusing to overwrite input %s", input)
	}
	if err := os.WriteFile(dest, out.Bytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}

	if out.OverBudget {
		logger.Get().Warn().
			Int64("size_bytes", out.SizeBytes).
			Int64("max_bytes", opts.maxKB*1024).
			Msg("Output exceeds size budget at minimum quality")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d bytes, %dx%d %s q%d\n",
		dest, len(data), out.SizeBytes, out.Width, out.Height, out.Format, out.Quality)
	return nil
}
