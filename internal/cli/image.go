package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/batchmill/internal/config"
	"github.com/backmassage/batchmill/internal/imaging"
	"github.com/backmassage/batchmill/internal/pipeline"
)

func newImageCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Downscale, grayscale and histogram a directory of images",
		Long: `Recursively discovers png/jpg/jpeg/bmp/tif/tiff files under --input_dir
and writes, per image, a grayscale PNG bounded by --max_dim and a 256-bin
intensity histogram CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, &cfg, pipeline.Pipeline{
				Name:       "image",
				Extensions: imaging.Extensions,
				Transform:  imaging.Transform,
			})
		},
	}
	addCommonFlags(cmd, &cfg)
	cmd.Flags().IntVar(&cfg.MaxDim, "max_dim", cfg.MaxDim, "maximum output dimension in pixels")
	return cmd
}
