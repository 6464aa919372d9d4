package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/batchmill/internal/config"
	"github.com/backmassage/batchmill/internal/pipeline"
	"github.com/backmassage/batchmill/internal/waveform"
)

func newSignalCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "signal",
		Short: "FFT and downsample a directory of WAV/CSV waveforms",
		Long: `Recursively discovers wav/csv files under --input_dir and writes, per
waveform, an FFT magnitude spectrum CSV and a downsampled waveform CSV.
CSV inputs carry no sample rate; --sample_rate scales their frequency axis.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, &cfg, pipeline.Pipeline{
				Name:       "signal",
				Extensions: waveform.Extensions,
				Transform:  waveform.Transform,
			})
		},
	}
	addCommonFlags(cmd, &cfg)
	cmd.Flags().IntVar(&cfg.DownsampleRate, "ds_rate", cfg.DownsampleRate, "target waveform rate in samples/sec")
	cmd.Flags().IntVar(&cfg.SampleRate, "sample_rate", cfg.SampleRate, "assumed sample rate for CSV inputs")
	return cmd
}
