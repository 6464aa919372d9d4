// Package waveform implements the signal pipeline transform: FFT magnitude
// spectrum and downsampled waveform extraction for WAV and single-column
// CSV inputs.
package waveform

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/backmassage/batchmill/internal/pipeline"
)

// Extensions lists the inputs the signal pipeline recognizes.
var Extensions = map[string]bool{
	".wav": true,
	".csv": true,
}

// Transform converts one waveform into two artifacts: <stem>_fft.csv
// (real-input FFT magnitude spectrum, floor(n/2)+1 rows with the frequency
// axis in Hz) and <stem>_waveform.csv (the signal downsampled to roughly
// Params.DownsampleRate samples/sec). WAV files carry their own sample
// rate; CSV inputs have none, so Params.SampleRate scales the frequency
// axis. Every failure is caught and returned as an ERROR result.
func Transform(job pipeline.Job) pipeline.Result {
	var (
		samples []float64
		rate    int
		err     error
	)
	if strings.EqualFold(filepath.Ext(job.Source), ".wav") {
		samples, rate, err = readWAV(job.Source)
	} else {
		samples, err = readCSV(job.Source)
		rate = job.Params.SampleRate
	}
	if err != nil {
		return pipeline.Errorf(job, "read: %v", err)
	}
	if len(samples) == 0 {
		return pipeline.Errorf(job, "read: no samples")
	}

	fftPath := filepath.Join(job.OutputDir, job.Stem+"_fft.csv")
	if err := writeFFT(fftPath, samples, rate); err != nil {
		return pipeline.Errorf(job, "write %s: %v", filepath.Base(fftPath), err)
	}

	wavePath := filepath.Join(job.OutputDir, job.Stem+"_waveform.csv")
	if err := writeWaveform(wavePath, samples, rate, job.Params.DownsampleRate); err != nil {
		return pipeline.Errorf(job, "write %s: %v", filepath.Base(wavePath), err)
	}

	return pipeline.OK(job, fftPath, wavePath)
}

// readWAV decodes the full PCM stream of a WAV file, averaging interleaved
// channels down to mono.
func readWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("no PCM data")
	}

	ch := buf.Format.NumChannels
	if ch < 1 {
		ch = 1
	}
	frames := len(buf.Data) / ch
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < ch; c++ {
			sum += float64(buf.Data[i*ch+c])
		}
		samples[i] = sum / float64(ch)
	}
	return samples, buf.Format.SampleRate, nil
}

// readCSV parses the first column of each row as one float64 sample.
// Non-numeric data fails the whole read. Blank lines are skipped.
func readCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var samples []float64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric sample %q", rec[0])
		}
		samples = append(samples, v)
	}
	return samples, nil
}

// writeFFT writes the magnitude spectrum of the real input sequence:
// frequency,magnitude rows, frequency monotonically increasing from 0 Hz
// to the Nyquist rate.
func writeFFT(path string, samples []float64, rate int) error {
	fft := fourier.NewFFT(len(samples))
	coeffs := fft.Coefficients(nil, samples)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"frequency", "magnitude"}); err != nil {
		f.Close()
		return err
	}
	for i, c := range coeffs {
		freq := fft.Freq(i) * float64(rate)
		if err := w.Write([]string{formatFloat(freq), formatFloat(cmplx.Abs(c))}); err != nil {
			f.Close()
			return err
		}
	}
	return flushClose(w, f)
}

// writeWaveform writes every step-th sample as sample_index,value rows,
// where step = max(1, rate/dsRate). The index column counts output rows,
// not positions in the source signal.
func writeWaveform(path string, samples []float64, rate, dsRate int) error {
	step := 1
	if dsRate > 0 && rate/dsRate > 1 {
		step = rate / dsRate
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"sample_index", "value"}); err != nil {
		f.Close()
		return err
	}
	idx := 0
	for i := 0; i < len(samples); i += step {
		if err := w.Write([]string{strconv.Itoa(idx), formatFloat(samples[i])}); err != nil {
			f.Close()
			return err
		}
		idx++
	}
	return flushClose(w, f)
}

// flushClose flushes the CSV writer and syncs the file before closing so no
// partially written artifact is visible once the job reports OK.
func flushClose(w *csv.Writer, f *os.File) error {
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
