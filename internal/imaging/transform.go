// Package imaging implements the image pipeline transform: bounded
// downscale, grayscale conversion, and an intensity histogram.
package imaging

import (
	"encoding/csv"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/backmassage/batchmill/internal/pipeline"
)

// Extensions lists the inputs the image pipeline recognizes.
var Extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Transform converts one image into two artifacts: <stem>_gray.png (resized
// so the longest edge is at most Params.MaxDim, then grayscaled) and
// <stem>_hist.csv (256-bin intensity histogram of the grayscale output).
// Every failure is caught and returned as an ERROR result.
func Transform(job pipeline.Job) pipeline.Result {
	img, err := decode(job.Source)
	if err != nil {
		return pipeline.Errorf(job, "decode: %v", err)
	}

	gray := grayscale(downscale(img, job.Params.MaxDim))

	grayPath := filepath.Join(job.OutputDir, job.Stem+"_gray.png")
	if err := writePNG(grayPath, gray); err != nil {
		return pipeline.Errorf(job, "write %s: %v", filepath.Base(grayPath), err)
	}

	histPath := filepath.Join(job.OutputDir, job.Stem+"_hist.csv")
	if err := writeHistogram(histPath, gray); err != nil {
		return pipeline.Errorf(job, "write %s: %v", filepath.Base(histPath), err)
	}

	return pipeline.OK(job, grayPath, histPath)
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

// downscale resizes img so its longest edge is at most maxDim, preserving
// aspect ratio with Catmull-Rom resampling. Images already within bounds
// are returned unchanged; upscaling never happens.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// grayscale converts img to 8-bit grayscale using the standard luma weights.
func grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}

// writePNG writes img to path, syncing before close so no partially written
// artifact is visible once the job reports OK. Re-runs truncate and
// overwrite.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeHistogram writes the 256-bin intensity histogram of g as bin,count
// rows. Counts sum to the pixel count of g.
func writeHistogram(path string, g *image.Gray) error {
	var counts [256]int
	b := g.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+b.Dx()]
		for _, v := range row {
			counts[v]++
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"bin", "count"}); err != nil {
		f.Close()
		return err
	}
	for i, c := range counts {
		if err := w.Write([]string{strconv.Itoa(i), strconv.Itoa(c)}); err != nil {
			f.Close()
			return err
		}
	}
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
