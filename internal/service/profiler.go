package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

// ErrImageDecode indicates the input could not be decoded as an image.
var ErrImageDecode = errors.New("image could not be decoded")

// Sampling grid for color analysis. Every image is reduced to
// gridSize x gridSize samples regardless of its true resolution.
const gridSize = 50

// ColorProfiler reduces a meal photo to per-bucket color percentages,
// mean brightness and aspect ratio. It is stateless and safe for
// concurrent use.
type ColorProfiler struct{}

// NewColorProfiler creates a color profiler.
func NewColorProfiler() *ColorProfiler {
	return &ColorProfiler{}
}

// ProfileFile decodes the image at path and profiles it.
func (p *ColorProfiler) ProfileFile(path string) (*types.ColorProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return p.Profile(img), nil
}

// ProfileBytes decodes an in-memory image and profiles it.
func (p *ColorProfiler) ProfileBytes(data []byte) (*types.ColorProfile, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return p.Profile(img), nil
}

// Profile samples the image on a fixed grid and assigns each sample to
// the first matching color bucket. Percentages are relative to the
// total sample count, so identical pixel statistics always produce an
// identical profile.
func (p *ColorProfiler) Profile(img image.Image) *types.ColorProfile {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var white, cream, beige, green, orange, red, yellow, brown, other int
	var sumR, sumG, sumB float64

	for gy := 0; gy < gridSize; gy++ {
		for gx := 0; gx < gridSize; gx++ {
			x := bounds.Min.X + gx*width/gridSize
			y := bounds.Min.Y + gy*height/gridSize
			r16, g16, b16, _ := img.At(x, y).RGBA()
			r := int(r16 >> 8)
			g := int(g16 >> 8)
			b := int(b16 >> 8)

			sumR += float64(r)
			sumG += float64(g)
			sumB += float64(b)

			switch {
			case r > 200 && g > 200 && b > 200:
				// pure white: rice, milk
				white++
			case r > 170 && g > 150 && b >= 95 && r > b:
				// cream/beige: couscous, bread, pasta
				if r-b > 50 {
					beige++
				} else {
					cream++
				}
			case g >= r && g >= b && g > 60:
				// green: vegetables, mloukhia, includes dark greens
				green++
			case r > 180 && g > 80 && g < 160 && b < 100:
				// orange: carrots, sauce, sweet potato
				orange++
			case r > 150 && r > g+30 && r > b+30:
				// red: tomato, meat, berries
				red++
			case r > 180 && g > 150 && b <= 100:
				// yellow/golden: eggs, corn, lemon
				yellow++
			case r > 60 && r < 150 && g > 40 && g < 120 && b < 80:
				// brown: cooked meat, chocolate, beans
				brown++
			default:
				other++
			}
		}
	}

	samples := float64(gridSize * gridSize)
	pct := func(count int) float64 {
		return float64(count) / samples * 100
	}

	return &types.ColorProfile{
		White:        pct(white),
		Cream:        pct(cream),
		Beige:        pct(beige),
		Green:        pct(green),
		Orange:       pct(orange),
		Red:          pct(red),
		Yellow:       pct(yellow),
		Brown:        pct(brown),
		Unclassified: pct(other),
		Brightness:   (sumR + sumG + sumB) / (3 * samples),
		AspectRatio:  float64(width) / float64(height),
		Width:        width,
		Height:       height,
	}
}
