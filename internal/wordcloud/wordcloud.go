// Package wordcloud renders frequency-sized word clouds as PNG images.
package wordcloud

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Config controls the canvas and word sizing
type Config struct {
	Width       int
	Height      int
	Background  color.Color
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
	Margin      int
	// RelativeScaling weighs word frequency against rank when sizing: 0 sizes by
	// rank alone, 1 makes size proportional to frequency.
	RelativeScaling float64
}

// NewConfig returns the default settings for a width x height canvas on a white background
func NewConfig(width, height int) Config {
	return Config{
		Width:           width,
		Height:          height,
		Background:      color.White,
		MaxWords:        200,
		MinFontSize:     4,
		MaxFontSize:     float64(height) / 4,
		Margin:          2,
		RelativeScaling: 0.5,
	}
}

// Placement records where a word was drawn
type Placement struct {
	Word   string
	Count  int
	Size   float64
	Bounds image.Rectangle
}

// Image is a rendered word cloud
type Image struct {
	PNG    []byte
	Width  int
	Height int
	Words  []Placement
}

// Base64 returns the PNG encoded for a data URI
func (img *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(img.PNG)
}

// WriteFile stores the PNG at path, replacing any existing file only once the write succeeded
func (img *Image) WriteFile(path string) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.png.tmp", uuid.New().String()))
	if err := os.WriteFile(tmp, img.PNG, 0o644); err != nil {
		return fmt.Errorf("write word cloud: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write word cloud: %w", err)
	}
	return nil
}

// palette approximates the viridis colour map on a white background
var palette = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x41, 0x44, 0x87, 0xff},
	{0x2a, 0x78, 0x8e, 0xff},
	{0x22, 0xa8, 0x84, 0xff},
	{0x7a, 0xd1, 0x51, 0xff},
	{0x3b, 0x52, 0x8b, 0xff},
}

// Generate lays out the words of text, most frequent first. Each word is sized
// relative to the word placed before it; a word that does not fit shrinks the
// running size, and layout stops once it falls below MinFontSize.
// Blank text, or text with no countable words, yields nil.
func Generate(text string, cfg Config) (*Image, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("word cloud: invalid canvas %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MinFontSize <= 0 || cfg.MaxFontSize < cfg.MinFontSize {
		return nil, fmt.Errorf("word cloud: invalid font sizes %g..%g", cfg.MinFontSize, cfg.MaxFontSize)
	}
	if cfg.RelativeScaling < 0 || cfg.RelativeScaling > 1 {
		return nil, fmt.Errorf("word cloud: relative scaling %g outside 0..1", cfg.RelativeScaling)
	}

	counts := Count(Tokenize(text), cfg.MaxWords)
	if len(counts) == 0 {
		return nil, nil
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("word cloud: parse font: %w", err)
	}
	faces := newFaceCache(fnt)
	defer faces.Close()

	canvas := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(cfg.Background), image.Point{}, draw.Src)

	l := newLayout(cfg, canvas.Bounds())
	rs := cfg.RelativeScaling
	size := cfg.MaxFontSize
	last := float64(counts[0].Count)
	for i, wc := range counts {
		size *= rs*float64(wc.Count)/last + 1 - rs

		placed := false
		for ; size >= cfg.MinFontSize; size-- {
			face, err := faces.Get(size)
			if err != nil {
				return nil, fmt.Errorf("word cloud: %w", err)
			}
			rect, baseline, ok := l.place(face, wc.Word)
			if !ok {
				continue
			}
			d := font.Drawer{
				Dst:  canvas,
				Src:  image.NewUniform(palette[i%len(palette)]),
				Face: face,
				Dot:  baseline,
			}
			d.DrawString(wc.Word)
			l.take(Placement{Word: wc.Word, Count: wc.Count, Size: size, Bounds: rect})
			placed = true
			break
		}
		if !placed {
			break
		}
		last = float64(wc.Count)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("word cloud: encode: %w", err)
	}
	return &Image{PNG: buf.Bytes(), Width: cfg.Width, Height: cfg.Height, Words: l.placed}, nil
}

// gridCell is the side of one occupancy cell in pixels
const gridCell = 4

// layout tracks which cells of the canvas hold a word. sums is the summed-area
// table of taken, so any window is checked in constant time.
type layout struct {
	cfg        Config
	bounds     image.Rectangle
	cols, rows int
	taken      []bool
	sums       []int
	placed     []Placement
}

func newLayout(cfg Config, bounds image.Rectangle) *layout {
	cols := (bounds.Dx() + gridCell - 1) / gridCell
	rows := (bounds.Dy() + gridCell - 1) / gridCell
	return &layout{
		cfg:    cfg,
		bounds: bounds,
		cols:   cols,
		rows:   rows,
		taken:  make([]bool, cols*rows),
		sums:   make([]int, (cols+1)*(rows+1)),
	}
}

// window counts the taken cells in the w x h cell window at column x, row y
func (l *layout) window(x, y, w, h int) int {
	stride := l.cols + 1
	return l.sums[(y+h)*stride+x+w] - l.sums[y*stride+x+w] - l.sums[(y+h)*stride+x] + l.sums[y*stride+x]
}

// place finds the free spot closest to the centre where the word's box, padded
// by the margin, fits inside the canvas.
func (l *layout) place(face font.Face, word string) (image.Rectangle, fixed.Point26_6, bool) {
	metrics := face.Metrics()
	w := font.MeasureString(face, word).Ceil()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	h := ascent + descent
	m := max(l.cfg.Margin, 0)
	cw := (w + 2*m + gridCell - 1) / gridCell
	ch := (h + 2*m + gridCell - 1) / gridCell
	if cw > l.cols || ch > l.rows {
		return image.Rectangle{}, fixed.Point26_6{}, false
	}

	best, bestX, bestY := math.Inf(1), -1, -1
	for y := 0; y+ch <= l.rows; y++ {
		py := y*gridCell + m
		if py+h > l.bounds.Dy() {
			break
		}
		dy := (float64(y) + float64(ch)/2 - float64(l.rows)/2) / float64(l.rows)
		for x := 0; x+cw <= l.cols; x++ {
			px := x*gridCell + m
			if px+w > l.bounds.Dx() {
				break
			}
			dx := (float64(x) + float64(cw)/2 - float64(l.cols)/2) / float64(l.cols)
			d := dx*dx + dy*dy
			if d >= best || l.window(x, y, cw, ch) != 0 {
				continue
			}
			best, bestX, bestY = d, px, py
		}
	}
	if bestX < 0 {
		return image.Rectangle{}, fixed.Point26_6{}, false
	}

	rect := image.Rect(bestX, bestY, bestX+w, bestY+h).Add(l.bounds.Min)
	return rect, fixed.P(rect.Min.X, rect.Min.Y+ascent), true
}

// take marks the cells under a placed word and refreshes the summed-area table
// from its first row down.
func (l *layout) take(p Placement) {
	r := p.Bounds.Sub(l.bounds.Min)
	top := r.Min.Y / gridCell
	for y := top; y <= (r.Max.Y-1)/gridCell; y++ {
		for x := r.Min.X / gridCell; x <= (r.Max.X-1)/gridCell; x++ {
			l.taken[y*l.cols+x] = true
		}
	}

	stride := l.cols + 1
	for y := top; y < l.rows; y++ {
		run := 0
		for x := 0; x < l.cols; x++ {
			if l.taken[y*l.cols+x] {
				run++
			}
			l.sums[(y+1)*stride+x+1] = l.sums[y*stride+x+1] + run
		}
	}
	l.placed = append(l.placed, p)
}

// faceCache shares one face per rounded point size
type faceCache struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func newFaceCache(fnt *opentype.Font) *faceCache {
	return &faceCache{font: fnt, faces: make(map[int]font.Face)}
}

func (c *faceCache) Get(size float64) (font.Face, error) {
	key := int(math.Round(size))
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face size %d: %w", key, err)
	}
	c.faces[key] = face
	return face, nil
}

func (c *faceCache) Close() {
	for _, face := range c.faces {
		face.Close()
	}
}
