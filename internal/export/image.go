package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"studyhub/internal/domain"
	"studyhub/internal/render"
	"studyhub/internal/scene"
)

// ─────────────────────────────────────────────────────────────
// Image export — rasterize a scene to PNG or JPEG
// ─────────────────────────────────────────────────────────────
//
// Connections go down first so they sit behind blocks; blocks are
// painted in z-order. Video blocks cannot be rasterized and are
// skipped, as is anything trashed.

// ImageOptions tunes the rasterization.
type ImageOptions struct {
	Scale      float64 // world units to pixels, default 1
	Padding    float64 // world-unit margin around the content, default 40
	Background string  // hex, default white
	Exclude    []string // block ids to leave out
}

const (
	defaultPadding = 40.0
	maxImageDim    = 8192
)

func (o ImageOptions) normalized() ImageOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Padding < 0 {
		o.Padding = defaultPadding
	}
	if o.Padding == 0 {
		o.Padding = defaultPadding
	}
	if o.Background == "" {
		o.Background = "#ffffff"
	}
	return o
}

func exportable(b domain.Block) bool {
	return !b.Trashed && b.Type != domain.BlockTypeVideo
}

// RenderImage rasterizes the scene's exportable blocks.
func RenderImage(st *scene.Store, opts ImageOptions) (image.Image, error) {
	opts = opts.normalized()

	state := st.State()
	excluded := map[string]bool{}
	for _, id := range opts.Exclude {
		excluded[id] = true
	}

	var blocks []domain.Block
	for _, b := range state.Blocks {
		if exportable(b) && !excluded[b.ID] {
			blocks = append(blocks, b)
		}
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].Z < blocks[j].Z })

	minX, minY, maxX, maxY := bounds(blocks)
	minX -= opts.Padding
	minY -= opts.Padding
	maxX += opts.Padding
	maxY += opts.Padding

	w := int(math.Ceil((maxX - minX) * opts.Scale))
	h := int(math.Ceil((maxY - minY) * opts.Scale))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("degenerate export area %dx%d", w, h)
	}
	if w > maxImageDim || h > maxImageDim {
		return nil, fmt.Errorf("export area %dx%d exceeds %d px limit", w, h, maxImageDim)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(opts.Background)
	dc.Clear()

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	// World coordinate to image pixel.
	px := func(x float64) float64 { return (x - minX) * opts.Scale }
	py := func(y float64) float64 { return (y - minY) * opts.Scale }

	drawEdges(dc, blocks, state.Connections, px, py, opts.Scale)

	for _, b := range blocks {
		drawBlock(dc, ttf, b, px, py, opts.Scale)
	}

	return dc.Image(), nil
}

// ExportImage rasterizes the scene and writes PNG or JPEG based on
// the file extension.
func ExportImage(st *scene.Store, path string, opts ImageOptions) error {
	img, err := RenderImage(st, opts)
	if err != nil {
		return err
	}
	data, err := encode(img, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// EncodeImage rasterizes the scene into an in-memory PNG or JPEG.
func EncodeImage(st *scene.Store, format string, opts ImageOptions) ([]byte, error) {
	img, err := RenderImage(st, opts)
	if err != nil {
		return nil, err
	}
	return encode(img, format)
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png", "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return buf.Bytes(), nil
}

// bounds returns the world-space extent covering every block,
// accounting for rotation about the block center.
func bounds(blocks []domain.Block) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, b := range blocks {
		cx := b.X + b.Width/2
		cy := b.Y + b.Height/2
		rad := b.Rotation * math.Pi / 180
		sin, cos := math.Sin(rad), math.Cos(rad)

		for _, corner := range [4][2]float64{
			{b.X, b.Y}, {b.X + b.Width, b.Y},
			{b.X, b.Y + b.Height}, {b.X + b.Width, b.Y + b.Height},
		} {
			dx, dy := corner[0]-cx, corner[1]-cy
			x := cx + dx*cos - dy*sin
			y := cy + dx*sin + dy*cos
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x)
			maxY = math.Max(maxY, y)
		}
	}
	return
}

func drawEdges(dc *gg.Context, blocks []domain.Block, conns []domain.Connection, px, py func(float64) float64, scale float64) {
	for _, e := range render.Project(blocks, conns) {
		switch e.Style {
		case domain.ConnectionStyleDashed:
			dc.SetDash(6*scale, 4*scale)
		case domain.ConnectionStyleDotted:
			dc.SetDash(2*scale, 4*scale)
		default:
			dc.SetDash()
		}

		c := e.Color
		if c == "" {
			c = "#8a8a8e"
		}
		dc.SetHexColor(c)
		dc.SetLineWidth(2 * scale)

		dc.MoveTo(px(e.X1), py(e.Y1))
		dc.CubicTo(px(e.C1X), py(e.C1Y), px(e.C2X), py(e.C2Y), px(e.X2), py(e.Y2))
		dc.Stroke()
	}
	dc.SetDash()
}

func drawBlock(dc *gg.Context, ttf *truetype.Font, b domain.Block, px, py func(float64) float64, scale float64) {
	x, y := px(b.X), py(b.Y)
	w, h := b.Width*scale, b.Height*scale

	dc.Push()
	defer dc.Pop()

	if b.Rotation != 0 {
		dc.RotateAbout(gg.Radians(b.Rotation), x+w/2, y+h/2)
	}

	dc.DrawRoundedRectangle(x, y, w, h, 8*scale)
	dc.SetHexColor(fillColor(b))
	dc.FillPreserve()
	dc.SetHexColor("#c8c8cc")
	dc.SetLineWidth(1 * scale)
	dc.Stroke()

	if b.Type == domain.BlockTypeImage {
		drawPicture(dc, b, x, y, w, h)
		return
	}

	text := blockText(b)
	if text == "" {
		return
	}

	size := 14.0
	col := "#2a2a2e"
	if b.Style != nil {
		if b.Style.Size > 0 {
			size = b.Style.Size
		}
		if b.Style.Color != "" {
			col = b.Style.Color
		}
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetHexColor(col)

	pad := 10 * scale
	dc.DrawStringWrapped(text, x+pad, y+pad, 0, 0, w-2*pad, 1.4, gg.AlignLeft)
}

// drawPicture renders an image block from its linked file, scaled to
// fit the block rect. Unreadable files fall back to the plain box.
func drawPicture(dc *gg.Context, b domain.Block, x, y, w, h float64) {
	path := b.FilePath
	if path == "" {
		path = b.Content
	}
	src, err := gg.LoadImage(path)
	if err != nil {
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	dc.DrawImage(dst, int(x), int(y))
}

func fillColor(b domain.Block) string {
	switch b.Type {
	case domain.BlockTypeCode:
		return "#f2f2f7"
	case domain.BlockTypeFolder:
		return "#fdf3dd"
	default:
		return "#fafafa"
	}
}

func blockText(b domain.Block) string {
	if b.Type == domain.BlockTypeContainer && len(b.SubBlocks) > 0 {
		var lines []string
		if b.Content != "" {
			lines = append(lines, b.Content)
		}
		for _, sb := range b.SubBlocks {
			if sb.Text != "" {
				lines = append(lines, sb.Text)
			}
		}
		return strings.Join(lines, "\n")
	}
	return b.Content
}
