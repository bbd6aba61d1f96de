package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/domain"
	"studyhub/internal/scene"
)

func TestRenderImageDimensions(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	st.AddBlock(domain.BlockTypeText, 0, 0, nil) // default text size 220x80

	img, err := RenderImage(st, ImageOptions{Padding: 40})
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 300, b.Dx()) // 220 + 2*40
	assert.Equal(t, 160, b.Dy()) // 80 + 2*40
}

func TestRenderImageEmptySceneFails(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	_, err := RenderImage(st, ImageOptions{})
	assert.Error(t, err)
}

func TestRenderImageSkipsVideoBlocks(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	st.AddBlock(domain.BlockTypeText, 0, 0, nil)
	// A video far to the right must not widen the canvas.
	st.AddBlock(domain.BlockTypeVideo, 5000, 0, nil)

	img, err := RenderImage(st, ImageOptions{Padding: 40})
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestRenderImageExcludeList(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	st.AddBlock(domain.BlockTypeText, 0, 0, nil)
	far := st.AddBlock(domain.BlockTypeText, 5000, 0, nil)

	img, err := RenderImage(st, ImageOptions{Padding: 40, Exclude: []string{far.ID}})
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func TestRenderImageRotationWidensBounds(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	rot := 45.0
	st.AddBlock(domain.BlockTypeText, 0, 0, &domain.BlockPatch{Rotation: &rot})

	img, err := RenderImage(st, ImageOptions{Padding: 40})
	require.NoError(t, err)

	// A 220x80 rect rotated 45 degrees spans ~212 units on each axis.
	assert.Greater(t, img.Bounds().Dy(), 160)
}

func TestRenderImageScale(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	st.AddBlock(domain.BlockTypeText, 0, 0, nil)

	img, err := RenderImage(st, ImageOptions{Padding: 40, Scale: 2})
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
}

func TestEncodeImageFormats(t *testing.T) {
	st := scene.New(scene.BoardConfig())
	st.AddBlock(domain.BlockTypeText, 0, 0, nil)

	data, err := EncodeImage(st, "png", ImageOptions{})
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "png output must decode")

	_, err = EncodeImage(st, "jpeg", ImageOptions{})
	assert.NoError(t, err)

	_, err = EncodeImage(st, "webp", ImageOptions{})
	assert.Error(t, err)
}
