package report

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 0x53, A: 0xff})
		}
	}
	return img
}

func TestExportPNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := testImage()

	path, err := NewExporter(dir).ExportPNG(img, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFilename), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBAModel.Convert(img.At(x, y)), color.RGBAModel.Convert(decoded.At(x, y)))
		}
	}
}

func TestExportPNGOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("stale content that is not a png"), 0644))

	_, err := NewExporter(dir).ExportPNG(testImage(), DefaultFilename)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var want bytes.Buffer
	require.NoError(t, EncodePNG(&want, testImage()))
	assert.Equal(t, want.Bytes(), data)
}

func TestExportPNGIsReproducible(t *testing.T) {
	e := NewExporter(t.TempDir())

	p1, err := e.ExportPNG(testImage(), "a.png")
	require.NoError(t, err)
	p2, err := e.ExportPNG(testImage(), "b.png")
	require.NoError(t, err)

	b1, err := os.ReadFile(p1)
	require.NoError(t, err)
	b2, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestExportPNGCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := NewExporter(dir).ExportPNG(testImage(), DefaultFilename)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestExportPNGWriteFailure(t *testing.T) {
	// a regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewExporter(blocker).ExportPNG(testImage(), DefaultFilename)
	assert.Error(t, err)
}
