package report

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
)

const DefaultFilename = "contributions.png"

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	if outputDir == "" {
		outputDir = "."
	}
	return &Exporter{OutputDir: outputDir}
}

// EncodePNG writes img as PNG. The output is byte-for-byte reproducible
// for identical input.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, img)
}

// ExportPNG encodes img and writes it to OutputDir/filename, replacing any
// existing file. It returns the path written.
func (e *Exporter) ExportPNG(img image.Image, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", pkgerrors.Wrap(err, "failed to encode PNG")
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to create output directory %s", e.OutputDir)
	}

	outputPath := filepath.Join(e.OutputDir, filename)
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to write %s", outputPath)
	}

	return outputPath, nil
}
