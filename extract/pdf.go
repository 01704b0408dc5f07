package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// CropHeaderFooter trims top and bottom margins (in points) off every
// page of a PDF, removing running headers and footers before text
// conversion. pdfcpu's crop API is file-based, so the bytes take a round
// trip through a temp directory.
func CropHeaderFooter(data []byte, top, bottom float64) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "pdfcrop")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	inPath := filepath.Join(tmpDir, "in.pdf")
	outPath := filepath.Join(tmpDir, "out.pdf")
	if err := os.WriteFile(inPath, data, 0644); err != nil {
		return nil, err
	}

	conf := api.LoadConfiguration()
	pages := []string{"1-"}

	cropStr := fmt.Sprintf("%.2f 0 %.2f 0", top, bottom)
	box, err := model.ParseBox(cropStr, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to parse crop box: %w", err)
	}

	if err := api.CropFile(inPath, outPath, pages, box, conf); err != nil {
		return nil, fmt.Errorf("failed to crop PDF: %w", err)
	}

	return os.ReadFile(outPath)
}
