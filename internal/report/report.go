package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"interview-questions-go/internal/pipeline"
	"interview-questions-go/internal/types"
)

// Write exports the batch run summary as a spreadsheet: one row per
// video with its status, question counts per type and chunk failures.
func Write(path string, results []pipeline.VideoResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"Video", "Status", "Questions",
		"Technical", "Behavioral", "General",
		"Chunks", "Chunks Failed", "Duration (ms)", "Error",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range results {
		errMsg := ""
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		row := []interface{}{
			r.VideoName,
			string(r.Status),
			r.TotalQuestions,
			r.ByType[types.TypeTechnical],
			r.ByType[types.TypeBehavioral],
			r.ByType[types.TypeGeneral],
			r.ChunksTotal,
			r.ChunksFailed,
			r.DurationMs,
			errMsg,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
