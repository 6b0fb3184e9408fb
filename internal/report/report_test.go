package report

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"interview-questions-go/internal/pipeline"
	"interview-questions-go/internal/types"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions_summary.xlsx")

	results := []pipeline.VideoResult{
		{
			VideoName:      "interview.mp4",
			Status:         pipeline.StatusDone,
			TotalQuestions: 5,
			ByType: map[types.QuestionType]int{
				types.TypeTechnical:  3,
				types.TypeBehavioral: 1,
				types.TypeGeneral:    1,
			},
			ChunksTotal: 2,
			DurationMs:  1234,
		},
		{
			VideoName: "corrupt.avi",
			Status:    pipeline.StatusFailed,
			ByType:    map[types.QuestionType]int{},
			Err:       errors.New("transcription failed"),
		},
	}

	if err := Write(path, results); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("report not readable: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[1][0] != "interview.mp4" || rows[1][1] != "done" || rows[1][2] != "5" {
		t.Errorf("unexpected first data row: %v", rows[1])
	}
	if rows[2][0] != "corrupt.avi" || rows[2][1] != "failed" {
		t.Errorf("unexpected second data row: %v", rows[2])
	}
	if rows[2][len(rows[2])-1] != "transcription failed" {
		t.Errorf("error column missing: %v", rows[2])
	}
}

func TestWriteEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := Write(path, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("empty run should produce header only, got %d rows", len(rows))
	}
}
