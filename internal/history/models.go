package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"subforge/internal/ingest"
)

// Status is the outcome recorded for a run.
type Status string

const (
	StatusOK              Status = "ok"
	StatusEmpty           Status = "empty"
	StatusLossy           Status = "lossy"
	StatusFileUnavailable Status = "file_unavailable"
	StatusCanceled        Status = "canceled"
	StatusFailed          Status = "failed"
)

// Run is one recorded ingestion.
type Run struct {
	ID           int64     `json:"id"`
	RunID        string    `json:"run_id"`
	SourcePath   string    `json:"source_path"`
	SHA256       string    `json:"sha256,omitempty"`
	Bytes        int       `json:"bytes"`
	Encoding     string    `json:"encoding,omitempty"`
	Method       string    `json:"method,omitempty"`
	Score        float64   `json:"score"`
	Language     string    `json:"language,omitempty"`
	Cues         int       `json:"cues"`
	Skipped      int       `json:"skipped"`
	Repairs      int       `json:"repairs"`
	Dropped      int       `json:"dropped"`
	Status       Status    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	OutputPath   string    `json:"output_path,omitempty"`
	ReportJSON   string    `json:"-"`
	ElapsedMS    int64     `json:"elapsed_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// RunFromResult builds a Run from an ingestion outcome. Exactly one of res
// and err is expected to be set; runID is used when res is nil and a fresh
// id is generated when it is empty.
func RunFromResult(runID, path string, res *ingest.Result, err error, output string) Run {
	run := Run{
		RunID:      runID,
		SourcePath: path,
		OutputPath: output,
		CreatedAt:  time.Now().UTC(),
	}
	if err != nil || res == nil {
		if run.RunID == "" {
			run.RunID = uuid.NewString()
		}
		run.Status = Status(ingest.FailureKind(err))
		if err != nil {
			run.ErrorMessage = err.Error()
		}
		return run
	}

	report := res.Report
	run.RunID = res.RunID
	run.SHA256 = res.SHA256
	run.Bytes = res.Bytes
	run.Encoding = res.Resolution.Encoding
	run.Method = string(res.Resolution.Method)
	run.Score = res.Resolution.Score
	run.Language = res.Language
	run.ElapsedMS = res.Elapsed.Milliseconds()
	run.Cues = report.Kept
	run.Skipped = report.SkippedTotal()
	run.Repairs = report.RepairTotal()
	run.Dropped = report.DroppedEmpty + report.DroppedOverlap + report.DroppedFit
	if data, mErr := json.Marshal(report); mErr == nil {
		run.ReportJSON = string(data)
	}

	switch {
	case report.Empty:
		run.Status = StatusEmpty
	case res.Resolution.Lossy():
		run.Status = StatusLossy
	default:
		run.Status = StatusOK
	}
	return run
}
