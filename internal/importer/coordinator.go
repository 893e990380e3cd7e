package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/model"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/parser"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/upsert"
)

// UploadedFile is one workbook as received from the upload widget.
type UploadedFile struct {
	Filename string
	Content  []byte
}

// ProgressEvent is streamed to the client while a batch imports.
type ProgressEvent struct {
	Type      string    `json:"type"`    // start/file_done/file_error/done/error
	Message   string    `json:"message"` // event message
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FileResult records the outcome for one uploaded file.
type FileResult struct {
	Filename string `json:"filename"`
	Rows     int    `json:"rows"`
	Error    string `json:"error,omitempty"`
}

// Report aggregates one import batch.
type Report struct {
	BatchID     string         `json:"batchId"`
	Files       []FileResult   `json:"files"`
	FailedFiles int            `json:"failedFiles"`
	Summary     upsert.Summary `json:"summary"`
	Duration    time.Duration  `json:"duration"`
}

// Coordinator runs upload batches: normalize each file, then merge all
// surviving rows in one upsert.
type Coordinator struct {
	normalizer *parser.Normalizer
	store      *upsert.Store
}

// NewCoordinator wires a normalizer to an upsert store.
func NewCoordinator(normalizer *parser.Normalizer, store *upsert.Store) *Coordinator {
	return &Coordinator{
		normalizer: normalizer,
		store:      store,
	}
}

// Import processes the batch asynchronously, returning the progress channel.
func (c *Coordinator) Import(files []UploadedFile) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(files, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(files []UploadedFile, progressChan chan ProgressEvent) {
	startTime := time.Now()

	report := &Report{
		BatchID: uuid.New().String(),
		Files:   make([]FileResult, 0, len(files)),
	}

	c.send(progressChan, ProgressEvent{
		Type:    "start",
		Message: fmt.Sprintf("importing %d file(s)", len(files)),
		Data:    map[string]string{"batchId": report.BatchID},
	})

	// One failing file never aborts the rest of the batch; each failure is
	// reported against its own filename.
	var batch []model.CanonicalRow
	for _, file := range files {
		rows, err := c.normalizer.Normalize(file.Content, file.Filename)
		if err != nil {
			report.Files = append(report.Files, FileResult{
				Filename: file.Filename,
				Error:    err.Error(),
			})
			report.FailedFiles++
			c.send(progressChan, ProgressEvent{
				Type:    "file_error",
				Message: fmt.Sprintf("error processing %s: %v", file.Filename, err),
				Data:    map[string]string{"filename": file.Filename},
			})
			continue
		}

		report.Files = append(report.Files, FileResult{
			Filename: file.Filename,
			Rows:     len(rows),
		})
		batch = append(batch, rows...)

		c.send(progressChan, ProgressEvent{
			Type:    "file_done",
			Message: fmt.Sprintf("%s: %d row(s)", file.Filename, len(rows)),
			Data:    map[string]any{"filename": file.Filename, "rows": len(rows)},
		})
	}

	if len(batch) == 0 {
		report.Duration = time.Since(startTime)
		c.send(progressChan, ProgressEvent{
			Type:    "done",
			Message: "no valid data found",
			Data:    report,
		})
		return
	}

	summary, err := c.store.Merge(batch)
	if err != nil {
		c.send(progressChan, ProgressEvent{
			Type:    "error",
			Message: fmt.Sprintf("upsert failed: %v", err),
		})
		return
	}

	report.Summary = summary
	report.Duration = time.Since(startTime)

	c.send(progressChan, ProgressEvent{
		Type:    "done",
		Message: summary.String(),
		Data:    report,
	})
}

func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	event.Timestamp = time.Now()
	ch <- event
}
