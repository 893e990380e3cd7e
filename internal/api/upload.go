package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/importer"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/parser"
	"github.com/Abubakar30497/Hashoo-Daily-Rooms-Stats/internal/upsert"
)

// Upload ingests one or more workbook files (SSE streamed progress).
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		fileHeaders = form.File["file"]
	}
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	files := make([]importer.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot open %s", fh.Filename)})
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("cannot read %s", fh.Filename)})
			return
		}
		files = append(files, importer.UploadedFile{Filename: fh.Filename, Content: content})
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	coordinator := importer.NewCoordinator(h.newNormalizer(), h.newUpsertStore())
	progressChan := coordinator.Import(files)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}

	// the month selector depends on the cache tracking freshly written rows
	h.refreshActualCache()
}

func (h *Handler) newNormalizer() *parser.Normalizer {
	ingest := h.cfg.Ingest
	opts := parser.DefaultParseOptions()
	if ingest.SheetName != "" {
		opts.SheetName = ingest.SheetName
	}
	opts.SkipRows = ingest.SkipRows
	opts.ForecastMarker = ingest.ForecastMarker
	if len(ingest.ColumnSynonyms) > 0 {
		opts.Synonyms = ingest.ColumnSynonyms
	}
	return parser.NewNormalizer(opts)
}

func (h *Handler) newUpsertStore() *upsert.Store {
	return upsert.New(
		h.backend.Table(h.cfg.Store.ActualTable),
		upsert.PolicyFromString(h.cfg.Ingest.ReplacePolicy),
	)
}
