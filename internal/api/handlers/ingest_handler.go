package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	middleware "github.com/markdave123-py/Chunkwise/internal/api/middlewares"
	"github.com/markdave123-py/Chunkwise/internal/core"
	"github.com/markdave123-py/Chunkwise/internal/core/chunking"
	"github.com/markdave123-py/Chunkwise/internal/core/ingestion_engine"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

// IngestRequest is the body of POST /api/ingest.
type IngestRequest struct {
	Documents        []models.Document `json:"documents"`
	IndexingStrategy string            `json:"indexing_strategy"`
	ChunkParams      *chunking.Params  `json:"chunk_params,omitempty"`
	VersionIncrement bool              `json:"version_increment"`
	ClientID         string            `json:"client_id,omitempty"`
}

type IngestHandler struct {
	ingestor ingestion_engine.Ingestor
	maxBytes int64
}

func NewIngestHandler(ing ingestion_engine.Ingestor, maxBytes int64) *IngestHandler {
	return &IngestHandler{ingestor: ing, maxBytes: maxBytes}
}

// Ingest chunks a batch of documents and replies with the formatted records.
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Documents == nil || req.IndexingStrategy == "" {
		writeError(w, http.StatusBadRequest, "Invalid request parameters")
		return
	}

	clientID := req.ClientID
	if id, ok := middleware.ClientID(r.Context()); ok {
		clientID = id
	}
	if clientID != "" {
		log = log.With("client_id", clientID)
	}

	res, err := h.ingestor.Process(logger.ContextWithLogger(r.Context(), log), ingestion_engine.IngestRequest{
		Documents:        req.Documents,
		Strategy:         req.IndexingStrategy,
		Params:           req.ChunkParams,
		VersionIncrement: req.VersionIncrement,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidParameter), errors.Is(err, core.ErrUnknownStrategy):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, core.ErrExtraction):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("ingest failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	w.Header().Set("X-Batch-ID", res.BatchID)
	writeJSON(w, http.StatusOK, res.Records)
}

// ListStrategies returns the registered strategy names.
func (h *IngestHandler) ListStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ingestor.Strategies())
}
