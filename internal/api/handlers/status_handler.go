package handlers

import "net/http"

type statusResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Endpoints []string `json:"endpoints,omitempty"`
}

func Index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:    "ok",
		Message:   "Chunkwise ingestion service",
		Endpoints: []string{"/api/ingest", "/api/list-strategies"},
	})
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
