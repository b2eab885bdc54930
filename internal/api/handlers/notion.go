package handlers

import (
	"commute-learning-service/internal/adapters/notion"
	"commute-learning-service/internal/platform/httpx"
	"commute-learning-service/internal/ports"
	"errors"
	"log"
	"net/http"
	"strings"
)

// NotionHandler exposes a single Notion page as a learning pack with content.
type NotionHandler struct {
	Fetcher ports.PackFetcher
}

func (h *NotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Fetcher == nil {
		writeError(w, r, http.StatusInternalServerError, "Notion API key not found")
		return
	}

	pageID := strings.TrimSpace(r.URL.Query().Get("pageId"))
	if pageID == "" {
		writeError(w, r, http.StatusBadRequest, "Page ID is required")
		return
	}

	pack, err := h.Fetcher.FetchPack(r.Context(), pageID)
	if err == nil {
		writeJSON(w, r, http.StatusOK, pack)
		return
	}

	log.Printf("notion fetch failed: page_id=%s err=%v", pageID, err)

	if errors.Is(err, notion.ErrMissingAPIKey) {
		writeError(w, r, http.StatusInternalServerError, "Notion API key not found")
		return
	}

	var ue *notion.UpstreamError
	if errors.As(err, &ue) {
		status := http.StatusBadGateway
		var se *httpx.StatusError
		if errors.As(err, &se) {
			status = se.Code
		}
		writeError(w, r, status, "Failed to fetch Notion "+ue.Resource)
		return
	}

	writeError(w, r, http.StatusInternalServerError, "Internal server error")
}
