package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/image-selector/internal/catalog"
	"github.com/lehigh-university-libraries/image-selector/internal/models"
)

// CatalogResponse is the listing the browse screen renders: the filtered
// available records plus the tag vocabularies for the filter dropdowns.
type CatalogResponse struct {
	Images    []models.ImageRecord `json:"images"`
	Domains   []string             `json:"domains"`
	Types     []string             `json:"types"`
	Total     int                  `json:"total"`
	Available int                  `json:"available"`
	Matching  int                  `json:"matching"`
}

func (h *Handler) HandleImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cat, err := h.reader.Fetch(r.Context())
	if err != nil {
		h.writeClaimError(w, err)
		return
	}

	domains := splitQueryList(r.URL.Query().Get("domains"))
	types := splitQueryList(r.URL.Query().Get("types"))
	filtered := catalog.FilterRecords(cat.Available, domains, types)

	h.writeJSON(w, CatalogResponse{
		Images:    filtered,
		Domains:   catalog.DomainValues(cat.All),
		Types:     catalog.TypeValues(cat.All),
		Total:     len(cat.All),
		Available: len(cat.Available),
		Matching:  len(filtered),
	})
}

// HandleImageAction routes /api/images/{id}/claim and
// /api/images/{id}/report.
func (h *Handler) HandleImageAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/images/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		h.writeError(w, "Invalid image path", http.StatusBadRequest)
		return
	}
	imageID, action := parts[0], parts[1]

	var request struct {
		TaskID    string `json:"task_id"`
		ProjectID string `json:"project_id"`
		Reason    string `json:"reason"`
	}
	if r.Body != nil {
		// An empty body is fine for claim; context then defaults to UNKNOWN.
		_ = json.NewDecoder(r.Body).Decode(&request)
	}
	claimCtx := models.NewClaimContext(request.TaskID, request.ProjectID)

	switch action {
	case "claim":
		rec, err := h.coordinator.Claim(r.Context(), imageID, claimCtx)
		if err != nil {
			h.writeClaimError(w, err)
			return
		}
		h.writeJSON(w, rec)
	case "report":
		rec, err := h.coordinator.ReportBad(r.Context(), imageID, claimCtx, request.Reason)
		if err != nil {
			h.writeClaimError(w, err)
			return
		}
		h.writeJSON(w, rec)
	default:
		h.writeError(w, "Unknown image action: "+action, http.StatusNotFound)
	}
}

// HandleRefresh drops the store connection and re-reads the catalog, the
// explicit reconnect action behind the UI refresh button.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.store.Invalidate()
	cat, err := h.reader.Fetch(r.Context())
	if err != nil {
		h.writeClaimError(w, err)
		return
	}

	h.writeJSON(w, map[string]int{
		"total":     len(cat.All),
		"available": len(cat.Available),
	})
}

func splitQueryList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			values = append(values, p)
		}
	}
	return values
}
