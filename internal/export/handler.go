package export

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/drawdeck/drawdeck/backend-go/internal/auth"
	"github.com/drawdeck/drawdeck/backend-go/internal/document"
)

// Handler serves document export endpoints.
type Handler struct {
	docs *document.Service
}

func NewHandler(docs *document.Service) *Handler {
	return &Handler{docs: docs}
}

// ExportSVG handles GET /documents/{documentId}/export/svg.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	docID := mux.Vars(r)["documentId"]

	if _, err := h.docs.Get(r.Context(), docID, userID); err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, document.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			slog.Error("export lookup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	doc, err := h.docs.LoadLatest(r.Context(), docID)
	if err != nil {
		slog.Error("export load failed", "error", err, "document", docID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Name+`.svg"`)
	w.WriteHeader(http.StatusOK)
	w.Write(SVG(doc))
}
