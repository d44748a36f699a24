package credentials

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quizforge/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/settings/models", h.GetSettings).Methods("GET")
	api.HandleFunc("/settings/models", h.SaveCredential).Methods("PUT")
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings()
	if err != nil {
		log.Printf("[handler] GetSettings error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load model settings"})
		return
	}

	if settings.Credentials == nil {
		settings.Credentials = []models.ModelCredential{}
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) SaveCredential(w http.ResponseWriter, r *http.Request) {
	var req models.SaveCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidProviders[req.Provider] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown model id: " + string(req.Provider)})
		return
	}
	if req.APIKey == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "apiKey is required"})
		return
	}

	if err := h.store.Save(req.Provider, req.APIKey); err != nil {
		log.Printf("[handler] SaveCredential error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save credential"})
		return
	}

	settings, err := h.store.Settings()
	if err != nil {
		log.Printf("[handler] SaveCredential reload error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load model settings"})
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
