package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/quizforge/backend/internal/exchange"
	"github.com/quizforge/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/sessions", h.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}/generate", h.Generate).Methods("POST")
	api.HandleFunc("/sessions/{id}/answers", h.RecordAnswer).Methods("POST")
	api.HandleFunc("/sessions/{id}/submit", h.Submit).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", h.Reset).Methods("POST")
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	view := h.service.Create()
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, err := h.service.StartGeneration(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}

	view, err := h.service.RecordAnswer(mux.Vars(r)["id"], req.QuestionID, req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.SubmitForGrading(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Reset(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writeError maps the failure taxonomy onto HTTP statuses. Clients get
// the category message, never a raw provider payload.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *ValidationError
		providerErr   *exchange.UnsupportedProviderError
		upstreamErr   *exchange.UpstreamError
		responseErr   *exchange.InvalidResponseError
	)

	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Session not found"})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: validationErr.Message})
	case errors.As(err, &providerErr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: providerErr.Error()})
	case errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "The AI provider could not be reached. Please try again."})
	case errors.As(err, &responseErr):
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "The AI response could not be understood. Please try again."})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
