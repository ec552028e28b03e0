package lookbook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

// DisplayImageResolver - 세션의 현재 표시 이미지 조회
// tryon 모듈이 구현을 제공
type DisplayImageResolver func(sessionID string) (dataURL string, ok bool)

type Handler struct {
	service      *Service
	displayImage DisplayImageResolver
}

func NewHandler(service *Service, displayImage DisplayImageResolver) *Handler {
	return &Handler{service: service, displayImage: displayImage}
}

// RegisterRoutes - 룩북 API 라우트 등록
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/lookbook", h.List).Methods("GET")
	router.HandleFunc("/api/lookbook", h.Save).Methods("POST")
	router.HandleFunc("/api/lookbook/{id}", h.Delete).Methods("DELETE")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// List - GET /api/lookbook
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list lookbook"})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type saveRequest struct {
	SessionID string `json:"sessionId,omitempty"` // 현재 표시 이미지를 저장
	DataURL   string `json:"dataUrl,omitempty"`   // 또는 이미지 직접 전달
}

type saveResponse struct {
	Entry
	Created bool `json:"created"`
}

// Save - POST /api/lookbook
// sessionId가 있으면 해당 세션의 현재 표시 이미지를 저장
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	dataURL := req.DataURL
	if dataURL == "" && req.SessionID != "" {
		resolved, ok := h.displayImage(req.SessionID)
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "session has no image to save"})
			return
		}
		dataURL = resolved
	}
	if dataURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "dataUrl or sessionId is required"})
		return
	}

	entry, created, err := h.service.Save(dataURL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save lookbook entry"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, saveResponse{Entry: entry, Created: created})
}

// Delete - DELETE /api/lookbook/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "lookbook entry not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete lookbook entry"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
