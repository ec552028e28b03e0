package wardrobe

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quel-tryon-server/modules/common/locale"
)

// LookDeriver - 세션의 현재 룩을 드레스룸 아이템 입력으로 변환
// tryon 모듈이 구현을 제공 (모듈 간 직접 의존 대신 함수 주입)
type LookDeriver func(sessionID string, lang locale.Lang) (name, imageDataURL string, err error)

type Handler struct {
	service    *Service
	deriveLook LookDeriver
}

func NewHandler(service *Service, deriveLook LookDeriver) *Handler {
	return &Handler{service: service, deriveLook: deriveLook}
}

// RegisterRoutes - 드레스룸 API 라우트 등록
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/wardrobe", h.List).Methods("GET")
	router.HandleFunc("/api/wardrobe", h.Add).Methods("POST")
	router.HandleFunc("/api/wardrobe/from-look", h.AddFromLook).Methods("POST")
	router.HandleFunc("/api/wardrobe/{id}", h.Delete).Methods("DELETE")
}

func langFromRequest(r *http.Request) locale.Lang {
	if r.URL.Query().Get("lang") == string(locale.LangKO) {
		return locale.LangKO
	}
	return locale.LangEN
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// List - GET /api/wardrobe
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list wardrobe items"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type addItemRequest struct {
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Subcategory Subcategory `json:"subcategory,omitempty"`
	Color       string      `json:"color,omitempty"`
	Material    string      `json:"material,omitempty"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image"` // data URL
}

// Add - POST /api/wardrobe
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" || req.Category == "" || req.Image == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, category, and image are required"})
		return
	}

	item, err := h.service.Add(AddParams{
		Name:        req.Name,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Color:       req.Color,
		Material:    req.Material,
		Description: req.Description,
		ImageData:   req.Image,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: locale.FriendlyErrorMessage(err, lang)})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

type fromLookRequest struct {
	SessionID string `json:"sessionId"`
}

// AddFromLook - POST /api/wardrobe/from-look
// 현재 세션의 생성/수정 룩을 드레스룸 아이템으로 추가
func (h *Handler) AddFromLook(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req fromLookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "sessionId is required"})
		return
	}

	name, imageDataURL, err := h.deriveLook(req.SessionID, lang)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: locale.FriendlyErrorMessage(err, lang)})
		return
	}

	item, err := h.service.AddDerivedLook(name, imageDataURL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: locale.FriendlyErrorMessage(err, lang)})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Delete - DELETE /api/wardrobe/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "wardrobe item not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to delete wardrobe item"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
