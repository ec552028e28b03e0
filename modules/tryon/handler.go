package tryon

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"quel-tryon-server/modules/common/locale"
)

type Handler struct {
	service *Service
	hub     *ProgressHub
}

func NewHandler(service *Service, hub *ProgressHub) *Handler {
	return &Handler{service: service, hub: hub}
}

// RegisterRoutes - 착장 API 라우트 등록
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/tryon/session", h.CreateSession).Methods("POST")
	router.HandleFunc("/api/tryon/state", h.GetState).Methods("GET")
	router.HandleFunc("/api/tryon/model", h.CreateModel).Methods("POST")
	router.HandleFunc("/api/tryon/garment", h.ApplyGarment).Methods("POST")
	router.HandleFunc("/api/tryon/occasion", h.GenerateForOccasion).Methods("POST")
	router.HandleFunc("/api/tryon/edit", h.EditImage).Methods("POST")
	router.HandleFunc("/api/tryon/hairstyle", h.ApplyHairstyle).Methods("POST")
	router.HandleFunc("/api/tryon/pose", h.SelectPose).Methods("POST")
	router.HandleFunc("/api/tryon/undo", h.Undo).Methods("POST")
	router.HandleFunc("/api/tryon/reset", h.Reset).Methods("POST")
	router.HandleFunc("/api/tryon/catalog", h.GetCatalog).Methods("GET")
	router.HandleFunc("/ws", h.hub.HandleWebSocket)
}

// langFromRequest - ?lang=ko 또는 기본 en
func langFromRequest(r *http.Request) locale.Lang {
	if r.URL.Query().Get("lang") == string(locale.LangKO) {
		return locale.LangKO
	}
	return locale.LangEN
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError - AppError 키를 상태 코드로 매핑하고 번역된 메시지 반환
func writeError(w http.ResponseWriter, lang locale.Lang, err error) {
	status := http.StatusInternalServerError

	var appErr *locale.AppError
	if errors.As(err, &appErr) {
		switch appErr.Key {
		case "errorTooBusy", "errorSessionReset":
			status = http.StatusConflict
		case "errorInvalidDataURL", "errorMimeParse", "errorNoModel", "errorGeneric":
			status = http.StatusBadRequest
		case "errorApiBlocked", "errorModelStopped", "errorNoImage", "errorNoImageWithText":
			status = http.StatusBadGateway
		}
	}

	writeJSON(w, status, errorResponse{Error: locale.FriendlyErrorMessage(err, lang)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// resolveSession - 요청 본문의 세션 id로 세션 조회
func (h *Handler) resolveSession(w http.ResponseWriter, sessionID string) (*Session, bool) {
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "sessionId is required"})
		return nil, false
	}
	sess, ok := h.service.Sessions().Get(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return sess, true
}

// CreateSession - POST /api/tryon/session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.service.Sessions().Create()
	writeJSON(w, http.StatusCreated, h.service.Snapshot(sess))
}

// GetState - GET /api/tryon/state?session=<id>
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.resolveSession(w, r.URL.Query().Get("session"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type createModelRequest struct {
	SessionID string `json:"sessionId"`
	UserPhoto string `json:"userPhoto"` // data URL
}

// CreateModel - POST /api/tryon/model
func (h *Handler) CreateModel(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req createModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if req.UserPhoto == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "userPhoto is required"})
		return
	}

	if err := h.service.CreateModel(r.Context(), sess, lang, req.UserPhoto); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type applyGarmentRequest struct {
	SessionID string        `json:"sessionId"`
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Source    GarmentSource `json:"source"`
	Image     string        `json:"image"` // data URL
}

// ApplyGarment - POST /api/tryon/garment
func (h *Handler) ApplyGarment(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req applyGarmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if req.ID == "" || req.Image == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id and image are required"})
		return
	}
	if req.Source == "" {
		req.Source = SourceCatalog
	}

	garment := GarmentRef{ID: req.ID, Name: req.Name, Source: req.Source, ImageURL: req.Image}
	if err := h.service.ApplyGarment(r.Context(), sess, lang, garment, req.Image); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type occasionRequest struct {
	SessionID string `json:"sessionId"`
	Occasion  string `json:"occasion"` // 프리셋 키 또는 자유 텍스트
}

// GenerateForOccasion - POST /api/tryon/occasion
func (h *Handler) GenerateForOccasion(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req occasionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if req.Occasion == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "occasion is required"})
		return
	}

	if err := h.service.GenerateForOccasion(r.Context(), sess, lang, req.Occasion); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type editRequest struct {
	SessionID string `json:"sessionId"`
	Prompt    string `json:"prompt"`
}

// EditImage - POST /api/tryon/edit
func (h *Handler) EditImage(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt is required"})
		return
	}

	if err := h.service.EditImage(r.Context(), sess, lang, req.Prompt); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type hairstyleRequest struct {
	SessionID string `json:"sessionId"`
	Hairstyle string `json:"hairstyle"` // 카탈로그 키
}

// ApplyHairstyle - POST /api/tryon/hairstyle
func (h *Handler) ApplyHairstyle(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req hairstyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if _, found := LookupHairstyle(req.Hairstyle); !found {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown hairstyle"})
		return
	}

	if err := h.service.ApplyHairstyle(r.Context(), sess, lang, req.Hairstyle); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type poseRequest struct {
	SessionID string  `json:"sessionId"`
	Pose      PoseKey `json:"pose"`
}

// SelectPose - POST /api/tryon/pose
func (h *Handler) SelectPose(w http.ResponseWriter, r *http.Request) {
	lang := langFromRequest(r)

	var req poseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}
	if !IsValidPoseKey(req.Pose) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown pose"})
		return
	}

	if err := h.service.SelectPose(r.Context(), sess, lang, req.Pose); err != nil {
		writeError(w, lang, err)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type sessionOnlyRequest struct {
	SessionID string `json:"sessionId"`
}

// Undo - POST /api/tryon/undo
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	var req sessionOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}

	h.service.RemoveLastLayer(sess)
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

// Reset - POST /api/tryon/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var req sessionOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	sess, ok := h.resolveSession(w, req.SessionID)
	if !ok {
		return
	}

	h.service.StartOver(sess)
	writeJSON(w, http.StatusOK, h.service.Snapshot(sess))
}

type catalogResponse struct {
	Poses      []PoseKey        `json:"poses"`
	Occasions  []OccasionPreset `json:"occasions"`
	Hairstyles []Hairstyle      `json:"hairstyles"`
}

// GetCatalog - GET /api/tryon/catalog (포즈/occasion/헤어스타일 목록)
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Poses:      allPoseOrder,
		Occasions:  OccasionPresets(),
		Hairstyles: HairstyleCatalog(),
	})
}
