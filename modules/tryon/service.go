package tryon

import (
	"context"
	"log"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"quel-tryon-server/modules/common/locale"
	"quel-tryon-server/modules/common/redis"
)

// Gateway - 이미지 생성 게이트웨이 (gemini.Client가 구현)
// 테스트에서는 fake로 대체
type Gateway interface {
	GenerateModelImage(ctx context.Context, userPhotoDataURL string) (string, error)
	GenerateTryOnImage(ctx context.Context, modelImageDataURL, garmentDataURL string) (string, error)
	GeneratePoseVariation(ctx context.Context, baseImageDataURL, poseInstruction string) (string, error)
	EditImageWithText(ctx context.Context, baseImageDataURL, instruction string) (string, error)
	GenerateOutfitForOccasion(ctx context.Context, baseModelDataURL, occasion string) (string, error)
}

// Service - 착장 워크플로우 오케스트레이터
type Service struct {
	gateway   Gateway
	sessions  *SessionManager
	rdb       *goredis.Client
	hub       *ProgressHub
	poseCount int
}

func NewService(gateway Gateway, sessions *SessionManager, rdb *goredis.Client, hub *ProgressHub, poseCount int) *Service {
	if poseCount < 1 {
		poseCount = 1
	}
	if poseCount > len(poseKeysToGenerate)+1 {
		poseCount = len(poseKeysToGenerate) + 1
	}
	return &Service{
		gateway:   gateway,
		sessions:  sessions,
		rdb:       rdb,
		hub:       hub,
		poseCount: poseCount,
	}
}

// Sessions - 핸들러에서 세션 조회/생성용
func (s *Service) Sessions() *SessionManager {
	return s.sessions
}

// SessionState - 프레젠테이션 스냅샷
type SessionState struct {
	SessionID        string        `json:"sessionId"`
	HasModel         bool          `json:"hasModel"`
	IsLoading        bool          `json:"isLoading"`
	LoadingMessage   string        `json:"loadingMessage,omitempty"`
	LastError        string        `json:"lastError,omitempty"`
	CurrentPoseKey   PoseKey       `json:"currentPoseKey"`
	AvailablePoses   []PoseKey     `json:"availablePoses"`
	DisplayImage     string        `json:"displayImage,omitempty"`
	ActiveLayers     []OutfitLayer `json:"activeLayers"`
	ActiveGarmentIDs []string      `json:"activeGarmentIds"`
	CanUndo          bool          `json:"canUndo"`
}

// Snapshot - 세션의 현재 상태 조회
func (s *Service) Snapshot(sess *Session) SessionState {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return SessionState{
		SessionID:        sess.ID,
		HasModel:         sess.history.HasModel(),
		IsLoading:        sess.isLoading,
		LoadingMessage:   sess.loadingMessage,
		LastError:        sess.lastError,
		CurrentPoseKey:   sess.history.CurrentPoseKey(),
		AvailablePoses:   sess.history.AvailablePoseKeys(),
		DisplayImage:     sess.history.CurrentDisplayImage(),
		ActiveLayers:     sess.history.ActiveLayers(),
		ActiveGarmentIDs: sess.history.ActiveGarmentIDs(),
		CanUndo:          sess.history.Position() > 0,
	}
}

// CreateModel - 사용자 사진으로 베이스 모델 확정 워크플로우
func (s *Service) CreateModel(ctx context.Context, sess *Session, lang locale.Lang, userPhotoDataURL string) error {
	if !sess.tryBeginWork(locale.T(lang, "generatingModel", nil)) {
		return locale.NewAppError("errorTooBusy", nil)
	}
	defer sess.endWork()

	redis.ClearSessionCancelled(s.rdb, sess.ID)
	epoch := sess.currentEpoch()
	s.broadcastProgress(sess, locale.T(lang, "generatingModel", nil))

	baseImage, err := s.gateway.GenerateModelImage(ctx, userPhotoDataURL)
	if err != nil {
		return s.fail(sess, lang, err)
	}

	s.progress(sess, locale.T(lang, "generatingVariations", nil))
	poseImages := GeneratePoseVariations(ctx, s.gateway, baseImage, s.poseCount)

	if err := s.commit(sess, epoch, func(h *OutfitHistory) error {
		return h.FinalizeModel(poseImages)
	}); err != nil {
		return s.fail(sess, lang, err)
	}

	s.done(sess)
	return nil
}

// ApplyGarment - 의상 적용 워크플로우
// 다음 레이어와 의상 id가 같으면 재생성 없이 redo
func (s *Service) ApplyGarment(ctx context.Context, sess *Session, lang locale.Lang, garment GarmentRef, garmentImageDataURL string) error {
	// redo 체크는 busy 획득 전에 - 원격 호출이 없으므로 즉시 처리
	sess.mu.Lock()
	if !sess.isLoading && sess.history.TryRedo(garment.ID) {
		sess.mu.Unlock()
		// 로딩 사이클이 없었으므로 progress/done 이벤트도 없음 - 응답이 상태를 전달
		log.Printf("🔄 [TryOn] Redo layer for garment %s (no regeneration)", garment.ID)
		return nil
	}
	sess.mu.Unlock()

	if !sess.tryBeginWork(locale.T(lang, "addingGarment", map[string]string{"garmentName": garment.Name})) {
		return locale.NewAppError("errorTooBusy", nil)
	}
	defer sess.endWork()

	baseImage := s.currentDefaultImage(sess)
	if baseImage == "" {
		return s.fail(sess, lang, locale.NewAppError("errorNoModel", nil))
	}

	redis.ClearSessionCancelled(s.rdb, sess.ID)
	epoch := sess.currentEpoch()
	s.broadcastProgress(sess, locale.T(lang, "addingGarment", map[string]string{"garmentName": garment.Name}))

	newDefault, err := s.gateway.GenerateTryOnImage(ctx, baseImage, garmentImageDataURL)
	if err != nil {
		return s.fail(sess, lang, err)
	}

	s.progress(sess, locale.T(lang, "generatingVariations", nil))
	poseImages := GeneratePoseVariations(ctx, s.gateway, newDefault, s.poseCount)

	layer := OutfitLayer{Garment: &garment, PoseImages: poseImages}
	if err := s.commit(sess, epoch, func(h *OutfitHistory) error {
		return h.AppendLayer(layer)
	}); err != nil {
		return s.fail(sess, lang, err)
	}

	s.done(sess)
	return nil
}

// GenerateForOccasion - occasion 스타일링 워크플로우
// 베이스 모델 기준으로 생성하고 히스토리를 [베이스, 새 레이어]로 대체
func (s *Service) GenerateForOccasion(ctx context.Context, sess *Session, lang locale.Lang, occasionKeyOrText string) error {
	if !sess.tryBeginWork(locale.T(lang, "generatingLook", nil)) {
		return locale.NewAppError("errorTooBusy", nil)
	}
	defer sess.endWork()

	baseImage := s.baseModelImage(sess)
	if baseImage == "" {
		return s.fail(sess, lang, locale.NewAppError("errorNoModel", nil))
	}

	redis.ClearSessionCancelled(s.rdb, sess.ID)
	epoch := sess.currentEpoch()
	s.broadcastProgress(sess, locale.T(lang, "generatingLook", nil))

	// 프롬프트는 항상 영어 - UI 언어가 생성 품질에 영향을 주지 않도록
	occasion := LookupOccasion(occasionKeyOrText)
	newDefault, err := s.gateway.GenerateOutfitForOccasion(ctx, baseImage, occasion)
	if err != nil {
		return s.fail(sess, lang, err)
	}

	s.progress(sess, locale.T(lang, "generatingVariations", nil))
	poseImages := GeneratePoseVariations(ctx, s.gateway, newDefault, s.poseCount)

	layer := OutfitLayer{
		Garment: &GarmentRef{
			ID:       newLayerID(),
			Name:     locale.T(lang, "generatedLook", nil),
			Source:   SourceGenerated,
			ImageURL: newDefault,
		},
		PoseImages:       poseImages,
		GenerationPrompt: occasion,
	}
	if err := s.commit(sess, epoch, func(h *OutfitHistory) error {
		return h.ResetWithStyledLayer(layer)
	}); err != nil {
		return s.fail(sess, lang, err)
	}

	s.done(sess)
	return nil
}

// EditImage - 텍스트 지시로 현재 룩 수정 워크플로우
func (s *Service) EditImage(ctx context.Context, sess *Session, lang locale.Lang, instruction string) error {
	return s.applyModification(ctx, sess, lang, instruction, locale.T(lang, "modifiedLook", nil), instruction)
}

// ApplyHairstyle - 카탈로그 헤어스타일 적용 워크플로우 (수정 경로 재사용)
func (s *Service) ApplyHairstyle(ctx context.Context, sess *Session, lang locale.Lang, hairstyleKey string) error {
	style, ok := LookupHairstyle(hairstyleKey)
	if !ok {
		return locale.NewAppError("errorGeneric", nil)
	}
	instruction := BuildHairstyleInstruction(style)
	return s.applyModification(ctx, sess, lang, instruction, style.Name, style.Name)
}

// applyModification - 수정 계열 워크플로우 공통 경로
func (s *Service) applyModification(ctx context.Context, sess *Session, lang locale.Lang, instruction, layerName, generationPrompt string) error {
	if !sess.tryBeginWork(locale.T(lang, "modifyingLook", nil)) {
		return locale.NewAppError("errorTooBusy", nil)
	}
	defer sess.endWork()

	baseImage := s.currentDefaultImage(sess)
	if baseImage == "" {
		return s.fail(sess, lang, locale.NewAppError("errorNoModel", nil))
	}

	redis.ClearSessionCancelled(s.rdb, sess.ID)
	epoch := sess.currentEpoch()
	s.broadcastProgress(sess, locale.T(lang, "modifyingLook", nil))

	newDefault, err := s.gateway.EditImageWithText(ctx, baseImage, instruction)
	if err != nil {
		return s.fail(sess, lang, err)
	}

	s.progress(sess, locale.T(lang, "generatingVariations", nil))
	poseImages := GeneratePoseVariations(ctx, s.gateway, newDefault, s.poseCount)

	layer := OutfitLayer{
		Garment: &GarmentRef{
			ID:       newLayerID(),
			Name:     layerName,
			Source:   SourceModified,
			ImageURL: newDefault,
		},
		PoseImages:       poseImages,
		GenerationPrompt: generationPrompt,
	}
	if err := s.commit(sess, epoch, func(h *OutfitHistory) error {
		return h.AppendLayer(layer)
	}); err != nil {
		return s.fail(sess, lang, err)
	}

	s.done(sess)
	return nil
}

// SelectPose - 포즈 전환
// 현재 레이어에 이미지가 없으면 온디맨드 생성 후 전환
func (s *Service) SelectPose(ctx context.Context, sess *Session, lang locale.Lang, key PoseKey) error {
	if !IsValidPoseKey(key) {
		return locale.NewAppError("errorGeneric", nil)
	}

	sess.mu.Lock()
	if sess.isLoading {
		sess.mu.Unlock()
		return locale.NewAppError("errorTooBusy", nil)
	}
	if !sess.history.HasModel() {
		sess.mu.Unlock()
		return locale.NewAppError("errorNoModel", nil)
	}
	if sess.history.SelectPose(key) || sess.history.CurrentPoseKey() == key {
		sess.mu.Unlock()
		return nil
	}
	sess.mu.Unlock()

	// 이미지가 없는 포즈 - 온디맨드 생성
	if !sess.tryBeginWork(locale.T(lang, "generatingVariations", nil)) {
		return locale.NewAppError("errorTooBusy", nil)
	}
	defer sess.endWork()

	baseImage := s.currentDefaultImage(sess)
	if baseImage == "" {
		return s.fail(sess, lang, locale.NewAppError("errorNoModel", nil))
	}

	epoch := sess.currentEpoch()
	s.broadcastProgress(sess, locale.T(lang, "generatingVariations", nil))

	dataURL, err := s.gateway.GeneratePoseVariation(ctx, baseImage, PoseInstruction(key))
	if err != nil {
		return s.fail(sess, lang, err)
	}

	if err := s.commit(sess, epoch, func(h *OutfitHistory) error {
		h.SetPoseImage(key, dataURL)
		return nil
	}); err != nil {
		return s.fail(sess, lang, err)
	}

	s.done(sess)
	return nil
}

// RemoveLastLayer - 마지막 의상 레이어 되돌리기 (잘린 레이어는 redo 대상으로 보존)
func (s *Service) RemoveLastLayer(sess *Session) bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isLoading {
		return false
	}
	return sess.history.RemoveLastLayer()
}

// StartOver - 세션 초기화
// epoch 증가 + 취소 플래그로 진행 중이던 생성 결과를 폐기
func (s *Service) StartOver(sess *Session) {
	redis.MarkSessionCancelled(s.rdb, sess.ID)
	sess.startOver()
	log.Printf("🔄 [TryOn] Session %s reset", sess.ID)
	s.hub.Broadcast(sess.ID, "done", "")
}

// DeriveWardrobeItem - 현재 레이어의 생성/수정 룩을 드레스룸 아이템으로 변환
func (s *Service) DeriveWardrobeItem(sess *Session, lang locale.Lang) (name, imageDataURL string, err error) {
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	layer, ok := sess.history.CurrentLayer()
	if !ok {
		return "", "", locale.NewAppError("errorNoModel", nil)
	}
	if !layer.Garment.IsDerived() {
		return "", "", locale.NewAppError("errorGeneric", nil)
	}

	nameKey := "generatedOutfitName"
	if layer.Garment.Source == SourceModified {
		nameKey = "modifiedOutfitName"
	}
	prompt := layer.GenerationPrompt
	if prompt == "" {
		prompt = layer.Garment.Name
	}
	name = locale.T(lang, nameKey, map[string]string{"prompt": prompt})

	imageDataURL = layer.Garment.ImageURL
	if imageDataURL == "" {
		imageDataURL = layer.PoseImages[PoseDefault]
	}
	return name, imageDataURL, nil
}

// newLayerID - 생성/수정 레이어의 의상 id
func newLayerID() string {
	return "look-" + uuid.NewString()
}

// commit - epoch/취소 플래그 검사 후 히스토리 변이 적용
// start over가 끼어든 경우 결과를 폐기하고 세션 리셋 에러 반환
func (s *Service) commit(sess *Session, epoch int64, apply func(*OutfitHistory) error) error {
	if redis.IsSessionCancelled(s.rdb, sess.ID) {
		log.Printf("⚠️ [TryOn] Discarding result for cancelled session %s", sess.ID)
		return locale.NewAppError("errorSessionReset", nil)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.epoch != epoch {
		log.Printf("⚠️ [TryOn] Discarding stale result for session %s", sess.ID)
		return locale.NewAppError("errorSessionReset", nil)
	}
	return apply(&sess.history)
}

func (s *Service) currentDefaultImage(sess *Session) string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.history.CurrentDefaultImage()
}

func (s *Service) baseModelImage(sess *Session) string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.history.BaseModelImage()
}

// fail - 에러 기록 + 브로드캐스트, 히스토리는 그대로 유지
func (s *Service) fail(sess *Session, lang locale.Lang, err error) error {
	friendly := locale.FriendlyErrorMessage(err, lang)
	sess.recordError(friendly)
	s.hub.Broadcast(sess.ID, "error", friendly)
	log.Printf("❌ [TryOn] Workflow failed for session %s: %v", sess.ID, err)
	return err
}

// progress - 진행 메시지 갱신 + 브로드캐스트
func (s *Service) progress(sess *Session, message string) {
	sess.setProgress(message)
	s.hub.Broadcast(sess.ID, "progress", message)
}

func (s *Service) broadcastProgress(sess *Session, message string) {
	s.hub.Broadcast(sess.ID, "progress", message)
}

func (s *Service) done(sess *Session) {
	s.hub.Broadcast(sess.ID, "done", "")
}
