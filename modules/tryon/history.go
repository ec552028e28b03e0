package tryon

import "errors"

var (
	errNoModel       = errors.New("no base model in history")
	errModelExists   = errors.New("history already has a base model")
	errNoDefaultPose = errors.New("layer missing default pose image")
	errNilGarment    = errors.New("appended layer must carry a garment")
)

// OutfitHistory - 착장 히스토리 상태 머신
// layers[0]은 항상 베이스 모델 레이어, position은 현재 활성 레이어 인덱스
// 외부 동기화 필요 (Session이 락으로 보호)
type OutfitHistory struct {
	layers   []OutfitLayer
	position int
	poseKey  PoseKey
}

// HasModel - 베이스 모델이 확정되었는지
func (h *OutfitHistory) HasModel() bool {
	return len(h.layers) > 0
}

// FinalizeModel - 베이스 모델 확정, 히스토리를 [베이스 레이어]로 초기화
// 빈 히스토리에서만 가능 (다시 만들려면 Reset 먼저)
func (h *OutfitHistory) FinalizeModel(poseImages map[PoseKey]string) error {
	if h.HasModel() {
		return errModelExists
	}
	if poseImages[PoseDefault] == "" {
		return errNoDefaultPose
	}
	h.layers = []OutfitLayer{{Garment: nil, PoseImages: poseImages}}
	h.position = 0
	h.poseKey = PoseDefault
	return nil
}

// AppendLayer - 현재 위치 이후를 잘라내고 새 레이어 추가, 포즈는 default로 리셋
func (h *OutfitHistory) AppendLayer(layer OutfitLayer) error {
	if !h.HasModel() {
		return errNoModel
	}
	if layer.Garment == nil {
		return errNilGarment
	}
	if layer.PoseImages[PoseDefault] == "" {
		return errNoDefaultPose
	}
	h.layers = append(h.layers[:h.position+1], layer)
	h.position = len(h.layers) - 1
	h.poseKey = PoseDefault
	return nil
}

// TryRedo - 다음 레이어의 의상 id가 일치하면 재생성 없이 position만 전진
func (h *OutfitHistory) TryRedo(garmentID string) bool {
	next := h.position + 1
	if next >= len(h.layers) {
		return false
	}
	garment := h.layers[next].Garment
	if garment == nil || garment.ID != garmentID {
		return false
	}
	h.position = next
	h.poseKey = PoseDefault
	return true
}

// RemoveLastLayer - position을 한 칸 되돌림 (베이스 레이어는 제거 불가)
// 잘린 레이어는 보존되어 redo 대상이 됨
func (h *OutfitHistory) RemoveLastLayer() bool {
	if h.position <= 0 {
		return false
	}
	h.position--
	h.poseKey = PoseDefault
	return true
}

// ResetWithStyledLayer - occasion 스타일링: 히스토리를 [베이스, 새 레이어]로 대체
func (h *OutfitHistory) ResetWithStyledLayer(layer OutfitLayer) error {
	if !h.HasModel() {
		return errNoModel
	}
	if layer.Garment == nil {
		return errNilGarment
	}
	if layer.PoseImages[PoseDefault] == "" {
		return errNoDefaultPose
	}
	h.layers = []OutfitLayer{h.layers[0], layer}
	h.position = 1
	h.poseKey = PoseDefault
	return nil
}

// SelectPose - 현재 레이어에 이미지가 있는 포즈만 선택 가능
// 이미지가 없으면 false (온디맨드 생성은 Service가 처리)
func (h *OutfitHistory) SelectPose(key PoseKey) bool {
	if !h.HasModel() || key == h.poseKey {
		return false
	}
	if h.currentLayer().PoseImages[key] == "" {
		return false
	}
	h.poseKey = key
	return true
}

// SetPoseImage - 현재 레이어에 온디맨드 생성된 포즈 이미지 추가 후 해당 포즈 선택
func (h *OutfitHistory) SetPoseImage(key PoseKey, dataURL string) {
	if !h.HasModel() || dataURL == "" {
		return
	}
	layer := h.currentLayer()
	if layer.PoseImages == nil {
		layer.PoseImages = make(map[PoseKey]string)
	}
	layer.PoseImages[key] = dataURL
	h.poseKey = key
}

// Reset - 전체 초기화 (start over)
func (h *OutfitHistory) Reset() {
	h.layers = nil
	h.position = 0
	h.poseKey = PoseDefault
}

// CurrentPoseKey - 현재 선택된 포즈
func (h *OutfitHistory) CurrentPoseKey() PoseKey {
	if h.poseKey == "" {
		return PoseDefault
	}
	return h.poseKey
}

// Position - 현재 활성 레이어 인덱스
func (h *OutfitHistory) Position() int {
	return h.position
}

// Length - 보존된 전체 레이어 수 (redo 대상 포함)
func (h *OutfitHistory) Length() int {
	return len(h.layers)
}

func (h *OutfitHistory) currentLayer() *OutfitLayer {
	return &h.layers[h.position]
}

// cloneLayer - PoseImages까지 복사한 독립 레이어
// 얕은 복사를 내보내면 스냅샷이 라이브 맵을 공유해서 이후 커밋과 경쟁함
func cloneLayer(layer OutfitLayer) OutfitLayer {
	images := make(map[PoseKey]string, len(layer.PoseImages))
	for key, img := range layer.PoseImages {
		images[key] = img
	}
	layer.PoseImages = images
	return layer
}

// CurrentLayer - 현재 활성 레이어 복사본 (히스토리와 상태 공유 없음)
func (h *OutfitHistory) CurrentLayer() (OutfitLayer, bool) {
	if !h.HasModel() {
		return OutfitLayer{}, false
	}
	return cloneLayer(*h.currentLayer()), true
}

// BaseModelImage - 베이스 레이어의 default 이미지 (occasion 스타일링의 기준)
func (h *OutfitHistory) BaseModelImage() string {
	if !h.HasModel() {
		return ""
	}
	return h.layers[0].PoseImages[PoseDefault]
}

// CurrentDefaultImage - 현재 레이어의 default 이미지 (의상 합성/수정의 기준)
func (h *OutfitHistory) CurrentDefaultImage() string {
	if !h.HasModel() {
		return ""
	}
	return h.currentLayer().PoseImages[PoseDefault]
}

// CurrentDisplayImage - 선택된 포즈 이미지, 없으면 고정 순서의 첫 이미지로 fallback
func (h *OutfitHistory) CurrentDisplayImage() string {
	if !h.HasModel() {
		return ""
	}
	layer := h.currentLayer()
	if img := layer.PoseImages[h.CurrentPoseKey()]; img != "" {
		return img
	}
	for _, key := range allPoseOrder {
		if img := layer.PoseImages[key]; img != "" {
			return img
		}
	}
	return ""
}

// ActiveLayers - 활성 구간(베이스~position) 복사본 (히스토리와 상태 공유 없음)
func (h *OutfitHistory) ActiveLayers() []OutfitLayer {
	if !h.HasModel() {
		return nil
	}
	active := make([]OutfitLayer, h.position+1)
	for i := range active {
		active[i] = cloneLayer(h.layers[i])
	}
	return active
}

// ActiveGarmentIDs - 활성 레이어들이 입고 있는 의상 id 목록 (착용 중 표시용)
func (h *OutfitHistory) ActiveGarmentIDs() []string {
	ids := make([]string, 0, h.position)
	for i := 0; i <= h.position && i < len(h.layers); i++ {
		if g := h.layers[i].Garment; g != nil {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

// AvailablePoseKeys - 현재 레이어에 이미지가 존재하는 포즈 목록 (고정 순서)
func (h *OutfitHistory) AvailablePoseKeys() []PoseKey {
	if !h.HasModel() {
		return nil
	}
	layer := h.currentLayer()
	keys := make([]PoseKey, 0, len(layer.PoseImages))
	for _, key := range allPoseOrder {
		if layer.PoseImages[key] != "" {
			keys = append(keys, key)
		}
	}
	return keys
}
