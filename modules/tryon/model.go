package tryon

// PoseKey - 포즈 식별자 (고정 집합)
type PoseKey string

const (
	PoseDefault      PoseKey = "default"
	PoseThreeQuarter PoseKey = "three_quarter"
	PoseProfile      PoseKey = "profile"
	PoseHips         PoseKey = "hips"
	PoseLeaning      PoseKey = "leaning"
	PoseWalking      PoseKey = "walking"
	PoseBustCloseup  PoseKey = "bust_closeup"
)

// poseKeysToGenerate - 변형 생성 우선순위 (default 제외)
var poseKeysToGenerate = []PoseKey{
	PoseThreeQuarter,
	PoseProfile,
	PoseHips,
	PoseLeaning,
	PoseWalking,
	PoseBustCloseup,
}

// allPoseOrder - 표시 fallback용 고정 순서 (map 순회 순서에 의존하면 표시 이미지가 흔들림)
var allPoseOrder = []PoseKey{
	PoseDefault,
	PoseThreeQuarter,
	PoseProfile,
	PoseHips,
	PoseLeaning,
	PoseWalking,
	PoseBustCloseup,
}

// GarmentSource - 의상 출처 구분 (id prefix 검사 대신 명시적 태그)
type GarmentSource string

const (
	SourceCatalog   GarmentSource = "catalog"   // 기본 카탈로그 아이템
	SourceUploaded  GarmentSource = "uploaded"  // 사용자 업로드 아이템
	SourceGenerated GarmentSource = "generated" // occasion 스타일링 결과
	SourceModified  GarmentSource = "modified"  // 텍스트 수정/헤어스타일 결과
)

// GarmentRef - 레이어에 기록되는 의상 참조
type GarmentRef struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Source   GarmentSource `json:"source"`
	ImageURL string        `json:"imageUrl,omitempty"`
}

// IsDerived - 생성/수정된 룩인지 (드레싱룸에 추가 가능한 대상)
func (g *GarmentRef) IsDerived() bool {
	return g != nil && (g.Source == SourceGenerated || g.Source == SourceModified)
}

// OutfitLayer - 아바타의 한 상태를 나타내는 레이어
// Garment가 nil이면 베이스 모델 레이어 (항상 index 0)
// 커밋된 레이어는 반드시 default 포즈 이미지를 가짐
type OutfitLayer struct {
	Garment          *GarmentRef        `json:"garment"`
	PoseImages       map[PoseKey]string `json:"poseImages"`
	GenerationPrompt string             `json:"generationPrompt,omitempty"`
}
