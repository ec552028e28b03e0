package tryon

import "fmt"

// poseInstructions - 포즈 키 → 생성 지시 텍스트
var poseInstructions = map[PoseKey]string{
	PoseDefault:      "Standing straight, facing the camera, relaxed arms",
	PoseThreeQuarter: "Turned at a slight 3/4 angle to the camera",
	PoseProfile:      "Full side profile view",
	PoseHips:         "Standing with hands on hips, confident stance",
	PoseLeaning:      "Leaning casually against a plain wall",
	PoseWalking:      "Mid-stride, walking towards the camera",
	PoseBustCloseup:  "Close-up framing from the chest up",
}

// PoseInstruction - 포즈 변형 프롬프트에 들어가는 지시 텍스트
func PoseInstruction(key PoseKey) string {
	if instruction, ok := poseInstructions[key]; ok {
		return instruction
	}
	return poseInstructions[PoseDefault]
}

// IsValidPoseKey - API 입력 검증용
func IsValidPoseKey(key PoseKey) bool {
	_, ok := poseInstructions[key]
	return ok
}

// OccasionPreset - occasion 스타일링 프리셋
// Prompt는 항상 영어로 모델에 전달 (UI 언어와 무관하게 생성 품질 일정)
type OccasionPreset struct {
	Key    string `json:"key"`
	Prompt string `json:"prompt"`
}

var occasionPresets = []OccasionPreset{
	{Key: "occasion_wedding_guest", Prompt: "a wedding as a guest"},
	{Key: "occasion_job_interview", Prompt: "a formal job interview"},
	{Key: "occasion_casual_weekend", Prompt: "a relaxed casual weekend outing"},
	{Key: "occasion_date_night", Prompt: "a romantic date night dinner"},
	{Key: "occasion_business_meeting", Prompt: "an important business meeting"},
	{Key: "occasion_beach_vacation", Prompt: "a summer beach vacation"},
	{Key: "occasion_evening_gala", Prompt: "an elegant evening gala"},
	{Key: "occasion_music_festival", Prompt: "an outdoor music festival"},
}

// OccasionPresets - 프리셋 목록 (카탈로그 API 응답용)
func OccasionPresets() []OccasionPreset {
	return occasionPresets
}

// LookupOccasion - 프리셋 키로 조회, 미등록 키는 자유 텍스트로 간주
func LookupOccasion(keyOrText string) string {
	for _, preset := range occasionPresets {
		if preset.Key == keyOrText {
			return preset.Prompt
		}
	}
	return keyOrText
}

// Hairstyle - 헤어스타일 카탈로그 항목
type Hairstyle struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

var hairstyleCatalog = []Hairstyle{
	{Key: "hairstyle_bob_cut", Name: "Bob Cut"},
	{Key: "hairstyle_pixie_cut", Name: "Pixie Cut"},
	{Key: "hairstyle_lob", Name: "Long Bob"},
	{Key: "hairstyle_layered", Name: "Layered Cut"},
	{Key: "hairstyle_shag", Name: "Shag Cut"},
	{Key: "hairstyle_rachel", Name: "The Rachel"},
	{Key: "hairstyle_french_bob", Name: "French Bob"},
	{Key: "hairstyle_pageboy", Name: "Pageboy"},
	{Key: "hairstyle_pompadour", Name: "Pompadour"},
	{Key: "hairstyle_bangs", Name: "Curtain Bangs"},
	{Key: "hairstyle_textured_short", Name: "Textured Short Cut"},
	{Key: "hairstyle_undone_waves", Name: "Undone Waves"},
	{Key: "hairstyle_natural_afro", Name: "Natural Afro"},
	{Key: "hairstyle_braids", Name: "Box Braids"},
	{Key: "hairstyle_low_bun", Name: "Low Bun"},
	{Key: "hairstyle_ponytail", Name: "High Ponytail"},
	{Key: "hairstyle_modern_mullet", Name: "Modern Mullet"},
	{Key: "hairstyle_buzz_cut", Name: "Buzz Cut"},
	{Key: "hairstyle_coloration", Name: "Fresh Coloration"},
	{Key: "hairstyle_long_natural", Name: "Long Natural"},
}

// HairstyleCatalog - 헤어스타일 목록 (카탈로그 API 응답용)
func HairstyleCatalog() []Hairstyle {
	return hairstyleCatalog
}

// LookupHairstyle - 키로 헤어스타일 조회
func LookupHairstyle(key string) (Hairstyle, bool) {
	for _, style := range hairstyleCatalog {
		if style.Key == key {
			return style, true
		}
	}
	return Hairstyle{}, false
}

// BuildHairstyleInstruction - 헤어스타일 변경 지시문
// 얼굴/머리색/의상/배경 보존 제약을 명시해야 편집 범위가 머리 모양에 갇힘
func BuildHairstyleInstruction(style Hairstyle) string {
	return fmt.Sprintf(`Change the hairstyle to a "%s". CRITICAL: Do NOT change the person's face, hair color, outfit, or the background. Only modify the hairstyle shape and cut.`, style.Name)
}
