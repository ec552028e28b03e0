package locale

import (
	"encoding/json"
	"errors"
	"strings"
)

// Lang - 지원 언어
type Lang string

const (
	LangEN Lang = "en"
	LangKO Lang = "ko"
)

// AppError - 메시지 카탈로그 키를 담는 에러
// 에러 문자열 자체가 번역 키이고, Replacements는 {placeholder} 치환용
type AppError struct {
	Key          string
	Replacements map[string]string
}

func (e *AppError) Error() string {
	return e.Key
}

// NewAppError - 카탈로그 키 기반 에러 생성
func NewAppError(key string, replacements map[string]string) *AppError {
	return &AppError{Key: key, Replacements: replacements}
}

// 번역 카탈로그 (en이 기준, ko는 원본 앱의 한국어 문구)
var catalogs = map[Lang]map[string]string{
	LangEN: {
		"errorGeneric":                "An unexpected error occurred. Please try again.",
		"errorInvalidDataURL":         "The image data URL is invalid.",
		"errorMimeParse":              "Could not determine the image MIME type.",
		"errorApiBlocked":             "The request was blocked ({blockReason}). {blockReasonMessage}",
		"errorModelStopped":           "Image generation stopped unexpectedly ({finishReason}).",
		"errorNoImageWithText":        "The model returned no image: {text}",
		"errorNoImage":                "The model produced no image. Please try a different photo.",
		"errorUnsupportedMIME":        "Unsupported image type: {mimeType}. Please use PNG or JPEG.",
		"errorUnsupportedMIMEFallback": "Unsupported image type. Please use PNG or JPEG.",
		"errorTooBusy":                "Another generation is already in progress.",
		"errorNoModel":                "Create a model photo first.",
		"errorSessionReset":           "The session was reset while generating.",
		"addingGarment":               "Adding {garmentName}...",
		"generatingVariations":        "Generating pose variations...",
		"generatingModel":             "Creating your model...",
		"generatingLook":              "Styling your look...",
		"modifyingLook":               "Applying your edit...",
		"generatedLook":               "AI Generated Look",
		"modifiedLook":                "Modified Look",
		"generatedOutfitName":         "Look: {prompt}",
		"modifiedOutfitName":          "Edit: {prompt}",
	},
	LangKO: {
		"errorGeneric":                "알 수 없는 오류가 발생했습니다. 다시 시도해 주세요.",
		"errorInvalidDataURL":         "이미지 데이터 URL이 올바르지 않습니다.",
		"errorMimeParse":              "이미지 MIME 타입을 확인할 수 없습니다.",
		"errorApiBlocked":             "요청이 차단되었습니다 ({blockReason}). {blockReasonMessage}",
		"errorModelStopped":           "이미지 생성이 중단되었습니다 ({finishReason}).",
		"errorNoImageWithText":        "모델이 이미지를 반환하지 않았습니다: {text}",
		"errorNoImage":                "이미지가 생성되지 않았습니다. 다른 사진으로 시도해 주세요.",
		"errorUnsupportedMIME":        "지원하지 않는 이미지 형식입니다: {mimeType}. PNG 또는 JPEG를 사용해 주세요.",
		"errorUnsupportedMIMEFallback": "지원하지 않는 이미지 형식입니다. PNG 또는 JPEG를 사용해 주세요.",
		"errorTooBusy":                "이미 다른 생성 작업이 진행 중입니다.",
		"errorNoModel":                "먼저 모델 사진을 생성해 주세요.",
		"errorSessionReset":           "생성 중에 세션이 초기화되었습니다.",
		"addingGarment":               "{garmentName} 입히는 중...",
		"generatingVariations":        "포즈 변형 생성 중...",
		"generatingModel":             "모델 생성 중...",
		"generatingLook":              "스타일 생성 중...",
		"modifyingLook":               "수정 적용 중...",
		"generatedLook":               "AI 생성 룩",
		"modifiedLook":                "수정된 룩",
		"generatedOutfitName":         "룩: {prompt}",
		"modifiedOutfitName":          "수정: {prompt}",
	},
}

// T - 카탈로그 키 번역 ({placeholder} 치환 포함)
// 키가 카탈로그에 없으면 키 그대로 반환
func T(lang Lang, key string, replacements map[string]string) string {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs[LangEN]
	}
	msg, ok := catalog[key]
	if !ok {
		// en fallback
		if msg, ok = catalogs[LangEN][key]; !ok {
			return key
		}
	}
	for k, v := range replacements {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

// IsCatalogKey - 문자열이 카탈로그 키인지 확인
func IsCatalogKey(s string) bool {
	_, ok := catalogs[LangEN][s]
	return ok
}

// FriendlyErrorMessage - 에러를 사용자 노출용 메시지로 변환
// 1. AppError면 키 + 치환으로 번역
// 2. 에러 문자열이 카탈로그 키면 번역
// 3. "Unsupported MIME type" 휴리스틱 (중첩 JSON error.message 파싱)
// 4. 그 외에는 원본 메시지 그대로
func FriendlyErrorMessage(err error, lang Lang) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return T(lang, appErr.Key, appErr.Replacements)
	}

	raw := err.Error()
	if IsCatalogKey(raw) {
		return T(lang, raw, nil)
	}

	if strings.Contains(raw, "Unsupported MIME type") {
		if mimeType := extractUnsupportedMIME(raw); mimeType != "" {
			return T(lang, "errorUnsupportedMIME", map[string]string{"mimeType": mimeType})
		}
		return T(lang, "errorUnsupportedMIMEFallback", nil)
	}

	return raw
}

// extractUnsupportedMIME - API 에러 JSON에서 MIME 타입 추출
func extractUnsupportedMIME(raw string) string {
	var wrapper struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	start := strings.Index(raw, "{")
	if start < 0 {
		return ""
	}
	if err := json.Unmarshal([]byte(raw[start:]), &wrapper); err != nil {
		return ""
	}
	msg := wrapper.Error.Message
	if !strings.Contains(msg, "Unsupported MIME type") {
		return ""
	}
	parts := strings.SplitN(msg, ": ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return ""
	}
	return parts[1]
}
