package gemini

import (
	"strings"

	"google.golang.org/genai"

	"quel-tryon-server/modules/common/locale"
	"quel-tryon-server/modules/common/utils"
)

// severeCategories - 치명적 차단으로 간주하는 안전 카테고리
var severeCategories = map[genai.HarmCategory]bool{
	genai.HarmCategoryHateSpeech:       true,
	genai.HarmCategorySexuallyExplicit: true,
	genai.HarmCategoryDangerousContent: true,
}

// CheckBlocked - 차단 응답 분류
// BlockReason이 unspecified면 무시하고 통과
// SAFETY 차단은 심각 카테고리가 MEDIUM 이상일 때만 치명적
func CheckBlocked(resp *genai.GenerateContentResponse) error {
	if resp == nil || resp.PromptFeedback == nil || resp.PromptFeedback.BlockReason == "" {
		return nil
	}

	feedback := resp.PromptFeedback
	shouldThrow := true

	if feedback.BlockReason == genai.BlockedReasonUnspecified {
		shouldThrow = false
	} else if feedback.BlockReason == genai.BlockedReasonSafety {
		if !hasSevereRating(feedback.SafetyRatings) {
			// 경미한 안전 등급은 노이즈로 취급
			shouldThrow = false
		}
	}

	if !shouldThrow {
		return nil
	}

	return locale.NewAppError("errorApiBlocked", map[string]string{
		"blockReason":        string(feedback.BlockReason),
		"blockReasonMessage": feedback.BlockReasonMessage,
	})
}

// hasSevereRating - 심각 카테고리가 MEDIUM/HIGH 확률에 도달했는지 확인
func hasSevereRating(ratings []*genai.SafetyRating) bool {
	for _, rating := range ratings {
		if rating == nil {
			continue
		}
		if !severeCategories[rating.Category] {
			continue
		}
		if rating.Probability == genai.HarmProbabilityMedium ||
			rating.Probability == genai.HarmProbabilityHigh {
			return true
		}
	}
	return false
}

// ExtractImageDataURL - 응답 후보들에서 첫 번째 inline 이미지를 data URL로 추출
func ExtractImageDataURL(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := part.InlineData.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return utils.PartsToDataURL(mimeType, part.InlineData.Data), true
		}
	}
	return "", false
}

// ClassifyEmptyResponse - 재시도 후에도 이미지가 없을 때의 에러 분류
// 1. 비정상 종료(finishReason != STOP)면 "생성 중단" 에러
// 2. 텍스트 피드백이 있으면 해당 텍스트를 포함한 에러
// 3. 둘 다 없으면 일반 "이미지 없음" 에러
func ClassifyEmptyResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return locale.NewAppError("errorNoImage", nil)
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if candidate.FinishReason != "" &&
			candidate.FinishReason != genai.FinishReasonStop {
			return locale.NewAppError("errorModelStopped", map[string]string{
				"finishReason": string(candidate.FinishReason),
			})
		}
	}

	if text := extractText(resp); text != "" {
		return locale.NewAppError("errorNoImageWithText", map[string]string{
			"text": text,
		})
	}

	return locale.NewAppError("errorNoImage", nil)
}

// extractText - 응답 후보들의 텍스트 파트 수집
func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
