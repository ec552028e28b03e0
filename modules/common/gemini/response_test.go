package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"quel-tryon-server/modules/common/locale"
)

func blockedResponse(reason genai.BlockedReason, ratings ...*genai.SafetyRating) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
			BlockReason:        reason,
			BlockReasonMessage: "blocked by upstream",
			SafetyRatings:      ratings,
		},
	}
}

func TestCheckBlockedNilFeedback(t *testing.T) {
	assert.NoError(t, CheckBlocked(nil))
	assert.NoError(t, CheckBlocked(&genai.GenerateContentResponse{}))
}

func TestCheckBlockedUnspecifiedReasonPasses(t *testing.T) {
	resp := blockedResponse(genai.BlockedReasonUnspecified)
	assert.NoError(t, CheckBlocked(resp), "unspecified block reason is not fatal")
}

func TestCheckBlockedSafetyWithoutSevereRating(t *testing.T) {
	resp := blockedResponse(genai.BlockedReasonSafety,
		&genai.SafetyRating{Category: genai.HarmCategoryHarassment, Probability: genai.HarmProbabilityHigh},
		&genai.SafetyRating{Category: genai.HarmCategoryHateSpeech, Probability: genai.HarmProbabilityLow},
	)
	assert.NoError(t, CheckBlocked(resp), "safety block without severe MEDIUM+ rating passes")
}

func TestCheckBlockedSafetyWithSevereRating(t *testing.T) {
	severe := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	for _, category := range severe {
		resp := blockedResponse(genai.BlockedReasonSafety,
			&genai.SafetyRating{Category: category, Probability: genai.HarmProbabilityMedium})

		err := CheckBlocked(resp)
		require.Error(t, err, "category %s at MEDIUM must be fatal", category)

		var appErr *locale.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "errorApiBlocked", appErr.Key)
	}
}

func TestCheckBlockedOtherReasonFatal(t *testing.T) {
	resp := blockedResponse(genai.BlockedReasonBlocklist)
	err := CheckBlocked(resp)
	require.Error(t, err)

	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BLOCKLIST", appErr.Replacements["blockReason"])
	assert.Equal(t, "blocked by upstream", appErr.Replacements["blockReasonMessage"])
}

func TestExtractImageDataURL(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "some commentary"},
				{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{0x01, 0x02}}},
			}}},
		},
	}

	dataURL, ok := ExtractImageDataURL(resp)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/jpeg;base64,"))
}

func TestExtractImageDataURLDefaultsMIME(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{Data: []byte{0xFF}}},
			}}},
		},
	}

	dataURL, ok := ExtractImageDataURL(resp)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}

func TestExtractImageDataURLNoImage(t *testing.T) {
	_, ok := ExtractImageDataURL(nil)
	assert.False(t, ok)

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "text only"}}}},
		},
	}
	_, ok = ExtractImageDataURL(resp)
	assert.False(t, ok)
}

func TestClassifyEmptyResponseNonStopFinish(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety},
		},
	}

	err := ClassifyEmptyResponse(resp)
	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorModelStopped", appErr.Key)
	assert.Equal(t, "SAFETY", appErr.Replacements["finishReason"])
}

func TestClassifyEmptyResponseWithTextFeedback(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				FinishReason: genai.FinishReasonStop,
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "I cannot produce this image."},
				}},
			},
		},
	}

	err := ClassifyEmptyResponse(resp)
	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorNoImageWithText", appErr.Key)
	assert.Equal(t, "I cannot produce this image.", appErr.Replacements["text"])
}

func TestClassifyEmptyResponseGeneric(t *testing.T) {
	err := ClassifyEmptyResponse(nil)
	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorNoImage", appErr.Key)

	err = ClassifyEmptyResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
	})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorNoImage", appErr.Key)
}
