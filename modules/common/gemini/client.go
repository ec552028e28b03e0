package gemini

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"quel-tryon-server/modules/common/config"
	"quel-tryon-server/modules/common/utils"
)

type Client struct {
	genaiClient *genai.Client
	model       string
}

// NewClient - Genai 클라이언트 초기화
func NewClient() *Client {
	cfg := config.GetConfig()

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ Failed to create Genai client: %v", err)
		return nil
	}

	log.Println("✅ Genai client initialized")
	return &Client{
		genaiClient: genaiClient,
		model:       cfg.GeminiModel,
	}
}

// dataURLToPart - data URL을 genai inline 파트로 변환 (원격 호출 전 입력 검증)
func dataURLToPart(dataURL string) (*genai.Part, error) {
	mimeType, data, err := utils.DataURLToParts(dataURL)
	if err != nil {
		return nil, err
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	}, nil
}

// GenerateModelImage - 사용자 사진으로 전신 모델 이미지 생성
func (c *Client) GenerateModelImage(ctx context.Context, userPhotoDataURL string) (string, error) {
	photoPart, err := dataURLToPart(userPhotoDataURL)
	if err != nil {
		return "", err
	}

	log.Printf("🎨 [Gemini] Generating base model image...")
	parts := []*genai.Part{photoPart, genai.NewPartFromText(modelSynthesisPrompt)}
	return c.generateImage(ctx, parts)
}

// GenerateTryOnImage - 현재 모델 이미지에 의상 합성
func (c *Client) GenerateTryOnImage(ctx context.Context, modelImageDataURL, garmentDataURL string) (string, error) {
	modelPart, err := dataURLToPart(modelImageDataURL)
	if err != nil {
		return "", err
	}
	garmentPart, err := dataURLToPart(garmentDataURL)
	if err != nil {
		return "", err
	}

	log.Printf("🎨 [Gemini] Compositing garment onto model...")
	parts := []*genai.Part{modelPart, garmentPart, genai.NewPartFromText(tryOnPrompt)}
	return c.generateImage(ctx, parts)
}

// GeneratePoseVariation - 포즈 변형 이미지 생성
func (c *Client) GeneratePoseVariation(ctx context.Context, tryOnImageDataURL, poseInstruction string) (string, error) {
	imagePart, err := dataURLToPart(tryOnImageDataURL)
	if err != nil {
		return "", err
	}

	log.Printf("🎨 [Gemini] Generating pose variation: %s", poseInstruction)
	parts := []*genai.Part{imagePart, genai.NewPartFromText(BuildPosePrompt(poseInstruction))}
	return c.generateImage(ctx, parts)
}

// EditImageWithText - 텍스트 지시로 이미지 수정 (occasion 스타일링/헤어스타일도 이 경로 사용)
func (c *Client) EditImageWithText(ctx context.Context, baseImageDataURL, instruction string) (string, error) {
	imagePart, err := dataURLToPart(baseImageDataURL)
	if err != nil {
		return "", err
	}

	log.Printf("🎨 [Gemini] Editing image with instruction (%d chars)", len(instruction))
	parts := []*genai.Part{imagePart, genai.NewPartFromText(BuildEditPrompt(instruction))}
	return c.generateImage(ctx, parts)
}

// GenerateOutfitForOccasion - 베이스 모델에 occasion 의상 스타일링
func (c *Client) GenerateOutfitForOccasion(ctx context.Context, baseModelDataURL, occasion string) (string, error) {
	imagePart, err := dataURLToPart(baseModelDataURL)
	if err != nil {
		return "", err
	}

	log.Printf("🎨 [Gemini] Styling outfit for occasion: %s", occasion)
	parts := []*genai.Part{imagePart, genai.NewPartFromText(BuildOccasionPrompt(occasion))}
	return c.generateImage(ctx, parts)
}

// generateImage - 공통 생성 경로: 호출 → 차단 분류 → 이미지 추출 → 빈 응답 시 1회 재시도
func (c *Client) generateImage(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{{Parts: parts}}
	genConfig := &genai.GenerateContentConfig{
		Temperature: floatPtr(0.5), // 일관성을 위해 낮은 temperature
	}

	var lastResp *genai.GenerateContentResponse

	// 빈 응답(이미지 없음)은 동일 호출을 정확히 1회 재시도
	for attempt := 1; attempt <= 2; attempt++ {
		resp, err := GenerateContentWithRetry(ctx, c.genaiClient, c.model, contents, genConfig)
		if err != nil {
			return "", fmt.Errorf("gemini request failed: %w", err)
		}

		// 차단 분류 - 치명적 차단만 에러
		if err := CheckBlocked(resp); err != nil {
			return "", err
		}

		if dataURL, ok := ExtractImageDataURL(resp); ok {
			return dataURL, nil
		}

		lastResp = resp
		if attempt == 1 {
			log.Printf("⚠️ [Gemini] No image in response, retrying once...")
		}
	}

	return "", ClassifyEmptyResponse(lastResp)
}

// floatPtr - float32 포인터 헬퍼
func floatPtr(f float32) *float32 {
	return &f
}
