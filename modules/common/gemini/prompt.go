package gemini

import "fmt"

// modelSynthesisPrompt - 사용자 사진 → 전신 패션 모델 이미지 생성 프롬프트
const modelSynthesisPrompt = "[VIRTUAL TRY-ON MODEL CREATION]\n" +
	"You are a professional fashion photographer creating a clean e-commerce model photo.\n" +
	"Transform the person in this photo into a full-body fashion model shot:\n" +
	"• PRESERVE IDENTITY - the person's face, skin tone, body shape, and hair must stay EXACTLY the same\n" +
	"• FULL BODY SHOT - entire body from head to toe visible in frame, feet NOT cut off\n" +
	"• Neutral standing pose, facing the camera, relaxed arms\n" +
	"• Simple neutral studio background (light gray), soft even lighting\n" +
	"• Keep the person's current clothing as-is\n" +
	"• Photorealistic, natural proportions - NO distortion\n" +
	"Return ONLY the generated photograph."

// tryOnPrompt - 의상 합성 프롬프트 (첫 이미지: 모델, 둘째 이미지: 의상)
const tryOnPrompt = "[VIRTUAL TRY-ON]\n" +
	"The first image is the model. The second image is a garment product photo.\n" +
	"Dress the model in this garment:\n" +
	"• The garment must replace the corresponding clothing item the model currently wears\n" +
	"• Keep every other clothing item, the pose, the face, the body, and the background UNCHANGED\n" +
	"• Realistic fit, drape, and fabric behavior on the model's body\n" +
	"• Preserve the garment's exact color, pattern, and details\n" +
	"Return ONLY the final photograph of the model wearing the garment."

// BuildPosePrompt - 포즈 변형 프롬프트 생성
func BuildPosePrompt(poseInstruction string) string {
	return "[POSE VARIATION]\n" +
		"Regenerate this exact model photo with a different pose: " + poseInstruction + ".\n" +
		"• SAME person, SAME outfit, SAME background, SAME lighting\n" +
		"• Only the body pose and camera framing may change\n" +
		"Return ONLY the photograph."
}

// BuildEditPrompt - 텍스트 수정 프롬프트 생성
func BuildEditPrompt(instruction string) string {
	return "[IMAGE EDIT]\n" +
		"Apply the following change to this model photo: " + instruction + "\n" +
		"• Keep the person's identity, body, pose, and everything not mentioned UNCHANGED\n" +
		"• Photorealistic result\n" +
		"Return ONLY the edited photograph."
}

// BuildOccasionPrompt - occasion 스타일링 프롬프트 생성 (베이스 모델 기준 전체 의상 교체)
func BuildOccasionPrompt(occasion string) string {
	return fmt.Sprintf("[OCCASION STYLING]\n"+
		"You are a personal stylist. Dress this model in a complete, stylish outfit appropriate for: %s.\n"+
		"• Replace the entire outfit - top, bottom, shoes, and accessories as needed\n"+
		"• Keep the person's face, hair, body, pose, and background UNCHANGED\n"+
		"• The outfit must be cohesive and fashionable\n"+
		"Return ONLY the photograph of the styled model.", occasion)
}
