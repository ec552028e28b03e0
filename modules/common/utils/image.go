package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록
	"net/http"
	"strings"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"quel-tryon-server/modules/common/locale"
)

// DataURLToParts - data URL을 MIME 타입과 바이너리로 분해
// 분해 → 재조립 시 바이트가 보존되어야 함 (lossless round-trip)
func DataURLToParts(dataURL string) (mimeType string, data []byte, err error) {
	arr := strings.SplitN(dataURL, ",", 2)
	if len(arr) < 2 {
		return "", nil, locale.NewAppError("errorInvalidDataURL", nil)
	}

	header := arr[0]
	if !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, locale.NewAppError("errorMimeParse", nil)
	}
	mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if mimeType == "" {
		return "", nil, locale.NewAppError("errorMimeParse", nil)
	}

	data, err = base64.StdEncoding.DecodeString(arr[1])
	if err != nil {
		return "", nil, locale.NewAppError("errorInvalidDataURL", nil)
	}
	return mimeType, data, nil
}

// PartsToDataURL - MIME 타입과 바이너리를 data URL로 조립
func PartsToDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DetectImageMIME - 바이너리에서 이미지 MIME 타입 감지
func DetectImageMIME(data []byte) (string, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", locale.NewAppError("errorUnsupportedMIME", map[string]string{"mimeType": mimeType})
	}
	return mimeType, nil
}

// ConvertImageToWebP - 이미지 바이너리(PNG/JPEG)를 WebP로 변환
func ConvertImageToWebP(imageData []byte, quality float32) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	return webpBuffer.Bytes(), nil
}
