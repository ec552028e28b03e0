package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quel-tryon-server/modules/common/locale"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURLRoundTrip(t *testing.T) {
	original := testPNG(t)
	dataURL := PartsToDataURL("image/png", original)

	mimeType, data, err := DataURLToParts(dataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, original, data, "round-trip must preserve bytes exactly")
}

func TestDataURLToPartsMissingComma(t *testing.T) {
	_, _, err := DataURLToParts("data:image/png;base64")

	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorInvalidDataURL", appErr.Key)
}

func TestDataURLToPartsBadHeader(t *testing.T) {
	cases := []string{
		"image/png;base64,AAAA",
		"data:image/png,AAAA",
		"data:;base64,AAAA",
	}
	for _, dataURL := range cases {
		_, _, err := DataURLToParts(dataURL)

		var appErr *locale.AppError
		require.ErrorAs(t, err, &appErr, "input: %s", dataURL)
		assert.Equal(t, "errorMimeParse", appErr.Key, "input: %s", dataURL)
	}
}

func TestDataURLToPartsBadBase64(t *testing.T) {
	_, _, err := DataURLToParts("data:image/png;base64,not-base64!!!")

	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorInvalidDataURL", appErr.Key)
}

func TestDetectImageMIME(t *testing.T) {
	mimeType, err := DetectImageMIME(testPNG(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestDetectImageMIMERejectsNonImage(t *testing.T) {
	_, err := DetectImageMIME([]byte("<!DOCTYPE html><html></html>"))

	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "errorUnsupportedMIME", appErr.Key)
}

func TestConvertImageToWebP(t *testing.T) {
	webpData, err := ConvertImageToWebP(testPNG(t), 80)
	require.NoError(t, err)
	require.NotEmpty(t, webpData)

	// WebP 컨테이너는 RIFF....WEBP로 시작
	assert.Equal(t, "RIFF", string(webpData[:4]))
	assert.Equal(t, "WEBP", string(webpData[8:12]))
}

func TestConvertImageToWebPBadInput(t *testing.T) {
	_, err := ConvertImageToWebP([]byte("not an image"), 80)
	assert.Error(t, err)
}
