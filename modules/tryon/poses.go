package tryon

import (
	"context"
	"log"
	"sync"
)

// poseVarier - 포즈 변형 생성에 필요한 최소 인터페이스
type poseVarier interface {
	GeneratePoseVariation(ctx context.Context, baseImageDataURL, poseInstruction string) (string, error)
}

// GeneratePoseVariations - 포즈 세트 생성
// count <= 1이면 원격 호출 없이 {default: base}만 반환
// 나머지는 동시 요청하고 실패한 포즈는 로그만 남기고 누락 (부분 실패 허용)
// 에러를 반환하지 않음 - default는 항상 존재
func GeneratePoseVariations(ctx context.Context, gw poseVarier, baseImageDataURL string, count int) map[PoseKey]string {
	result := map[PoseKey]string{
		PoseDefault: baseImageDataURL,
	}

	if count <= 1 || gw == nil {
		return result
	}

	variations := count - 1
	if variations > len(poseKeysToGenerate) {
		variations = len(poseKeysToGenerate)
	}

	log.Printf("🔄 [Poses] Generating %d pose variations concurrently", variations)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, key := range poseKeysToGenerate[:variations] {
		wg.Add(1)
		go func(key PoseKey) {
			defer wg.Done()

			dataURL, err := gw.GeneratePoseVariation(ctx, baseImageDataURL, PoseInstruction(key))
			if err != nil {
				// 한 포즈 실패가 전체를 망치지 않음
				log.Printf("⚠️ [Poses] Variation %s failed: %v", key, err)
				return
			}

			mu.Lock()
			result[key] = dataURL
			mu.Unlock()
		}(key)
	}

	wg.Wait()

	log.Printf("✅ [Poses] %d/%d variations succeeded", len(result)-1, variations)
	return result
}
