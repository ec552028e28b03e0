package tryon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseLayerImages() map[PoseKey]string {
	return map[PoseKey]string{
		PoseDefault:      "img-base-default",
		PoseThreeQuarter: "img-base-3q",
	}
}

func garmentLayer(id string) OutfitLayer {
	return OutfitLayer{
		Garment: &GarmentRef{ID: id, Name: "Item " + id, Source: SourceCatalog},
		PoseImages: map[PoseKey]string{
			PoseDefault: "img-" + id + "-default",
		},
	}
}

func newHistoryWithModel(t *testing.T) *OutfitHistory {
	t.Helper()
	h := &OutfitHistory{}
	require.NoError(t, h.FinalizeModel(baseLayerImages()))
	return h
}

func TestFinalizeModelRequiresDefaultPose(t *testing.T) {
	h := &OutfitHistory{}
	err := h.FinalizeModel(map[PoseKey]string{PoseThreeQuarter: "img"})
	assert.Error(t, err)
	assert.False(t, h.HasModel())
}

func TestFinalizeModelOnlyFromEmptyHistory(t *testing.T) {
	h := newHistoryWithModel(t)
	assert.Equal(t, 1, h.Length())
	assert.Equal(t, 0, h.Position())
	assert.Equal(t, PoseDefault, h.CurrentPoseKey())

	layer, ok := h.CurrentLayer()
	require.True(t, ok)
	assert.Nil(t, layer.Garment, "base layer carries no garment")

	// 이미 모델이 있으면 다시 확정 불가 - Reset 후에만 가능
	assert.Error(t, h.FinalizeModel(baseLayerImages()))

	h.Reset()
	assert.NoError(t, h.FinalizeModel(baseLayerImages()))
}

func TestAppendLayerWithoutModel(t *testing.T) {
	h := &OutfitHistory{}
	assert.Error(t, h.AppendLayer(garmentLayer("tee")))
}

func TestAppendLayerAdvancesAndResetsPose(t *testing.T) {
	h := newHistoryWithModel(t)
	require.True(t, h.SelectPose(PoseThreeQuarter))

	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	assert.Equal(t, 1, h.Position())
	assert.Equal(t, PoseDefault, h.CurrentPoseKey(), "pose resets on append")
	assert.Equal(t, []string{"tee"}, h.ActiveGarmentIDs())
}

func TestAppendTruncatesForwardLayers(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	require.NoError(t, h.AppendLayer(garmentLayer("jacket")))
	require.True(t, h.RemoveLastLayer())
	require.True(t, h.RemoveLastLayer())

	// position 0에서 새 레이어 추가 - tee/jacket은 잘려나감
	require.NoError(t, h.AppendLayer(garmentLayer("dress")))
	assert.Equal(t, 2, h.Length())
	assert.Equal(t, []string{"dress"}, h.ActiveGarmentIDs())
}

func TestRemoveLastLayerPreservesForRedo(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	require.True(t, h.SelectPose(PoseDefault) || h.CurrentPoseKey() == PoseDefault)

	require.True(t, h.RemoveLastLayer())
	assert.Equal(t, 0, h.Position())
	assert.Equal(t, 2, h.Length(), "removed layer stays for redo")
	assert.Empty(t, h.ActiveGarmentIDs())

	// 베이스 레이어는 제거 불가
	assert.False(t, h.RemoveLastLayer())
}

func TestTryRedoMatchingGarment(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	require.True(t, h.RemoveLastLayer())

	assert.True(t, h.TryRedo("tee"))
	assert.Equal(t, 1, h.Position())
	assert.Equal(t, []string{"tee"}, h.ActiveGarmentIDs())

	// 레이어가 그대로 재사용됨 - 포즈 이미지 불변
	layer, ok := h.CurrentLayer()
	require.True(t, ok)
	assert.Equal(t, "img-tee-default", layer.PoseImages[PoseDefault])
}

func TestTryRedoMismatch(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	require.True(t, h.RemoveLastLayer())

	assert.False(t, h.TryRedo("jacket"))
	assert.Equal(t, 0, h.Position())

	// 앞쪽에 레이어가 없을 때도 false
	assert.True(t, h.TryRedo("tee"))
	assert.False(t, h.TryRedo("tee"))
}

func TestResetWithStyledLayerReplacesHistory(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))
	require.NoError(t, h.AppendLayer(garmentLayer("jacket")))

	styled := OutfitLayer{
		Garment:    &GarmentRef{ID: "look-1", Name: "AI Generated Look", Source: SourceGenerated},
		PoseImages: map[PoseKey]string{PoseDefault: "img-styled"},
	}
	require.NoError(t, h.ResetWithStyledLayer(styled))

	assert.Equal(t, 2, h.Length(), "history becomes [base, styled]")
	assert.Equal(t, 1, h.Position())
	assert.Equal(t, []string{"look-1"}, h.ActiveGarmentIDs())
	assert.Equal(t, "img-base-default", h.BaseModelImage(), "base layer survives")
}

func TestSelectPoseRequiresImage(t *testing.T) {
	h := newHistoryWithModel(t)

	assert.True(t, h.SelectPose(PoseThreeQuarter))
	assert.Equal(t, PoseThreeQuarter, h.CurrentPoseKey())

	// 이미지가 없는 포즈는 전환 불가
	assert.False(t, h.SelectPose(PoseWalking))
	assert.Equal(t, PoseThreeQuarter, h.CurrentPoseKey())

	// 같은 포즈 재선택은 no-op
	assert.False(t, h.SelectPose(PoseThreeQuarter))
}

func TestSetPoseImageAddsAndSelects(t *testing.T) {
	h := newHistoryWithModel(t)

	h.SetPoseImage(PoseWalking, "img-walking")
	assert.Equal(t, PoseWalking, h.CurrentPoseKey())
	assert.Equal(t, "img-walking", h.CurrentDisplayImage())
}

func TestCurrentDisplayImageFallbackOrder(t *testing.T) {
	h := &OutfitHistory{}
	require.NoError(t, h.FinalizeModel(map[PoseKey]string{
		PoseDefault: "img-default",
		PoseWalking: "img-walking",
		PoseProfile: "img-profile",
	}))
	require.NoError(t, h.AppendLayer(OutfitLayer{
		Garment: &GarmentRef{ID: "tee", Source: SourceCatalog},
		PoseImages: map[PoseKey]string{
			PoseDefault: "img-tee-default",
			PoseHips:    "img-tee-hips",
		},
	}))
	require.True(t, h.SelectPose(PoseHips))
	require.True(t, h.RemoveLastLayer())
	require.True(t, h.TryRedo("tee"))

	// redo 후 포즈는 default - 선택 이미지 존재
	assert.Equal(t, "img-tee-default", h.CurrentDisplayImage())

	// 선택 포즈 이미지가 사라진 상황에서는 고정 순서의 첫 이미지
	layer := &h.layers[h.position]
	delete(layer.PoseImages, PoseDefault)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "img-tee-hips", h.CurrentDisplayImage(), "fallback must be deterministic")
	}
}

func TestActiveLayersExcludesForwardHistory(t *testing.T) {
	h := newHistoryWithModel(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, h.AppendLayer(garmentLayer(fmt.Sprintf("item-%d", i))))
	}
	require.True(t, h.RemoveLastLayer())

	active := h.ActiveLayers()
	assert.Len(t, active, 3, "base + two garments")
	assert.Equal(t, []string{"item-0", "item-1"}, h.ActiveGarmentIDs())
}

func TestSnapshotsDoNotAliasLiveHistory(t *testing.T) {
	h := newHistoryWithModel(t)

	active := h.ActiveLayers()
	layer, ok := h.CurrentLayer()
	require.True(t, ok)

	// 이후 커밋이 이미 내보낸 복사본에 보이면 안 됨
	h.SetPoseImage(PoseWalking, "img-walking")

	assert.NotContains(t, active[0].PoseImages, PoseWalking)
	assert.NotContains(t, layer.PoseImages, PoseWalking)
	assert.Equal(t, "img-walking", h.CurrentDisplayImage())

	// 반대 방향도 - 복사본 수정이 히스토리를 건드리면 안 됨
	active[0].PoseImages[PoseDefault] = "tampered"
	assert.Equal(t, "img-base-default", h.layers[0].PoseImages[PoseDefault])
}

func TestResetClearsEverything(t *testing.T) {
	h := newHistoryWithModel(t)
	require.NoError(t, h.AppendLayer(garmentLayer("tee")))

	h.Reset()
	assert.False(t, h.HasModel())
	assert.Empty(t, h.CurrentDisplayImage())
	assert.Nil(t, h.ActiveLayers())
}
