package tryon

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quel-tryon-server/modules/common/locale"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 10 * time.Millisecond
)

// fakeGateway - 워크플로우 테스트용 게이트웨이
type fakeGateway struct {
	mu            sync.Mutex
	modelCalls    int
	tryOnCalls    int
	poseCalls     int
	editCalls     int
	occasionCalls int

	err     error
	poseErr error  // 포즈 변형만 실패시킬 때
	onTryOn func() // 합성 호출 중 훅 (start over 경쟁 재현용)
	block   chan struct{}
}

func (f *fakeGateway) GenerateModelImage(ctx context.Context, userPhoto string) (string, error) {
	f.mu.Lock()
	f.modelCalls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	return "model-img", nil
}

func (f *fakeGateway) GenerateTryOnImage(ctx context.Context, modelImage, garmentImage string) (string, error) {
	f.mu.Lock()
	f.tryOnCalls++
	hook := f.onTryOn
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.err != nil {
		return "", f.err
	}
	return "tryon:" + garmentImage, nil
}

func (f *fakeGateway) GeneratePoseVariation(ctx context.Context, baseImage, instruction string) (string, error) {
	f.mu.Lock()
	f.poseCalls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.poseErr != nil {
		return "", f.poseErr
	}
	return "pose:" + instruction, nil
}

func (f *fakeGateway) EditImageWithText(ctx context.Context, baseImage, instruction string) (string, error) {
	f.mu.Lock()
	f.editCalls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "edit:" + instruction, nil
}

func (f *fakeGateway) GenerateOutfitForOccasion(ctx context.Context, baseImage, occasion string) (string, error) {
	f.mu.Lock()
	f.occasionCalls++
	f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "occasion:" + occasion, nil
}

func newTestService(t *testing.T, gw Gateway, poseCount int) (*Service, *Session) {
	t.Helper()
	sessions := NewSessionManager()
	service := NewService(gw, sessions, nil, NewProgressHub(), poseCount)
	return service, sessions.Create()
}

func mustCreateModel(t *testing.T, service *Service, sess *Session) {
	t.Helper()
	require.NoError(t, service.CreateModel(context.Background(), sess, locale.LangEN, "data:image/png;base64,AA=="))
}

func assertAppErrorKey(t *testing.T, err error, key string) {
	t.Helper()
	var appErr *locale.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, key, appErr.Key)
}

func TestCreateModelBuildsBaseLayer(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 3)

	mustCreateModel(t, service, sess)

	state := service.Snapshot(sess)
	assert.True(t, state.HasModel)
	assert.False(t, state.IsLoading)
	assert.Equal(t, PoseDefault, state.CurrentPoseKey)
	assert.Equal(t, "model-img", state.DisplayImage)
	assert.Len(t, state.AvailablePoses, 3, "default + 2 variations")
	assert.Equal(t, 1, fake.modelCalls)
	assert.Equal(t, 2, fake.poseCalls)
}

func TestApplyGarmentAppendsLayer(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	garment := GarmentRef{ID: "blue-jeans", Name: "Blue Jeans", Source: SourceCatalog}
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "garment-img"))

	state := service.Snapshot(sess)
	assert.Equal(t, []string{"blue-jeans"}, state.ActiveGarmentIDs)
	assert.Equal(t, "tryon:garment-img", state.DisplayImage)
	assert.True(t, state.CanUndo)
	assert.Equal(t, 1, fake.tryOnCalls)
}

func TestApplyGarmentWithoutModel(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)

	garment := GarmentRef{ID: "blue-jeans", Source: SourceCatalog}
	err := service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "garment-img")

	assertAppErrorKey(t, err, "errorNoModel")
	assert.Zero(t, fake.tryOnCalls)
}

func TestApplyGarmentRedoSkipsGeneration(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	garment := GarmentRef{ID: "blue-jeans", Name: "Blue Jeans", Source: SourceCatalog}
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "garment-img"))
	require.True(t, service.RemoveLastLayer(sess))
	callsBefore := fake.tryOnCalls

	// 같은 의상 재적용 - redo로 처리되어 원격 호출 없음
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "garment-img"))

	state := service.Snapshot(sess)
	assert.Equal(t, []string{"blue-jeans"}, state.ActiveGarmentIDs)
	assert.Equal(t, callsBefore, fake.tryOnCalls, "redo must not regenerate")
}

func TestApplyGarmentSurvivesPoseVariationFailures(t *testing.T) {
	fake := &fakeGateway{poseErr: errors.New("pose generation down")}
	service, sess := newTestService(t, fake, 4)
	mustCreateModel(t, service, sess)

	garment := GarmentRef{ID: "jacket", Name: "Jacket", Source: SourceCatalog}
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "jacket-img"))

	state := service.Snapshot(sess)
	assert.Equal(t, []string{"jacket"}, state.ActiveGarmentIDs)
	assert.Equal(t, []PoseKey{PoseDefault}, state.AvailablePoses,
		"layer commits with default only when every variation fails")
	assert.Equal(t, "tryon:jacket-img", state.DisplayImage)
}

func TestConcurrentWorkflowRejected(t *testing.T) {
	fake := &fakeGateway{block: make(chan struct{})}
	service, sess := newTestService(t, fake, 1)

	done := make(chan error, 1)
	go func() {
		done <- service.CreateModel(context.Background(), sess, locale.LangEN, "photo")
	}()

	// 첫 워크플로우가 게이트웨이에서 블록될 때까지 대기
	require.Eventually(t, func() bool {
		return service.Snapshot(sess).IsLoading
	}, waitTimeout, pollInterval)

	err := service.CreateModel(context.Background(), sess, locale.LangEN, "photo")
	assertAppErrorKey(t, err, "errorTooBusy")

	close(fake.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fake.modelCalls, "rejected workflow never reaches the gateway")
}

func TestWorkflowErrorLeavesHistoryUntouched(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)
	before := service.Snapshot(sess)

	fake.err = errors.New("upstream exploded")
	garment := GarmentRef{ID: "trench-coat", Source: SourceCatalog}
	err := service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "garment-img")
	require.Error(t, err)

	after := service.Snapshot(sess)
	assert.Equal(t, before.ActiveGarmentIDs, after.ActiveGarmentIDs)
	assert.Equal(t, before.DisplayImage, after.DisplayImage)
	assert.False(t, after.IsLoading)
	assert.NotEmpty(t, after.LastError)
}

func TestOccasionStylingResetsHistory(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN,
		GarmentRef{ID: "tee", Source: SourceCatalog}, "tee-img"))
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN,
		GarmentRef{ID: "jacket", Source: SourceCatalog}, "jacket-img"))

	require.NoError(t, service.GenerateForOccasion(context.Background(), sess, locale.LangEN, "occasion_job_interview"))

	state := service.Snapshot(sess)
	assert.Len(t, state.ActiveLayers, 2, "history collapses to [base, styled]")
	require.Len(t, state.ActiveGarmentIDs, 1)
	assert.Equal(t, SourceGenerated, state.ActiveLayers[1].Garment.Source)
	assert.Equal(t, "occasion:a formal job interview", state.DisplayImage,
		"styling starts from the base model with the English preset prompt")
}

func TestStartOverDiscardsInFlightResult(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	// 합성 도중 start over가 끼어드는 상황
	fake.onTryOn = func() { service.StartOver(sess) }

	garment := GarmentRef{ID: "tee", Source: SourceCatalog}
	err := service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "tee-img")
	assertAppErrorKey(t, err, "errorSessionReset")

	state := service.Snapshot(sess)
	assert.False(t, state.HasModel, "stale result must not resurrect the reset session")
}

func TestEditImageAppendsModifiedLayer(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	require.NoError(t, service.EditImage(context.Background(), sess, locale.LangEN, "make the shirt red"))

	state := service.Snapshot(sess)
	require.Len(t, state.ActiveLayers, 2)
	layer := state.ActiveLayers[1]
	assert.Equal(t, SourceModified, layer.Garment.Source)
	assert.Equal(t, "make the shirt red", layer.GenerationPrompt)
	assert.Equal(t, "edit:make the shirt red", state.DisplayImage)
}

func TestApplyHairstyleUsesCatalogInstruction(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	require.NoError(t, service.ApplyHairstyle(context.Background(), sess, locale.LangEN, "hairstyle_bob_cut"))

	state := service.Snapshot(sess)
	require.Len(t, state.ActiveLayers, 2)
	assert.Equal(t, "Bob Cut", state.ActiveLayers[1].Garment.Name)
	assert.Contains(t, state.DisplayImage, `Change the hairstyle to a "Bob Cut"`)
	assert.Contains(t, state.DisplayImage, "Do NOT change the person's face")
}

func TestApplyHairstyleUnknownKey(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	err := service.ApplyHairstyle(context.Background(), sess, locale.LangEN, "hairstyle_unknown")
	require.Error(t, err)
	assert.Zero(t, fake.editCalls)
}

func TestSelectPoseOnDemandGeneration(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)
	require.Zero(t, fake.poseCalls)

	require.NoError(t, service.SelectPose(context.Background(), sess, locale.LangEN, PoseWalking))

	state := service.Snapshot(sess)
	assert.Equal(t, PoseWalking, state.CurrentPoseKey)
	assert.Equal(t, "pose:"+PoseInstruction(PoseWalking), state.DisplayImage)
	assert.Equal(t, 1, fake.poseCalls)

	// 이미 생성된 포즈로 돌아갈 때는 호출 없음
	require.NoError(t, service.SelectPose(context.Background(), sess, locale.LangEN, PoseDefault))
	assert.Equal(t, 1, fake.poseCalls)
}

func drainEvents(client *ProgressClient) []ProgressEvent {
	var events []ProgressEvent
	for {
		select {
		case payload := <-client.send:
			var event ProgressEvent
			if err := json.Unmarshal(payload, &event); err == nil {
				events = append(events, event)
			}
		default:
			return events
		}
	}
}

func TestRedoEmitsNoProgressEvents(t *testing.T) {
	fake := &fakeGateway{}
	sessions := NewSessionManager()
	hub := NewProgressHub()
	service := NewService(fake, sessions, nil, hub, 1)
	sess := sessions.Create()

	client := &ProgressClient{send: make(chan []byte, 64)}
	hub.register(sess.ID, client)

	mustCreateModel(t, service, sess)
	garment := GarmentRef{ID: "tee", Name: "Tee", Source: SourceCatalog}
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "tee-img"))

	// 정상 워크플로우는 progress 후 done 순서로 이벤트 발생
	events := drainEvents(client)
	require.NotEmpty(t, events)
	assert.Equal(t, "progress", events[0].Type)
	assert.Equal(t, "done", events[len(events)-1].Type)

	require.True(t, service.RemoveLastLayer(sess))
	drainEvents(client)

	// redo는 로딩 사이클이 없으므로 이벤트도 없음
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN, garment, "tee-img"))
	assert.Empty(t, drainEvents(client))
}

func TestSnapshotSafeDuringOnDemandPoseCommit(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	// 스냅샷의 포즈 맵을 순회하는 동안 온디맨드 커밋이 진행되는 상황
	shared := service.Snapshot(sess).ActiveLayers[0].PoseImages

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			for key, img := range shared {
				_ = key
				_ = img
			}
		}
	}()

	require.NoError(t, service.SelectPose(context.Background(), sess, locale.LangEN, PoseWalking))
	require.NoError(t, service.SelectPose(context.Background(), sess, locale.LangEN, PoseHips))
	<-done

	// 커밋 결과는 새 스냅샷에만 나타나고, 이미 내보낸 맵은 불변
	assert.NotContains(t, shared, PoseWalking)
	assert.NotContains(t, shared, PoseHips)
	assert.Contains(t, service.Snapshot(sess).ActiveLayers[0].PoseImages, PoseWalking)
}

func TestDeriveWardrobeItem(t *testing.T) {
	fake := &fakeGateway{}
	service, sess := newTestService(t, fake, 1)
	mustCreateModel(t, service, sess)

	// 카탈로그 레이어에서는 추출 불가
	require.NoError(t, service.ApplyGarment(context.Background(), sess, locale.LangEN,
		GarmentRef{ID: "tee", Source: SourceCatalog}, "tee-img"))
	_, _, err := service.DeriveWardrobeItem(sess, locale.LangEN)
	assert.Error(t, err)

	require.NoError(t, service.GenerateForOccasion(context.Background(), sess, locale.LangEN, "occasion_date_night"))

	name, imageDataURL, err := service.DeriveWardrobeItem(sess, locale.LangEN)
	require.NoError(t, err)
	assert.Equal(t, "Look: a romantic date night dinner", name)
	assert.Equal(t, "occasion:a romantic date night dinner", imageDataURL)
}
