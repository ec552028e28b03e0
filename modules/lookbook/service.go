package lookbook

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"quel-tryon-server/modules/common/model"
	"quel-tryon-server/modules/common/utils"
)

const thumbnailQuality = 80

// ErrEntryNotFound - 존재하지 않는 룩북 항목 (핸들러가 404로 매핑)
var ErrEntryNotFound = errors.New("lookbook entry not found")

// Entry - 룩북 항목 (API 응답 뷰)
type Entry struct {
	ID        string    `json:"id"`
	DataURL   string    `json:"dataUrl"`
	Thumbnail string    `json:"thumbnail,omitempty"` // WebP data URL
	CreatedAt time.Time `json:"createdAt"`
}

// Service - 룩북 저장소
// 동일 이미지 중복 저장은 해시로 차단 (저장은 멱등)
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Save - 룩 저장
// 이미 같은 이미지가 있으면 기존 항목 반환 (created=false)
func (s *Service) Save(dataURL string) (Entry, bool, error) {
	if dataURL == "" {
		return Entry{}, false, fmt.Errorf("dataUrl is required")
	}

	hash := hashDataURL(dataURL)

	var existing model.LookbookRecord
	err := s.db.Where("hash = ?", hash).First(&existing).Error
	if err == nil {
		return entryView(&existing), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, false, fmt.Errorf("failed to check lookbook: %w", err)
	}

	record := model.LookbookRecord{
		DataURL:   dataURL,
		Hash:      hash,
		ThumbWebP: makeThumbnail(dataURL),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return Entry{}, false, fmt.Errorf("failed to save lookbook entry: %w", err)
	}

	log.Printf("✅ [Lookbook] Saved entry %d", record.ID)
	return entryView(&record), true, nil
}

// List - 저장된 룩 목록 (최신순)
func (s *Service) List() ([]Entry, error) {
	var records []model.LookbookRecord
	if err := s.db.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list lookbook: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for i := range records {
		entries = append(entries, entryView(&records[i]))
	}
	return entries, nil
}

// Delete - 룩 삭제
func (s *Service) Delete(id string) error {
	recordID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}

	result := s.db.Delete(&model.LookbookRecord{}, recordID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete lookbook entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, recordID)
	}

	log.Printf("✅ [Lookbook] Deleted entry %d", recordID)
	return nil
}

func hashDataURL(dataURL string) string {
	sum := sha256.Sum256([]byte(dataURL))
	return hex.EncodeToString(sum[:])
}

// makeThumbnail - WebP 썸네일 생성
// 실패해도 저장 자체는 진행 (썸네일 없이)
func makeThumbnail(dataURL string) []byte {
	_, data, err := utils.DataURLToParts(dataURL)
	if err != nil {
		return nil
	}
	thumb, err := utils.ConvertImageToWebP(data, thumbnailQuality)
	if err != nil {
		log.Printf("⚠️ [Lookbook] Thumbnail conversion failed: %v", err)
		return nil
	}
	return thumb
}

func entryView(record *model.LookbookRecord) Entry {
	entry := Entry{
		ID:        strconv.FormatUint(uint64(record.ID), 10),
		DataURL:   record.DataURL,
		CreatedAt: record.CreatedAt,
	}
	if len(record.ThumbWebP) > 0 {
		entry.Thumbnail = utils.PartsToDataURL("image/webp", record.ThumbWebP)
	}
	return entry
}
