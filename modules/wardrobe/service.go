package wardrobe

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gorm.io/gorm"

	"quel-tryon-server/modules/common/model"
	"quel-tryon-server/modules/common/utils"
)

// ErrItemNotFound - 존재하지 않는 커스텀 아이템 (핸들러가 404로 매핑)
var ErrItemNotFound = errors.New("wardrobe item not found")

// Service - 드레스룸 저장소
// 커스텀 아이템은 DB에 원본 바이트로 저장하고 /media/ 아래에 파일로 노출
type Service struct {
	db       *gorm.DB
	mediaDir string
}

func NewService(db *gorm.DB, mediaDir string) *Service {
	return &Service{db: db, mediaDir: mediaDir}
}

// AddParams - 커스텀 아이템 등록 입력
type AddParams struct {
	Name        string
	Category    Category
	Subcategory Subcategory
	Color       string
	Material    string
	Description string
	ImageData   string // data URL
}

// List - 커스텀 아이템(최신순)을 기본 카탈로그 앞에 배치
func (s *Service) List() ([]Item, error) {
	var records []model.WardrobeRecord
	if err := s.db.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list wardrobe items: %w", err)
	}

	items := make([]Item, 0, len(records)+len(defaultCatalog))
	for i := range records {
		items = append(items, s.itemView(&records[i]))
	}
	items = append(items, DefaultCatalog()...)
	return items, nil
}

// Add - 커스텀 아이템 등록
func (s *Service) Add(params AddParams) (Item, error) {
	if params.Name == "" || params.Category == "" {
		return Item{}, fmt.Errorf("name and category are required")
	}
	if err := validateSubcategory(params.Category, params.Subcategory); err != nil {
		return Item{}, err
	}

	mimeType, data, err := utils.DataURLToParts(params.ImageData)
	if err != nil {
		return Item{}, err
	}

	record := model.WardrobeRecord{
		Name:        params.Name,
		Category:    string(params.Category),
		Subcategory: string(params.Subcategory),
		Color:       params.Color,
		Material:    params.Material,
		Description: params.Description,
		MIMEType:    mimeType,
		FileData:    data,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return Item{}, fmt.Errorf("failed to save wardrobe item: %w", err)
	}

	// 미디어 파일로 노출 - 실패해도 DB 레코드는 유지 (재기동 시 복원 가능)
	if err := s.materialize(&record); err != nil {
		log.Printf("⚠️ [Wardrobe] Failed to write media file for item %d: %v", record.ID, err)
	}

	log.Printf("✅ [Wardrobe] Added custom item %d (%s)", record.ID, record.Name)
	return s.itemView(&record), nil
}

// AddDerivedLook - 생성/수정 룩을 드레스룸 아이템으로 등록
func (s *Service) AddDerivedLook(name, imageDataURL string) (Item, error) {
	return s.Add(AddParams{
		Name:      name,
		Category:  CategoryLooks,
		ImageData: imageDataURL,
	})
}

// Delete - 커스텀 아이템 삭제 (기본 카탈로그는 삭제 불가)
// 미디어 파일도 함께 제거
func (s *Service) Delete(id string) error {
	recordID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	var record model.WardrobeRecord
	if err := s.db.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrItemNotFound, recordID)
		}
		return fmt.Errorf("failed to load wardrobe item: %w", err)
	}

	if err := s.db.Delete(&record).Error; err != nil {
		return fmt.Errorf("failed to delete wardrobe item: %w", err)
	}

	if err := os.Remove(s.mediaPath(&record)); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ [Wardrobe] Failed to remove media file for item %d: %v", record.ID, err)
	}

	log.Printf("✅ [Wardrobe] Deleted custom item %d", record.ID)
	return nil
}

// RestoreMediaFiles - 재기동 시 DB의 커스텀 아이템을 미디어 디렉토리에 복원
func (s *Service) RestoreMediaFiles() error {
	var records []model.WardrobeRecord
	if err := s.db.Find(&records).Error; err != nil {
		return fmt.Errorf("failed to load wardrobe items: %w", err)
	}

	restored := 0
	for i := range records {
		path := s.mediaPath(&records[i])
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.materialize(&records[i]); err != nil {
			log.Printf("⚠️ [Wardrobe] Failed to restore media file for item %d: %v", records[i].ID, err)
			continue
		}
		restored++
	}

	if restored > 0 {
		log.Printf("✅ [Wardrobe] Restored %d media files", restored)
	}
	return nil
}

func (s *Service) materialize(record *model.WardrobeRecord) error {
	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.mediaPath(record), record.FileData, 0o644)
}

func (s *Service) mediaPath(record *model.WardrobeRecord) string {
	return filepath.Join(s.mediaDir, mediaFileName(record))
}

// validateSubcategory - 소분류는 액세서리에만, 등록된 값만 허용
func validateSubcategory(category Category, subcategory Subcategory) error {
	if subcategory == "" {
		return nil
	}
	if category != CategoryAccessories {
		return fmt.Errorf("subcategory is only valid for accessories")
	}
	if !validSubcategories[subcategory] {
		return fmt.Errorf("unknown subcategory: %s", subcategory)
	}
	return nil
}

func mediaFileName(record *model.WardrobeRecord) string {
	return fmt.Sprintf("wardrobe_%d%s", record.ID, extForMIME(record.MIMEType))
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func (s *Service) itemView(record *model.WardrobeRecord) Item {
	return Item{
		ID:          strconv.FormatUint(uint64(record.ID), 10),
		Name:        record.Name,
		Category:    Category(record.Category),
		Subcategory: Subcategory(record.Subcategory),
		Color:       record.Color,
		Material:    record.Material,
		Description: record.Description,
		URL:         "/media/" + mediaFileName(record),
		Custom:      true,
	}
}
