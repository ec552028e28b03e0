package model

import "time"

// WardrobeRecord - wardrobe_items 테이블 구조 (사용자 업로드/저장 아이템)
// 기본 카탈로그 아이템은 DB에 저장하지 않음
type WardrobeRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Category    string    `gorm:"not null;index" json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Color       string    `json:"color,omitempty"`
	Material    string    `json:"material,omitempty"`
	Description string    `json:"description,omitempty"`
	MIMEType    string    `gorm:"not null" json:"mimeType"`
	FileData    []byte    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

// TableName - gorm 테이블명 지정
func (WardrobeRecord) TableName() string {
	return "wardrobe_items"
}

// LookbookRecord - lookbook_items 테이블 구조 (저장된 룩)
// Hash는 data URL 전체의 SHA-256 - 동일 이미지 중복 저장 방지용
type LookbookRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DataURL   string    `gorm:"not null" json:"dataUrl"`
	Hash      string    `gorm:"uniqueIndex;not null" json:"-"`
	ThumbWebP []byte    `json:"-"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName - gorm 테이블명 지정
func (LookbookRecord) TableName() string {
	return "lookbook_items"
}
