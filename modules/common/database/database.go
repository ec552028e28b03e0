package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quel-tryon-server/modules/common/model"
)

// Connect - SQLite 연결 생성 + 스키마 마이그레이션
// 페이지 리로드/프로세스 재시작에도 데이터가 유지되어야 하므로 로컬 파일 DB 사용
func Connect(databasePath string) (*gorm.DB, error) {
	// DB 디렉토리 생성
	if dir := filepath.Dir(databasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// 스키마 마이그레이션
	if err := db.AutoMigrate(&model.WardrobeRecord{}, &model.LookbookRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("✅ Database ready: %s", databasePath)
	return db, nil
}
