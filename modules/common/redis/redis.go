package redis

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"quel-tryon-server/modules/common/config"
)

// Connect - Redis 연결 생성
// Redis는 세션 취소 플래그 용도로만 사용 (없어도 서버는 동작)
func Connect(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		log.Println("⚠️ Redis not configured - cancel flags will be in-memory only")
		return nil
	}

	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis ping failed: %v", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return rdb
}

const cancelKeyPrefix = "tryon:cancel:"

// MarkSessionCancelled - 세션 취소 플래그 설정 (startOver 시 호출)
// 진행 중이던 생성 결과가 초기화된 세션에 적용되는 것을 방지
func MarkSessionCancelled(rdb *redis.Client, sessionID string) {
	if rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Set(ctx, cancelKeyPrefix+sessionID, "1", 10*time.Minute).Err(); err != nil {
		log.Printf("⚠️ Failed to set cancel flag for session %s: %v", sessionID, err)
	}
}

// ClearSessionCancelled - 새 작업 시작 전 취소 플래그 해제
func ClearSessionCancelled(rdb *redis.Client, sessionID string) {
	if rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Del(ctx, cancelKeyPrefix+sessionID).Err(); err != nil {
		log.Printf("⚠️ Failed to clear cancel flag for session %s: %v", sessionID, err)
	}
}

// IsSessionCancelled - 세션 취소 여부 확인
func IsSessionCancelled(rdb *redis.Client, sessionID string) bool {
	if rdb == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := rdb.Exists(ctx, cancelKeyPrefix+sessionID).Result()
	if err != nil {
		log.Printf("⚠️ Failed to check cancel flag for session %s: %v", sessionID, err)
		return false
	}
	return exists > 0
}
