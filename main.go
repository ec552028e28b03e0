package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"quel-tryon-server/modules/common/config"
	"quel-tryon-server/modules/common/database"
	"quel-tryon-server/modules/common/gemini"
	"quel-tryon-server/modules/common/locale"
	"quel-tryon-server/modules/common/redis"
	"quel-tryon-server/modules/lookbook"
	"quel-tryon-server/modules/tryon"
	"quel-tryon-server/modules/wardrobe"
)

var serverStartTime = time.Now()

func main() {
	log.Println("🚀 Starting Quel Try-On Server...")

	// 1. 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// 2. 로컬 데이터베이스 연결 (드레스룸/룩북)
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("❌ Failed to connect database: %v", err)
	}

	// 3. Redis 연결 (선택 - 취소 플래그용)
	rdb := redis.Connect(cfg)

	// 4. Gemini 클라이언트
	geminiClient := gemini.NewClient()
	if geminiClient == nil {
		log.Fatal("❌ Gemini client initialization failed")
	}

	// 5. 세션 매니저 + 진행 상황 허브
	sessions := tryon.NewSessionManager()
	sessions.StartCleanupRoutine()
	hub := tryon.NewProgressHub()

	// 6. 서비스 초기화
	tryonService := tryon.NewService(geminiClient, sessions, rdb, hub, cfg.PoseCount)
	wardrobeService := wardrobe.NewService(db, cfg.MediaDir)
	lookbookService := lookbook.NewService(db)

	// 재기동 시 커스텀 아이템 미디어 파일 복원
	if err := wardrobeService.RestoreMediaFiles(); err != nil {
		log.Printf("⚠️ Failed to restore wardrobe media files: %v", err)
	}

	// 7. 핸들러 + 라우터
	router := mux.NewRouter()

	tryonHandler := tryon.NewHandler(tryonService, hub)
	tryonHandler.RegisterRoutes(router)

	wardrobeHandler := wardrobe.NewHandler(wardrobeService, func(sessionID string, lang locale.Lang) (string, string, error) {
		sess, ok := sessions.Get(sessionID)
		if !ok {
			return "", "", locale.NewAppError("errorGeneric", nil)
		}
		return tryonService.DeriveWardrobeItem(sess, lang)
	})
	wardrobeHandler.RegisterRoutes(router)

	lookbookHandler := lookbook.NewHandler(lookbookService, func(sessionID string) (string, bool) {
		sess, ok := sessions.Get(sessionID)
		if !ok {
			return "", false
		}
		state := tryonService.Snapshot(sess)
		return state.DisplayImage, state.DisplayImage != ""
	})
	lookbookHandler.RegisterRoutes(router)

	// 커스텀 아이템 이미지 정적 서빙
	router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))

	// 헬스체크 + 운영 지표
	router.HandleFunc("/health", handleHealth).Methods("GET")
	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"sessions": sessions.Metrics(),
			"uptime":   time.Since(serverStartTime).String(),
		})
	}).Methods("GET")

	// 8. 서버 시작
	handler := corsMiddleware(router)
	addr := ":" + cfg.Port
	log.Printf("✅ Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"uptime": time.Since(serverStartTime).String(),
	})
}

// corsMiddleware - 로컬 개발용 CORS 허용
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
