package tryon

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session - 세션별 착장 상태
// 모든 필드는 mu로 보호, 워크플로우 커밋은 epoch 비교로 stale 결과를 폐기
type Session struct {
	ID string

	mu             sync.RWMutex
	history        OutfitHistory
	isLoading      bool
	loadingMessage string
	lastError      string
	epoch          int64

	createdAt    time.Time
	lastActivity time.Time
}

// tryBeginWork - busy 플래그 획득 시도
// 이미 작업 중이면 false (동시 워크플로우 거부)
func (s *Session) tryBeginWork(message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isLoading {
		return false
	}
	s.isLoading = true
	s.loadingMessage = message
	s.lastError = ""
	s.lastActivity = time.Now()
	return true
}

// endWork - busy 플래그 해제
func (s *Session) endWork() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	s.loadingMessage = ""
	s.lastActivity = time.Now()
}

// setProgress - 작업 중 진행 메시지 갱신
func (s *Session) setProgress(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingMessage = message
}

// recordError - 실패한 워크플로우의 에러 기록 (히스토리는 건드리지 않음)
func (s *Session) recordError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

// currentEpoch - 워크플로우 시작 시점의 epoch 캡처용
func (s *Session) currentEpoch() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// isStale - 캡처 시점 이후 start over가 일어났는지
func (s *Session) isStale(epoch int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch != epoch
}

// startOver - 히스토리/에러 초기화 + epoch 증가로 진행 중 결과 무효화
func (s *Session) startOver() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Reset()
	s.lastError = ""
	s.epoch++
	s.lastActivity = time.Now()
}

// SessionMetrics - 운영 현황 조회용
type SessionMetrics struct {
	TotalSessions  int64     `json:"totalSessions"`
	ActiveSessions int       `json:"activeSessions"`
	StartTime      time.Time `json:"startTime"`
}

// SessionManager - 세션 저장소 + 수명 관리
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	totalSessions int64
	startTime     time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*Session),
		startTime: time.Now(),
	}
}

// Create - 새 세션 생성
func (m *SessionManager) Create() *Session {
	session := &Session{
		ID:           uuid.NewString(),
		createdAt:    time.Now(),
		lastActivity: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.totalSessions++
	count := len(m.sessions)
	m.mu.Unlock()

	log.Printf("✅ [Session] Created %s (active: %d)", session.ID, count)
	return session
}

// Get - 세션 조회
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Remove - 세션 제거
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Metrics - 현재 운영 지표
func (m *SessionManager) Metrics() SessionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return SessionMetrics{
		TotalSessions:  m.totalSessions,
		ActiveSessions: len(m.sessions),
		StartTime:      m.startTime,
	}
}

const (
	sessionMaxAge      = 24 * time.Hour
	sessionIdleTimeout = 2 * time.Hour
)

// StartCleanupRoutine - 만료/유휴 세션 정리 루프 시작
func (m *SessionManager) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			m.cleanup()
		}
	}()
	log.Println("✅ [Session] Cleanup routine started")
}

func (m *SessionManager) cleanup() {
	now := time.Now()
	var expired []string

	m.mu.Lock()
	for id, session := range m.sessions {
		session.mu.RLock()
		busy := session.isLoading
		created := session.createdAt
		activity := session.lastActivity
		session.mu.RUnlock()

		if busy {
			continue
		}
		if now.Sub(created) > sessionMaxAge || now.Sub(activity) > sessionIdleTimeout {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(m.sessions, id)
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if len(expired) > 0 {
		log.Printf("🔄 [Session] Cleaned up %d expired sessions (active: %d)", len(expired), remaining)
	}
}
