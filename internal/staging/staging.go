package staging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bingo-backend/internal/board"
	"bingo-backend/internal/cache"
)

// DefaultTTL 스테이징 레코드 보존 기한
const DefaultTTL = 24 * time.Hour

// Store 미인증 저장 시도를 로그인 완료까지 붙잡아 두는 버퍼.
// 세션 키당 레코드 하나만 유지한다 (나중 저장이 이전 것을 덮어씀).
type Store interface {
	// Stage 레코드 보관 (동일 키 덮어쓰기)
	Stage(ctx context.Context, sessionKey string, rec board.Record) error
	// Take 레코드를 꺼내면서 버퍼에서 제거. 없으면 (nil, nil).
	Take(ctx context.Context, sessionKey string) (*board.Record, error)
	// Clear 레코드 제거
	Clear(ctx context.Context, sessionKey string) error
}

// RedisStore Redis 기반 Store 구현
type RedisStore struct {
	client *cache.RedisClient
	ttl    time.Duration
}

// NewRedisStore RedisStore 생성. ttl이 0이면 DefaultTTL.
func NewRedisStore(client *cache.RedisClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func stagingKey(sessionKey string) string {
	return "pending_bingo:" + sessionKey
}

// Stage 레코드 직렬화 후 TTL과 함께 저장
func (s *RedisStore) Stage(ctx context.Context, sessionKey string, rec board.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal staged board: %w", err)
	}
	if err := s.client.Set(ctx, stagingKey(sessionKey), data, s.ttl); err != nil {
		return fmt.Errorf("stage board: %w", err)
	}
	return nil
}

// Take 레코드 조회와 동시에 삭제 (재제출은 정확히 한 번만 일어난다)
func (s *RedisStore) Take(ctx context.Context, sessionKey string) (*board.Record, error) {
	data, err := s.client.GetDel(ctx, stagingKey(sessionKey))
	if err != nil {
		if cache.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("take staged board: %w", err)
	}
	var rec board.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		// 손상된 스테이징 데이터는 버린다
		return nil, nil
	}
	return &rec, nil
}

// Clear 레코드 제거
func (s *RedisStore) Clear(ctx context.Context, sessionKey string) error {
	return s.client.Del(ctx, stagingKey(sessionKey))
}

// MemoryStore 테스트용 인메모리 Store
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]board.Record
}

// NewMemoryStore MemoryStore 생성
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]board.Record)}
}

func (s *MemoryStore) Stage(ctx context.Context, sessionKey string, rec board.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionKey] = rec
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, sessionKey string) (*board.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[sessionKey]
	if !ok {
		return nil, nil
	}
	delete(s.records, sessionKey)
	return &rec, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionKey)
	return nil
}
