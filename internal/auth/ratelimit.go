package auth

import (
	"sync"
	"time"
)

// AttemptStore считает попытки по ключу в скользящем окне. Хранилище
// инжектируется в сервис авторизации, чтобы несколько экземпляров могли
// разделять одно состояние.
type AttemptStore interface {
	// Allow регистрирует попытку и сообщает, не превышен ли лимит
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryAttemptStore хранит попытки в памяти процесса
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	now      func() time.Time
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Allow регистрирует попытку для ключа. Попытки старше окна забываются.
func (s *MemoryAttemptStore) Allow(key string, limit int, window time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-window)

	kept := s.attempts[key][:0]
	for _, attempt := range s.attempts[key] {
		if attempt.After(cutoff) {
			kept = append(kept, attempt)
		}
	}

	if len(kept) >= limit {
		s.attempts[key] = kept
		return false
	}

	s.attempts[key] = append(kept, now)
	return true
}
