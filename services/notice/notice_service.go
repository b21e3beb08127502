// Package notice keeps short-lived messages addressed to one admin user,
// delivered once on the user's next read.
package notice

import (
	"sync"
	"time"

	"dbconnmanager/pkg/logger"
)

// Notice is a message pending delivery.
type Notice struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NoticeService queues and consumes one-shot notices keyed by user.
type NoticeService interface {
	Push(user, message string)
	Consume(user string) []Notice
	Pending(user string) int
}

type noticeService struct {
	mu      sync.Mutex
	pending map[string][]Notice
	ttl     time.Duration
	now     func() time.Time
}

// NewNoticeService creates a queue whose notices expire after ttl (<= 0 keeps them until consumed).
func NewNoticeService(ttl time.Duration) NoticeService {
	return newNoticeService(ttl, time.Now)
}

func newNoticeService(ttl time.Duration, now func() time.Time) *noticeService {
	return &noticeService{
		pending: make(map[string][]Notice),
		ttl:     ttl,
		now:     now,
	}
}

// Push queues message for user. An identical message already pending is refreshed rather than duplicated.
func (s *noticeService) Push(user, message string) {
	if message == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	queue := s.live(user, now)
	for i := range queue {
		if queue[i].Message == message {
			queue[i].CreatedAt = now
			s.pending[user] = queue
			return
		}
	}
	s.pending[user] = append(queue, Notice{Message: message, CreatedAt: now})
	logger.Debugf("Queued notice for user=%s: %s", user, message)
}

// Consume returns the live notices for user and clears the queue.
func (s *noticeService) Consume(user string) []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.live(user, s.now())
	delete(s.pending, user)
	if queue == nil {
		return []Notice{}
	}
	return queue
}

// Pending reports how many live notices user has without consuming them.
func (s *noticeService) Pending(user string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	queue := s.live(user, s.now())
	if len(queue) == 0 {
		delete(s.pending, user)
	} else {
		s.pending[user] = queue
	}
	return len(queue)
}

// live drops expired notices. Caller holds mu.
func (s *noticeService) live(user string, now time.Time) []Notice {
	queue := s.pending[user]
	if s.ttl <= 0 {
		return queue
	}
	var kept []Notice
	for _, n := range queue {
		if now.Sub(n.CreatedAt) < s.ttl {
			kept = append(kept, n)
		}
	}
	return kept
}
