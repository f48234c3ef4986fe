package services

import (
	"math/rand"
	"sync"

	"howyouknow-backend/internal/models"
)

// SelectionService draws the randomized question set for a new session.
type SelectionService struct {
	mu         sync.Mutex
	rng        *rand.Rand
	perSession int
}

// NewSelectionService takes the rng so tests can inject a fixed seed.
func NewSelectionService(rng *rand.Rand, perSession int) *SelectionService {
	return &SelectionService{rng: rng, perSession: perSession}
}

// Pick filters out already-answered questions, shuffles the remainder
// uniformly and takes the prefix. The returned order becomes the
// session's frozen question order.
func (s *SelectionService) Pick(candidates []models.Question, answered map[string]bool) ([]models.Question, error) {
	unanswered := make([]models.Question, 0, len(candidates))
	for _, q := range candidates {
		if !answered[q.ID] {
			unanswered = append(unanswered, q)
		}
	}
	if len(unanswered) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	s.mu.Lock()
	s.rng.Shuffle(len(unanswered), func(i, j int) {
		unanswered[i], unanswered[j] = unanswered[j], unanswered[i]
	})
	s.mu.Unlock()

	n := s.perSession
	if len(unanswered) < n {
		n = len(unanswered)
	}
	return unanswered[:n], nil
}

// shuffle runs swap through the shared rng so every random draw in a
// game comes from the one injected source.
func (s *SelectionService) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	s.rng.Shuffle(n, swap)
	s.mu.Unlock()
}
