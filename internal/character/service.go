package character

import (
	"context"
)

// Service answers character listing requests from the cached collection.
type Service struct {
	source CharacterSource
}

// NewService creates a new character service.
func NewService(source CharacterSource) *Service {
	return &Service{source: source}
}

// List returns one filtered page. The only error is a failed upstream refresh.
func (s *Service) List(ctx context.Context, req PageRequest) (PageResult, error) {
	all, err := s.source.Get(ctx)
	if err != nil {
		return PageResult{}, err
	}
	return Query(all, req), nil
}

// Status reports the state of the underlying cache.
func (s *Service) Status() CacheStatus {
	return s.source.Status()
}
