package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"lechatnoir.dev/internal/awards"
	"lechatnoir.dev/internal/models"
)

// ErrAwardNotFound is returned by GetByID for unknown ids
var ErrAwardNotFound = errors.New("award not found")

// AwardService serves the awards data, caching successful loads
type AwardService struct {
	loader *awards.Loader

	group  singleflight.Group
	mu     sync.RWMutex
	result *awards.Result
}

// NewAwardService creates a new AwardService
func NewAwardService(loader *awards.Loader) *AwardService {
	return &AwardService{loader: loader}
}

// Result returns the current awards data. A fallback result is never
// cached, so the file is read again on the next call.
func (s *AwardService) Result(ctx context.Context) *awards.Result {
	s.mu.RLock()
	res := s.result
	s.mu.RUnlock()
	if res != nil {
		return res
	}

	v, _, _ := s.group.Do("awards", func() (interface{}, error) {
		res := s.loader.Load(ctx)
		if !res.Fallback {
			s.mu.Lock()
			s.result = res
			s.mu.Unlock()
		}
		return res, nil
	})
	return v.(*awards.Result)
}

// GetAll returns all awards
func (s *AwardService) GetAll(ctx context.Context) []models.Award {
	return s.Result(ctx).Awards()
}

// GetByID returns a specific award by ID
func (s *AwardService) GetByID(ctx context.Context, id int) (*models.Award, error) {
	all := s.GetAll(ctx)
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrAwardNotFound, id)
}

// View returns the awards page content for category. A non-empty
// category counts as a selection and adds its toast.
func (s *AwardService) View(ctx context.Context, category string) awards.View {
	res := s.Result(ctx)
	if category == "" {
		return awards.NewView(res, awards.NewFilterState())
	}
	state, note := awards.Select(category)
	v := awards.NewView(res, state)
	v.Notifications = append(v.Notifications, note)
	return v
}

// Summary returns the statistics over every award
func (s *AwardService) Summary(ctx context.Context) awards.Summary {
	return awards.Summarize(s.GetAll(ctx))
}

// Invalidate drops the cached data
func (s *AwardService) Invalidate() {
	s.mu.Lock()
	s.result = nil
	s.mu.Unlock()
}
