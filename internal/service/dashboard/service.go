package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
)

const (
	cacheKey = "dashboard:stats"
	cacheTTL = time.Minute
)

type Service interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}

type service struct {
	repo  repository.DashboardRepository
	redis *redis.Client
}

func NewService(repo repository.DashboardRepository, redis *redis.Client) Service {
	return &service{
		repo:  repo,
		redis: redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var stats domain.DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	groups, err := s.repo.DonorGroupCounts(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.repo.RequestStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	patients, err := s.repo.CountPatients(ctx)
	if err != nil {
		return nil, err
	}

	stories, err := s.repo.CountStories(ctx)
	if err != nil {
		return nil, err
	}

	lastRequest, _ := s.repo.LastRequestAt(ctx)

	stats := &domain.DashboardStats{
		DonorsByGroup:     groups,
		PendingRequests:   statuses[domain.StatusPending],
		AcceptedRequests:  statuses[domain.StatusAccepted],
		CompletedRequests: statuses[domain.StatusCompleted],
		TotalPatients:     patients,
		TotalStories:      stories,
		LastRequestAt:     lastRequest,
	}
	if stats.DonorsByGroup == nil {
		stats.DonorsByGroup = []domain.BloodGroupCount{}
	}
	for _, g := range groups {
		stats.TotalDonors += g.Total
		stats.BlockedDonors += g.Blocked
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, cacheKey, statsJSON, cacheTTL).Err()
		}
	}

	return stats, nil
}
