package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyset_backend/internal/repository"
	"studyset_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	searchCacheKeyPrefix = "search:"
	searchCacheTTL       = 60 * time.Second
	randomPickCount      = 3
)

// CourseSearchStore and TestSearchStore are the read-only slices of the
// repositories the search service needs. Implemented by
// repository.CourseRepository and repository.PracticeTestRepository.
type CourseSearchStore interface {
	SearchByKeyword(keyword, cursorID string) ([]repository.CourseSummary, error)
	RandomSummaries(limit int) ([]repository.CourseSummary, error)
}

type TestSearchStore interface {
	SearchByKeyword(keyword, cursorID string) ([]repository.TestSummary, error)
	RandomSummaries(limit int) ([]repository.TestSummary, error)
}

type SearchService struct {
	CourseRepo CourseSearchStore
	TestRepo   TestSearchStore
	Redis      *redis.Client
}

func NewSearchService(courseRepo CourseSearchStore, testRepo TestSearchStore, rdb *redis.Client) *SearchService {
	return &SearchService{
		CourseRepo: courseRepo,
		TestRepo:   testRepo,
		Redis:      rdb,
	}
}

type SearchResult struct {
	Courses       []repository.CourseSummary `json:"courses"`
	PracticeTests []repository.TestSummary   `json:"practiceTests"`
}

// SearchByKeyword searches courses and/or practice tests by name, paged with
// an id cursor. Results are cached briefly: search traffic is read-heavy and
// slightly stale pages are acceptable.
func (s *SearchService) SearchByKeyword(ctx context.Context, keyword, searchType, cursorID string) (*SearchResult, error) {
	cacheKey := fmt.Sprintf("%s%s:%s:%s", searchCacheKeyPrefix, searchType, keyword, cursorID)
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached SearchResult
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	result := &SearchResult{}
	var err error

	switch searchType {
	case "course":
		result.Courses, err = s.CourseRepo.SearchByKeyword(keyword, cursorID)
	case "test":
		result.PracticeTests, err = s.TestRepo.SearchByKeyword(keyword, cursorID)
	default:
		// "all" ignores the cursor, it cannot address two result sets at once.
		if result.Courses, err = s.CourseRepo.SearchByKeyword(keyword, ""); err == nil {
			result.PracticeTests, err = s.TestRepo.SearchByKeyword(keyword, "")
		}
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, searchCacheTTL).Err(); err != nil {
				logger.Log.Warn("search cache write failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

// RandomPicks returns a few random courses and practice tests for the
// landing page.
func (s *SearchService) RandomPicks() (*SearchResult, error) {
	courses, err := s.CourseRepo.RandomSummaries(randomPickCount)
	if err != nil {
		return nil, err
	}
	tests, err := s.TestRepo.RandomSummaries(randomPickCount)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Courses: courses, PracticeTests: tests}, nil
}
