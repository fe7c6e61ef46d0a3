package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"studenthub/internal/ports/api"
	"studenthub/internal/ports/cache"
	"studenthub/internal/ports/repositories"
	"studenthub/pkg/logger"
)

// Константы для кэширования.
const (
	StatsCacheKeyPrefix = "stats:"

	statsCacheTTL = 5 * time.Minute

	// DeadlineWindow определяет горизонт предстоящих дедлайнов.
	DeadlineWindow = 7 * 24 * time.Hour
)

const (
	methodGetStudentStats = "GetStudentStats"

	msgComputingStats  = "computing student stats"
	msgStatsFromCache  = "student stats served from cache"
	msgStatsComputed   = "student stats computed"
	msgErrFindStudent  = "failed to find student"
	msgErrCountStats   = "failed to count activities"
	msgErrCacheStats   = "failed to cache student stats"
	msgErrDecodeCached = "failed to decode cached stats"

	errCtxFindingStudent    = "finding student"
	errCtxCountingCompleted = "counting completed activities"
	errCtxCountingDeadlines = "counting upcoming deadlines"
)

// statsCacheKey возвращает ключ кэша статистики для пользователя.
func statsCacheKey(userID string) string {
	return StatsCacheKeyPrefix + userID
}

// StatsUseCaseImpl реализует интерфейс StatsUseCase.
type StatsUseCaseImpl struct {
	userRepo     repositories.UserRepository
	activityRepo repositories.ActivityRepository
	cache        cache.Cache
}

// NewStatsUseCase создает новый экземпляр сервиса статистики.
func NewStatsUseCase(
	userRepo repositories.UserRepository,
	activityRepo repositories.ActivityRepository,
	statsCache cache.Cache,
) api.StatsUseCase {
	return &StatsUseCaseImpl{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		cache:        statsCache,
	}
}

// GetStudentStats возвращает сводные показатели студента. Результат
// кэшируется и сбрасывается при записи активностей.
func (s *StatsUseCaseImpl) GetStudentStats(ctx context.Context, userID string) (*api.StudentStats, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetStudentStats), zap.String("userID", userID))
	log.Debug(ctx, msgComputingStats)

	if cached := s.fromCache(ctx, userID); cached != nil {
		log.Debug(ctx, msgStatsFromCache)
		return cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrFindStudent, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingStudent, err)
	}

	completed, err := s.activityRepo.CountCompleted(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrCountStats, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingCompleted, err)
	}

	until := time.Now().UTC().Add(DeadlineWindow)
	upcoming, err := s.activityRepo.CountUpcomingDeadlines(ctx, userID, until)
	if err != nil {
		log.Error(ctx, msgErrCountStats, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCountingDeadlines, err)
	}

	stats := &api.StudentStats{
		GPA:                 user.AcademicInfo.GPA,
		Attendance:          user.AcademicInfo.Attendance,
		CompletedActivities: completed,
		UpcomingDeadlines:   upcoming,
	}

	s.toCache(ctx, userID, stats)

	log.Debug(ctx, msgStatsComputed)
	return stats, nil
}

// fromCache возвращает закэшированные показатели или nil.
func (s *StatsUseCaseImpl) fromCache(ctx context.Context, userID string) *api.StudentStats {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, statsCacheKey(userID))
	if err != nil || raw == "" {
		return nil
	}

	var stats api.StudentStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrDecodeCached, zap.Error(err))
		return nil
	}

	return &stats
}

func (s *StatsUseCaseImpl) toCache(ctx context.Context, userID string, stats *api.StudentStats) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, statsCacheKey(userID), string(raw), statsCacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCacheStats, zap.Error(err))
	}
}
