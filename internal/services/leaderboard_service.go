package services

import (
	"context"
	"encoding/json"

	"creatorhub_backend/internal/cache"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
)

const (
	leaderboardCacheKey     = "leaderboard:gmv"
	defaultLeaderboardLimit = 50
)

// LeaderboardService ranks creators by gross merchandise value. Results are
// served cache-aside: Redis first, the aggregate query on a miss.
type LeaderboardService struct {
	purchaseRepo     repositories.PurchaseRepository
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.CreatorProfileRepository
	userRepo         repositories.UserRepository
	cache            *cache.Cache
}

func NewLeaderboardService(
	purchaseRepo repositories.PurchaseRepository,
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.CreatorProfileRepository,
	userRepo repositories.UserRepository,
	c *cache.Cache,
) *LeaderboardService {
	return &LeaderboardService{
		purchaseRepo:     purchaseRepo,
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		cache:            c,
	}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	if limit <= 0 || limit > defaultLeaderboardLimit {
		limit = defaultLeaderboardLimit
	}

	if cached, ok := s.cache.Get(ctx, leaderboardCacheKey); ok {
		var entries []dto.LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			if len(entries) > limit {
				entries = entries[:limit]
			}
			return entries, nil
		}
		logger.Warn("Discarding malformed leaderboard cache entry")
	}

	sales, err := s.purchaseRepo.AggregateSalesByCreator(defaultLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(sales))
	for i, row := range sales {
		entry := dto.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     row.UserID,
			GMV:        row.GMV.String(),
			SalesCount: row.SalesCount,
			VideoCount: row.VideoCount,
		}
		s.decorate(&entry)
		entries = append(entries, entry)
	}

	if payload, err := json.Marshal(entries); err == nil {
		s.cache.Set(ctx, leaderboardCacheKey, string(payload))
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Invalidate drops the cached ranking. Called after a purchase settles.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, leaderboardCacheKey)
}

// decorate fills the display name and logo from the creator's newest
// verification and profile. Resolution failures leave the entry anonymous
// rather than failing the ranking.
func (s *LeaderboardService) decorate(entry *dto.LeaderboardEntry) {
	records, err := s.verificationRepo.FindAll(repositories.VerificationCriteria{UserID: entry.UserID})
	if err != nil || len(records) == 0 {
		entry.Name = unknownCreatorName
		return
	}

	newest := &records[0]

	var profile *models.CreatorProfile
	email := newest.Email
	if pd := newest.DecodedProfileData(); pd.Email != "" {
		email = pd.Email
	}
	if email == "" {
		if user, err := s.userRepo.FindByID(entry.UserID); err == nil {
			email = user.Email
		}
	}
	if email != "" {
		profile, _ = s.profileRepo.FindByEmail(email)
	}

	consolidated := ConsolidateCreator(newest, profile)
	entry.Name = consolidated.Name
	entry.LogoURL = consolidated.LogoURL
}
