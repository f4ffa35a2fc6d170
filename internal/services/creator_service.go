package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CreatorService struct {
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.CreatorProfileRepository
	userRepo         repositories.UserRepository
}

func NewCreatorService(
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.CreatorProfileRepository,
	userRepo repositories.UserRepository,
) *CreatorService {
	return &CreatorService{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
	}
}

// Verification submission

func (s *CreatorService) SubmitVerification(req *dto.SubmitVerificationRequest) (*models.CreatorVerification, error) {
	profileJSON, err := json.Marshal(req.ProfileData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile data: %w", err)
	}

	verification := &models.CreatorVerification{
		UserID:      req.UserID,
		Email:       req.Email,
		ProfileData: datatypes.JSON(profileJSON),
		Status:      models.VerificationStatusPending,
	}

	if err := s.verificationRepo.Create(verification); err != nil {
		return nil, err
	}

	return verification, nil
}

// Consolidated reads

// GetConsolidated returns the derived creator view for one verification id.
// A profile lookup failure falls back to verification-only data.
func (s *CreatorService) GetConsolidated(verificationID string) (*dto.ConsolidatedCreator, error) {
	verification, err := s.verificationRepo.FindByID(verificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrVerificationNotFound
		}
		return nil, err
	}

	profile := s.resolveProfile(verification)
	consolidated := ConsolidateCreator(verification, profile)
	return &consolidated, nil
}

// List produces one page of consolidated creator views. The whole matching
// set is fetched, deduplicated and consolidated before the page is sliced in
// memory. Profile lookups for the deduplicated set fan out concurrently and
// are awaited jointly.
func (s *CreatorService) List(req dto.ListCreatorsRequest) (*dto.ConsolidatedCreatorList, error) {
	records, err := s.verificationRepo.FindAll(repositories.VerificationCriteria{
		Status: req.Status,
		Email:  req.Email,
		UserID: req.UserID,
	})
	if err != nil {
		return nil, err
	}

	deduped := dedupeNewest(records)

	consolidated := make([]dto.ConsolidatedCreator, len(deduped))
	var wg sync.WaitGroup
	for i := range deduped {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profile := s.resolveProfile(&deduped[i])
			consolidated[i] = ConsolidateCreator(&deduped[i], profile)
		}(i)
	}
	wg.Wait()

	start, end, meta := paginate(len(consolidated), req.Page, req.Limit)

	return &dto.ConsolidatedCreatorList{
		Creators:   consolidated[start:end],
		Pagination: meta,
	}, nil
}

// resolveProfile finds the creator profile linked to a verification record.
// The email comes from the embedded document or the top-level field; when
// neither is set, the users collection is consulted by userId to discover it.
// Failures are logged per record, never propagated.
func (s *CreatorService) resolveProfile(v *models.CreatorVerification) *models.CreatorProfile {
	pd := v.DecodedProfileData()
	email := firstNonEmpty(pd.Email, v.Email)

	if email == "" && v.UserID != "" {
		user, err := s.userRepo.FindByID(v.UserID)
		if err != nil {
			logger.Warn("profile lookup: user not resolvable", "verification_id", v.ID, "user_id", v.UserID, "error", err.Error())
			return nil
		}
		email = user.Email
	}

	if email == "" {
		return nil
	}

	profile, err := s.profileRepo.FindByEmail(email)
	if err != nil {
		if !apperrors.Is(err, repositories.ErrProfileNotFound) {
			logger.Warn("profile lookup failed", "verification_id", v.ID, "email", email, "error", err.Error())
		}
		return nil
	}
	return profile
}

// Partial update

// UpdateVerification applies a partial update. The record's userId, createdAt
// and id are immutable; profileData is deep-merged rather than replaced. Only
// the owning user or an administrator may mutate the record.
func (s *CreatorService) UpdateVerification(verificationID, requesterID string, requesterRole models.UserRole, req *dto.UpdateVerificationRequest, forbiddenFields []string) (*models.CreatorVerification, error) {
	if len(forbiddenFields) > 0 {
		return nil, apperrors.ErrImmutableField(forbiddenFields)
	}

	verification, err := s.verificationRepo.FindByID(verificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrVerificationNotFound
		}
		return nil, err
	}

	if verification.UserID != requesterID && requesterRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Email != nil {
		verification.Email = *req.Email
	}
	if req.Status != nil {
		verification.Status = models.VerificationStatus(*req.Status)
	}

	if req.ProfileData != nil {
		merged := map[string]interface{}{}
		if len(verification.ProfileData) > 0 {
			_ = json.Unmarshal(verification.ProfileData, &merged)
		}
		deepMerge(merged, req.ProfileData)

		mergedJSON, err := json.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal merged profile data: %w", err)
		}
		verification.ProfileData = datatypes.JSON(mergedJSON)
	}

	if err := s.verificationRepo.Update(verification); err != nil {
		return nil, err
	}

	return verification, nil
}

// deepMerge merges src into dst recursively; nested maps merge key-wise,
// everything else is replaced by src.
func deepMerge(dst, src map[string]interface{}) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]interface{}); ok {
			if dstMap, ok := dst[key].(map[string]interface{}); ok {
				deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = srcVal
	}
}
