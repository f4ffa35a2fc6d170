package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ContestService struct {
	contestRepo      repositories.ContestRepository
	applicationRepo  repositories.ApplicationRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewContestService(
	contestRepo repositories.ContestRepository,
	applicationRepo repositories.ApplicationRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) *ContestService {
	return &ContestService{
		contestRepo:      contestRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Contest operations

func (s *ContestService) CreateContest(req *dto.CreateContestRequest) (*models.Contest, error) {
	owner, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if owner.Role != models.UserRoleBrand && owner.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.BasicInfo.Name == "" {
		return nil, apperrors.NewBadRequestError("Contest name is required")
	}

	budget := decimal.Zero
	if req.PrizeTimeline.Budget != "" {
		budget, err = decimal.NewFromString(req.PrizeTimeline.Budget)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid prize budget")
		}
		if budget.IsNegative() {
			return nil, apperrors.NewBadRequestError("Prize budget cannot be negative")
		}
	}

	if req.PrizeTimeline.StartDate != nil && req.PrizeTimeline.EndDate != nil &&
		req.PrizeTimeline.EndDate.Before(*req.PrizeTimeline.StartDate) {
		return nil, apperrors.NewBadRequestError("End date cannot be before start date")
	}

	basicJSON, _ := json.Marshal(req.BasicInfo)
	requirementsJSON, _ := json.Marshal(req.Requirements)
	prizeJSON, _ := json.Marshal(req.PrizeTimeline)
	incentivesJSON, _ := json.Marshal(req.Incentives)

	contest := &models.Contest{
		UserID:        req.UserID,
		BasicInfo:     datatypes.JSON(basicJSON),
		Requirements:  datatypes.JSON(requirementsJSON),
		PrizeTimeline: datatypes.JSON(prizeJSON),
		Incentives:    datatypes.JSON(incentivesJSON),
		Budget:        budget,
		WinnerCount:   req.PrizeTimeline.WinnerCount,
		StartDate:     req.PrizeTimeline.StartDate,
		EndDate:       req.PrizeTimeline.EndDate,
		Status:        models.ContestStatusDraft,
	}

	if err := s.contestRepo.Create(contest); err != nil {
		return nil, err
	}
	return contest, nil
}

func (s *ContestService) GetContest(contestID, requesterID string) (*dto.ContestResponse, error) {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return nil, apperrors.ErrContestNotFound
		}
		return nil, err
	}

	if requesterID != contest.UserID {
		go s.contestRepo.IncrementViews(contestID)
	}

	return s.buildContestResponse(contest, requesterID == contest.UserID), nil
}

func (s *ContestService) UpdateContest(contestID, requesterID string, req *dto.UpdateContestRequest) error {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return apperrors.ErrContestNotFound
		}
		return err
	}

	if contest.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	if contest.Status != models.ContestStatusDraft && contest.Status != models.ContestStatusRequestEdit {
		return apperrors.ErrInvalidStatus("contest", "Only draft or edit-requested contests can be updated")
	}

	if req.BasicInfo != nil {
		basicJSON, err := json.Marshal(req.BasicInfo)
		if err != nil {
			return fmt.Errorf("failed to marshal basic info: %w", err)
		}
		contest.BasicInfo = datatypes.JSON(basicJSON)
	}
	if req.Requirements != nil {
		requirementsJSON, err := json.Marshal(req.Requirements)
		if err != nil {
			return fmt.Errorf("failed to marshal requirements: %w", err)
		}
		contest.Requirements = datatypes.JSON(requirementsJSON)
	}
	if req.PrizeTimeline != nil {
		if req.PrizeTimeline.Budget != "" {
			budget, err := decimal.NewFromString(req.PrizeTimeline.Budget)
			if err != nil || budget.IsNegative() {
				return apperrors.NewBadRequestError("Invalid prize budget")
			}
			contest.Budget = budget
		}
		prizeJSON, err := json.Marshal(req.PrizeTimeline)
		if err != nil {
			return fmt.Errorf("failed to marshal prize timeline: %w", err)
		}
		contest.PrizeTimeline = datatypes.JSON(prizeJSON)
		contest.WinnerCount = req.PrizeTimeline.WinnerCount
		contest.StartDate = req.PrizeTimeline.StartDate
		contest.EndDate = req.PrizeTimeline.EndDate
	}
	if req.Incentives != nil {
		incentivesJSON, err := json.Marshal(*req.Incentives)
		if err != nil {
			return fmt.Errorf("failed to marshal incentives: %w", err)
		}
		contest.Incentives = datatypes.JSON(incentivesJSON)
	}

	return s.contestRepo.Update(contest)
}

// PublishContest submits a draft for administrative review.
func (s *ContestService) PublishContest(contestID, requesterID string) error {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return apperrors.ErrContestNotFound
		}
		return err
	}

	if contest.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}
	if contest.Status != models.ContestStatusDraft && contest.Status != models.ContestStatusRequestEdit {
		return apperrors.ErrInvalidStatus("contest", "Only draft contests can be submitted for review")
	}

	contest.Status = models.ContestStatusPending
	return s.contestRepo.Update(contest)
}

func (s *ContestService) DeleteContest(contestID, requesterID string) error {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return apperrors.ErrContestNotFound
		}
		return err
	}

	if contest.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}
	if contest.Status != models.ContestStatusDraft {
		return apperrors.ErrInvalidStatus("contest", "Only draft contests can be deleted")
	}

	return s.contestRepo.Delete(contestID)
}

// List produces one page of contests with decoded sections and owner names.
// Like the creator list, the matching set is materialized whole and sliced in
// memory so totals reflect the post-filter set.
func (s *ContestService) List(req dto.ListContestsRequest) (*dto.ContestListResponse, error) {
	contests, err := s.contestRepo.FindAll(repositories.ContestCriteria{
		Status: req.Status,
		UserID: req.UserID,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ContestResponse, 0, len(contests))
	for i := range contests {
		resp := s.buildContestResponse(&contests[i], false)
		s.attachOwner(resp)
		responses = append(responses, *resp)
	}

	start, end, meta := paginate(len(responses), req.Page, req.Limit)

	return &dto.ContestListResponse{
		Contests:   responses[start:end],
		Pagination: meta,
	}, nil
}

// ListConsolidated feeds the administrative review surface. Like the creator
// list, the whole matching set is fetched, reduced to one record per group
// key (the contest owner, newest wins), decorated concurrently with owner
// identity, then sliced in memory.
func (s *ContestService) ListConsolidated(req dto.ListContestsRequest) (*dto.ContestListResponse, error) {
	contests, err := s.contestRepo.FindAll(repositories.ContestCriteria{
		Status: req.Status,
		UserID: req.UserID,
	})
	if err != nil {
		return nil, err
	}

	// Records arrive ordered by createdAt descending, so the first contest
	// seen per owner is that owner's newest. Ownerless records are dropped.
	seen := map[string]bool{}
	newest := make([]models.Contest, 0, len(contests))
	for _, contest := range contests {
		if contest.UserID == "" || seen[contest.UserID] {
			continue
		}
		seen[contest.UserID] = true
		newest = append(newest, contest)
	}

	responses := make([]dto.ContestResponse, len(newest))
	var wg sync.WaitGroup
	for i := range newest {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := s.buildContestResponse(&newest[i], false)
			s.attachOwner(resp)
			responses[i] = *resp
		}(i)
	}
	wg.Wait()

	start, end, meta := paginate(len(responses), req.Page, req.Limit)

	return &dto.ContestListResponse{
		Contests:   responses[start:end],
		Pagination: meta,
	}, nil
}

func (s *ContestService) GetOwnerContests(ownerID, requesterID string) ([]*dto.ContestResponse, error) {
	if ownerID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	contests, err := s.contestRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ContestResponse, 0, len(contests))
	for i := range contests {
		responses = append(responses, s.buildContestResponse(&contests[i], true))
	}
	return responses, nil
}

func (s *ContestService) GetActiveContests(limit int) ([]*dto.ContestResponse, error) {
	contests, err := s.contestRepo.FindActive(limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ContestResponse, 0, len(contests))
	for i := range contests {
		responses = append(responses, s.buildContestResponse(&contests[i], false))
	}
	return responses, nil
}

// Application operations

func (s *ContestService) CreateApplication(req *dto.CreateApplicationRequest) (*models.ContestApplication, error) {
	creator, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, err
	}
	if creator.Role != models.UserRoleCreator {
		return nil, apperrors.ErrInsufficientPermissions
	}

	contest, err := s.contestRepo.FindByID(req.ContestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return nil, apperrors.ErrContestNotFound
		}
		return nil, err
	}

	if contest.Status != models.ContestStatusActive {
		return nil, apperrors.ErrContestNotActive
	}
	if contest.EndDate != nil && contest.EndDate.Before(time.Now()) {
		return nil, apperrors.ErrContestNotActive
	}
	if contest.UserID == req.UserID {
		return nil, apperrors.ErrCannotApplyToOwnContest
	}

	application := &models.ContestApplication{
		ContestID:       req.ContestID,
		UserID:          req.UserID,
		PostURL:         req.PostURL,
		ApplicationText: req.ApplicationText,
		SampleURLs:      pq.StringArray(req.SampleURLs),
		Status:          models.ApplicationStatusPending,
	}

	if err := s.applicationRepo.Create(application); err != nil {
		if apperrors.Is(err, repositories.ErrApplicationAlreadyExists) {
			return nil, apperrors.ErrApplicationAlreadyExists
		}
		return nil, err
	}

	return application, nil
}

func (s *ContestService) GetContestApplications(contestID, requesterID string) ([]dto.ApplicationSummary, error) {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return nil, apperrors.ErrContestNotFound
		}
		return nil, err
	}

	if contest.UserID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.applicationRepo.FindByContest(contestID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ApplicationSummary, 0, len(applications))
	for _, a := range applications {
		summaries = append(summaries, buildApplicationSummary(&a))
	}
	return summaries, nil
}

func (s *ContestService) GetCreatorApplications(creatorID, requesterID string) ([]models.ContestApplication, error) {
	if creatorID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.applicationRepo.FindByCreator(creatorID)
}

// UpdateApplicationStatus reviews one application: only the contest owner may
// act, and a status change notifies the applicant.
func (s *ContestService) UpdateApplicationStatus(applicationID, requesterID string, req *dto.UpdateApplicationStatusRequest) error {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.NewNotFoundError("Application not found")
		}
		return err
	}

	contest, err := s.contestRepo.FindByID(application.ContestID)
	if err != nil {
		return err
	}

	if contest.UserID != requesterID {
		return apperrors.ErrInsufficientPermissions
	}

	oldStatus := application.Status
	if err := s.applicationRepo.UpdateStatus(applicationID, req.Status); err != nil {
		return err
	}

	if oldStatus != req.Status {
		go s.notifyApplicant(application.UserID, contest, req.Status)
	}

	return nil
}

func (s *ContestService) GetApplicationStats(contestID, requesterID string) (*repositories.ApplicationStats, error) {
	contest, err := s.contestRepo.FindByID(contestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return nil, apperrors.ErrContestNotFound
		}
		return nil, err
	}

	if contest.UserID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return s.applicationRepo.GetStats(contestID)
}

// Helpers

func (s *ContestService) buildContestResponse(contest *models.Contest, includeApplications bool) *dto.ContestResponse {
	var basicInfo models.ContestBasicInfo
	var requirements models.ContestRequirements
	var prizeTimeline models.ContestPrizeTimeline
	var incentives []models.ContestIncentive

	if len(contest.BasicInfo) > 0 {
		_ = json.Unmarshal(contest.BasicInfo, &basicInfo)
	}
	if len(contest.Requirements) > 0 {
		_ = json.Unmarshal(contest.Requirements, &requirements)
	}
	if len(contest.PrizeTimeline) > 0 {
		_ = json.Unmarshal(contest.PrizeTimeline, &prizeTimeline)
	}
	if len(contest.Incentives) > 0 {
		_ = json.Unmarshal(contest.Incentives, &incentives)
	}

	response := &dto.ContestResponse{
		ID:              contest.ID,
		UserID:          contest.UserID,
		BasicInfo:       basicInfo,
		Requirements:    requirements,
		PrizeTimeline:   prizeTimeline,
		Incentives:      incentives,
		Budget:          contest.Budget.String(),
		WinnerCount:     contest.WinnerCount,
		StartDate:       contest.StartDate,
		EndDate:         contest.EndDate,
		Status:          contest.Status,
		FeedbackMessage: contest.FeedbackMessage,
		Views:           contest.Views,
		CreatedAt:       contest.CreatedAt,
		UpdatedAt:       contest.UpdatedAt,
	}

	if includeApplications {
		applications, err := s.applicationRepo.FindByContest(contest.ID)
		if err == nil {
			summaries := make([]dto.ApplicationSummary, 0, len(applications))
			for _, a := range applications {
				summaries = append(summaries, buildApplicationSummary(&a))
			}
			response.Applications = summaries
		}

		stats, err := s.applicationRepo.GetStats(contest.ID)
		if err == nil {
			response.Stats = &dto.ContestApplicationStatsSummary{
				TotalApplications:    stats.TotalApplications,
				PendingApplications:  stats.PendingApplications,
				ApprovedApplications: stats.ApprovedApplications,
				RejectedApplications: stats.RejectedApplications,
			}
		}
	}

	return response
}

func (s *ContestService) attachOwner(resp *dto.ContestResponse) {
	owner, err := s.userRepo.FindByID(resp.UserID)
	if err != nil {
		return
	}
	resp.OwnerEmail = owner.Email
}

func (s *ContestService) notifyApplicant(applicantID string, contest *models.Contest, status models.ApplicationStatus) {
	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		return
	}

	var basicInfo models.ContestBasicInfo
	if len(contest.BasicInfo) > 0 {
		_ = json.Unmarshal(contest.BasicInfo, &basicInfo)
	}

	message := fmt.Sprintf("Your application to %q has been %s.", basicInfo.Name, status)
	_ = s.notificationRepo.CreateStatusNotification(
		applicant.Email,
		repositories.NotificationTypeApplicationStatus,
		message,
	)
}

func buildApplicationSummary(a *models.ContestApplication) dto.ApplicationSummary {
	return dto.ApplicationSummary{
		ID:              a.ID,
		ContestID:       a.ContestID,
		UserID:          a.UserID,
		PostURL:         a.PostURL,
		ApplicationText: a.ApplicationText,
		SampleURLs:      []string(a.SampleURLs),
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}
