package services

import (
	"creatorhub_backend/internal/email"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"
)

// Per-action outcome: the status written to the record and the fixed
// notification template addressed to the subject.
type actionOutcome struct {
	status  string
	message string
}

var creatorActions = map[models.ApprovalAction]actionOutcome{
	models.ActionApprove: {
		status:  string(models.VerificationStatusApproved),
		message: "Your creator profile has been approved! You can now create content.",
	},
	models.ActionReject: {
		status:  string(models.VerificationStatusRejected),
		message: "Your creator profile application has been rejected.",
	},
	models.ActionRequestInfo: {
		status:  string(models.VerificationStatusInfoRequested),
		message: "We need more information to review your creator profile. Please update your application.",
	},
	models.ActionSuspend: {
		status:  string(models.VerificationStatusSuspended),
		message: "Your creator profile has been suspended.",
	},
}

var contestActions = map[models.ApprovalAction]actionOutcome{
	models.ActionApprove: {
		status:  string(models.ContestStatusActive),
		message: "Your contest has been approved and is now live!",
	},
	models.ActionReject: {
		status:  string(models.ContestStatusRejected),
		message: "Your contest has been rejected.",
	},
	models.ActionRequestEdit: {
		status:  string(models.ContestStatusRequestEdit),
		message: "Your contest requires changes before it can go live.",
	},
}

// ApprovalService drives administrator status transitions for creator
// verifications and contests. The three writes per action (record update,
// profile mirror, notification) are issued sequentially with no cross-write
// atomicity: only a failure of the record update is surfaced, mirror and
// notification failures are logged and skipped.
type ApprovalService struct {
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.CreatorProfileRepository
	brandProfileRepo repositories.BrandProfileRepository
	contestRepo      repositories.ContestRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	emailProvider    email.Provider
}

func NewApprovalService(
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.CreatorProfileRepository,
	brandProfileRepo repositories.BrandProfileRepository,
	contestRepo repositories.ContestRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	emailProvider email.Provider,
) *ApprovalService {
	return &ApprovalService{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		brandProfileRepo: brandProfileRepo,
		contestRepo:      contestRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		emailProvider:    emailProvider,
	}
}

// ApplyCreatorAction executes one administrative action against a
// verification record. Any current status may transition to any target
// (administrator override); the action verb itself is validated.
func (s *ApprovalService) ApplyCreatorAction(req *dto.ApprovalActionRequest) error {
	outcome, ok := creatorActions[models.ApprovalAction(req.Action)]
	if !ok {
		return apperrors.ErrInvalidApprovalAction
	}

	verification, err := s.verificationRepo.FindByID(req.VerificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.ErrVerificationNotFound
		}
		return err
	}

	// (a) status + optional feedback on the record; the only surfaced failure
	status := models.VerificationStatus(outcome.status)
	if err := s.verificationRepo.UpdateStatus(verification.ID, status, req.Message); err != nil {
		return err
	}

	recipient := s.resolveCreatorEmail(req, verification)
	if recipient == "" {
		logger.Warn("creator action: no resolvable recipient email", "verification_id", verification.ID)
		return nil
	}

	// (b) opportunistic profile mirror
	s.mirrorCreatorStatus(recipient, verification.UserID, outcome.status)

	// (c) templated notification
	if err := s.notificationRepo.CreateStatusNotification(
		recipient,
		repositories.NotificationTypeVerificationStatus,
		outcome.message,
	); err != nil {
		logger.Warn("creator action: notification write failed", "verification_id", verification.ID, "error", err.Error())
	}

	s.sendOutcomeEmail(recipient, "Creator profile update", outcome.message)
	return nil
}

// ApplyContestAction is the parallel flow for contests; the mirror target is
// the owning brand's profile.
func (s *ApprovalService) ApplyContestAction(req *dto.ContestApprovalRequest) error {
	outcome, ok := contestActions[models.ApprovalAction(req.Action)]
	if !ok {
		return apperrors.ErrInvalidApprovalAction
	}

	contest, err := s.contestRepo.FindByID(req.ContestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContestNotFound) {
			return apperrors.ErrContestNotFound
		}
		return err
	}

	status := models.ContestStatus(outcome.status)
	if err := s.contestRepo.UpdateStatus(contest.ID, status, req.Message); err != nil {
		return err
	}

	owner, err := s.userRepo.FindByID(contest.UserID)
	if err != nil {
		logger.Warn("contest action: owner not resolvable", "contest_id", contest.ID, "user_id", contest.UserID, "error", err.Error())
		return nil
	}

	if err := s.brandProfileRepo.SetReviewStatus(owner.Email, outcome.status); err != nil {
		if !apperrors.Is(err, repositories.ErrBrandProfileNotFound) {
			logger.Warn("contest action: brand profile mirror failed", "contest_id", contest.ID, "error", err.Error())
		}
	}

	if err := s.notificationRepo.CreateStatusNotification(
		owner.Email,
		repositories.NotificationTypeContestStatus,
		outcome.message,
	); err != nil {
		logger.Warn("contest action: notification write failed", "contest_id", contest.ID, "error", err.Error())
	}

	s.sendOutcomeEmail(owner.Email, "Contest update", outcome.message)
	return nil
}

// resolveCreatorEmail prefers the explicit request email, then the record's
// own email fields, then a users lookup by the record's userId.
func (s *ApprovalService) resolveCreatorEmail(req *dto.ApprovalActionRequest, v *models.CreatorVerification) string {
	pd := v.DecodedProfileData()
	if email := firstNonEmpty(req.CreatorEmail, pd.Email, v.Email); email != "" {
		return email
	}

	userID := firstNonEmpty(req.UserID, v.UserID)
	if userID == "" {
		return ""
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return ""
	}
	return user.Email
}

// mirrorCreatorStatus upserts the profile mirror: existing profiles get the
// simplified status written, missing ones are created opportunistically.
func (s *ApprovalService) mirrorCreatorStatus(email, userID, status string) {
	err := s.profileRepo.SetVerificationStatus(email, status)
	if err == nil {
		return
	}
	if !apperrors.Is(err, repositories.ErrProfileNotFound) {
		logger.Warn("creator action: profile mirror failed", "email", email, "error", err.Error())
		return
	}

	if err := s.profileRepo.Upsert(&models.CreatorProfile{
		Email:              email,
		UserID:             userID,
		VerificationStatus: status,
	}); err != nil {
		logger.Warn("creator action: profile mirror create failed", "email", email, "error", err.Error())
	}
}

func (s *ApprovalService) sendOutcomeEmail(to, subject, body string) {
	if s.emailProvider == nil {
		return
	}
	if err := s.emailProvider.Send(to, subject, body); err != nil {
		logger.Warn("outcome email delivery failed", "to", to, "error", err.Error())
	}
}
