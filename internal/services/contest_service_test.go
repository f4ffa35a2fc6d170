package services

import (
	"encoding/json"
	"testing"
	"time"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type contestFixture struct {
	contests      *fakeContestRepo
	applications  *fakeApplicationRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	service       *ContestService

	brand   *models.User
	creator *models.User
}

func newContestFixture() *contestFixture {
	f := &contestFixture{
		contests:      newFakeContestRepo(),
		applications:  newFakeApplicationRepo(),
		users:         newFakeUserRepo(),
		notifications: newFakeNotificationRepo(),
	}
	f.service = NewContestService(f.contests, f.applications, f.users, f.notifications)
	f.brand = f.users.add(models.UserRoleBrand, "brand@example.com")
	f.creator = f.users.add(models.UserRoleCreator, "creator@example.com")
	return f
}

func (f *contestFixture) seedContest(t *testing.T, status models.ContestStatus) *models.Contest {
	t.Helper()
	contest, err := f.service.CreateContest(&dto.CreateContestRequest{
		UserID:    f.brand.ID,
		BasicInfo: models.ContestBasicInfo{Name: "Summer UGC Challenge"},
		PrizeTimeline: models.ContestPrizeTimeline{
			Budget:      "1500.00",
			WinnerCount: 3,
		},
	})
	require.NoError(t, err)
	if status != models.ContestStatusDraft {
		require.NoError(t, f.contests.UpdateStatus(contest.ID, status, ""))
		contest.Status = status
	}
	return contest
}

func TestCreateContest(t *testing.T) {
	f := newContestFixture()

	contest := f.seedContest(t, models.ContestStatusDraft)
	assert.Equal(t, models.ContestStatusDraft, contest.Status)
	assert.Equal(t, "1500", contest.Budget.String())
	assert.Equal(t, 3, contest.WinnerCount)
}

func TestCreateContest_CreatorsCannotCreate(t *testing.T) {
	f := newContestFixture()

	_, err := f.service.CreateContest(&dto.CreateContestRequest{
		UserID:    f.creator.ID,
		BasicInfo: models.ContestBasicInfo{Name: "Nope"},
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestCreateContest_Validation(t *testing.T) {
	f := newContestFixture()

	_, err := f.service.CreateContest(&dto.CreateContestRequest{UserID: f.brand.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Contest name is required")

	_, err = f.service.CreateContest(&dto.CreateContestRequest{
		UserID:        f.brand.ID,
		BasicInfo:     models.ContestBasicInfo{Name: "Bad budget"},
		PrizeTimeline: models.ContestPrizeTimeline{Budget: "-10"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Prize budget cannot be negative")

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err = f.service.CreateContest(&dto.CreateContestRequest{
		UserID:        f.brand.ID,
		BasicInfo:     models.ContestBasicInfo{Name: "Bad dates"},
		PrizeTimeline: models.ContestPrizeTimeline{StartDate: &start, EndDate: &end},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "End date cannot be before start date")
}

func TestPublishContest(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusDraft)

	require.NoError(t, f.service.PublishContest(contest.ID, f.brand.ID))

	updated, _ := f.contests.FindByID(contest.ID)
	assert.Equal(t, models.ContestStatusPending, updated.Status)
}

func TestPublishContest_OnlyDraftOrEditRequested(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)

	err := f.service.PublishContest(contest.ID, f.brand.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestUpdateContest_OwnershipAndStatusGuards(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusDraft)

	err := f.service.UpdateContest(contest.ID, f.creator.ID, &dto.UpdateContestRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	require.NoError(t, f.contests.UpdateStatus(contest.ID, models.ContestStatusActive, ""))
	err = f.service.UpdateContest(contest.ID, f.brand.ID, &dto.UpdateContestRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft or edit-requested")
}

func TestUpdateContest_PartialSections(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusDraft)

	err := f.service.UpdateContest(contest.ID, f.brand.ID, &dto.UpdateContestRequest{
		BasicInfo: &models.ContestBasicInfo{Name: "Renamed Challenge"},
	})
	require.NoError(t, err)

	resp, err := f.service.GetContest(contest.ID, f.brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Challenge", resp.BasicInfo.Name)
	// Untouched sections survive the partial update.
	assert.Equal(t, 3, resp.PrizeTimeline.WinnerCount)
}

func TestDeleteContest_DraftOnly(t *testing.T) {
	f := newContestFixture()
	draft := f.seedContest(t, models.ContestStatusDraft)
	active := f.seedContest(t, models.ContestStatusActive)

	require.NoError(t, f.service.DeleteContest(draft.ID, f.brand.ID))
	_, err := f.contests.FindByID(draft.ID)
	assert.Error(t, err)

	err = f.service.DeleteContest(active.ID, f.brand.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only draft contests can be deleted")
}

func TestCreateApplication(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)

	application, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:          f.creator.ID,
		ContestID:       contest.ID,
		PostURL:         "https://tiktok.com/@creator/video/1",
		ApplicationText: "Pick me",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, application.Status)
}

func TestCreateApplication_Guards(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)

	// Brands cannot apply.
	_, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.brand.ID,
		ContestID: contest.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Draft contests are closed to applications.
	draft := f.seedContest(t, models.ContestStatusDraft)
	_, err = f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: draft.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrContestNotActive)

	// Expired contests too, even while still marked active.
	expired := f.seedContest(t, models.ContestStatusActive)
	past := time.Now().Add(-time.Hour)
	stored, _ := f.contests.FindByID(expired.ID)
	stored.EndDate = &past
	require.NoError(t, f.contests.Update(stored))
	_, err = f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: expired.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrContestNotActive)
}

func TestCreateApplication_NoSelfApply(t *testing.T) {
	f := newContestFixture()

	// An admin-owned contest lets the owner hold the creator role too.
	owner := f.users.add(models.UserRoleCreator, "owner-creator@example.com")
	contest := &models.Contest{UserID: owner.ID, Status: models.ContestStatusActive}
	require.NoError(t, f.contests.Create(contest))

	_, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    owner.ID,
		ContestID: contest.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrCannotApplyToOwnContest)
}

func TestCreateApplication_DuplicateRejected(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)

	req := &dto.CreateApplicationRequest{UserID: f.creator.ID, ContestID: contest.ID}
	_, err := f.service.CreateApplication(req)
	require.NoError(t, err)

	_, err = f.service.CreateApplication(req)
	assert.ErrorIs(t, err, apperrors.ErrApplicationAlreadyExists)
}

func TestGetContestApplications_OwnerOnly(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)
	_, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: contest.ID,
	})
	require.NoError(t, err)

	_, err = f.service.GetContestApplications(contest.ID, f.creator.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	summaries, err := f.service.GetContestApplications(contest.ID, f.brand.ID)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestUpdateApplicationStatus_NotifiesApplicantOnChange(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)
	application, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: contest.ID,
	})
	require.NoError(t, err)

	err = f.service.UpdateApplicationStatus(application.ID, f.brand.ID,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusApproved})
	require.NoError(t, err)

	updated, _ := f.applications.FindByID(application.ID)
	assert.Equal(t, models.ApplicationStatusApproved, updated.Status)

	// The applicant notification is written from a goroutine.
	require.Eventually(t, func() bool {
		return len(f.notifications.all()) == 1
	}, time.Second, 10*time.Millisecond)

	notifications := f.notifications.all()
	assert.Equal(t, "creator@example.com", notifications[0].RecipientEmail)
	assert.Equal(t, `Your application to "Summer UGC Challenge" has been approved.`, notifications[0].Message)
}

func TestUpdateApplicationStatus_NoNotificationWithoutChange(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)
	application, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: contest.ID,
	})
	require.NoError(t, err)

	err = f.service.UpdateApplicationStatus(application.ID, f.brand.ID,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusPending})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.notifications.all())
}

func TestUpdateApplicationStatus_OwnerOnly(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)
	application, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
		UserID:    f.creator.ID,
		ContestID: contest.ID,
	})
	require.NoError(t, err)

	err = f.service.UpdateApplicationStatus(application.ID, f.creator.ID,
		&dto.UpdateApplicationStatusRequest{Status: models.ApplicationStatusApproved})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestGetApplicationStats(t *testing.T) {
	f := newContestFixture()
	contest := f.seedContest(t, models.ContestStatusActive)

	second := f.users.add(models.UserRoleCreator, "second@example.com")
	for _, creator := range []*models.User{f.creator, second} {
		_, err := f.service.CreateApplication(&dto.CreateApplicationRequest{
			UserID:    creator.ID,
			ContestID: contest.ID,
		})
		require.NoError(t, err)
	}

	stats, err := f.service.GetApplicationStats(contest.ID, f.brand.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalApplications)
	assert.Equal(t, int64(2), stats.PendingApplications)
}

func TestListConsolidated_KeepsNewestPerOwner(t *testing.T) {
	f := newContestFixture()
	otherBrand := f.users.add(models.UserRoleBrand, "other-brand@example.com")
	now := time.Now()

	seed := func(ownerID, name string, age time.Duration) {
		basic, err := json.Marshal(models.ContestBasicInfo{Name: name})
		require.NoError(t, err)
		require.NoError(t, f.contests.Create(&models.Contest{
			UserID:    ownerID,
			BasicInfo: datatypes.JSON(basic),
			Status:    models.ContestStatusPending,
			BaseModel: models.BaseModel{CreatedAt: now.Add(-age)},
		}))
	}

	seed(f.brand.ID, "Spring UGC Challenge", 48*time.Hour)
	seed(f.brand.ID, "Summer UGC Challenge", time.Hour)
	seed(otherBrand.ID, "Autumn Lookbook", 24*time.Hour)

	list, err := f.service.ListConsolidated(dto.ListContestsRequest{
		Status: string(models.ContestStatusPending),
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)

	require.Len(t, list.Contests, 2)
	assert.Equal(t, 2, list.Pagination.Total)
	assert.Equal(t, "Summer UGC Challenge", list.Contests[0].BasicInfo.Name)
	assert.Equal(t, f.brand.Email, list.Contests[0].OwnerEmail)
	assert.Equal(t, "Autumn Lookbook", list.Contests[1].BasicInfo.Name)
	assert.Equal(t, otherBrand.Email, list.Contests[1].OwnerEmail)
}

func TestListConsolidated_FiltersByStatus(t *testing.T) {
	f := newContestFixture()
	f.seedContest(t, models.ContestStatusDraft)
	f.seedContest(t, models.ContestStatusPending)

	list, err := f.service.ListConsolidated(dto.ListContestsRequest{
		Status: string(models.ContestStatusPending),
		Page:   1,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, list.Contests, 1)
	assert.Equal(t, models.ContestStatusPending, list.Contests[0].Status)
}

func TestGetOwnerContests_SelfOnly(t *testing.T) {
	f := newContestFixture()
	f.seedContest(t, models.ContestStatusDraft)

	_, err := f.service.GetOwnerContests(f.brand.ID, f.creator.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	contests, err := f.service.GetOwnerContests(f.brand.ID, f.brand.ID)
	require.NoError(t, err)
	assert.Len(t, contests, 1)
}
