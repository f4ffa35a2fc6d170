package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"creatorhub_backend/internal/auth"
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services"
	"creatorhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

// In-memory repository stubs for driving handlers over httptest. The handler
// tests issue requests synchronously, so no locking is needed here.

type stubVerificationRepo struct {
	records map[string]*models.CreatorVerification
}

func newStubVerificationRepo() *stubVerificationRepo {
	return &stubVerificationRepo{records: map[string]*models.CreatorVerification{}}
}

func (r *stubVerificationRepo) Create(v *models.CreatorVerification) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	clone := *v
	r.records[v.ID] = &clone
	return nil
}

func (r *stubVerificationRepo) FindByID(id string) (*models.CreatorVerification, error) {
	v, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVerificationRepo) FindAll(criteria repositories.VerificationCriteria) ([]models.CreatorVerification, error) {
	var out []models.CreatorVerification
	for _, v := range r.records {
		if criteria.Status != "" && string(v.Status) != criteria.Status {
			continue
		}
		if criteria.Email != "" && v.Email != criteria.Email {
			continue
		}
		if criteria.UserID != "" && v.UserID != criteria.UserID {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubVerificationRepo) Update(v *models.CreatorVerification) error {
	if _, ok := r.records[v.ID]; !ok {
		return repositories.ErrVerificationNotFound
	}
	clone := *v
	r.records[v.ID] = &clone
	return nil
}

func (r *stubVerificationRepo) UpdateStatus(id string, status models.VerificationStatus, feedback string) error {
	v, ok := r.records[id]
	if !ok {
		return repositories.ErrVerificationNotFound
	}
	v.Status = status
	if feedback != "" {
		v.FeedbackMessage = feedback
	}
	return nil
}

func (r *stubVerificationRepo) PatchAssetURL(id string, field string, url string) error {
	v, ok := r.records[id]
	if !ok {
		return repositories.ErrVerificationNotFound
	}
	switch field {
	case "logo_url":
		v.LogoURL = url
	case "id_document_url":
		v.IDDocumentURL = url
	case "intro_video_url":
		v.IntroVideoURL = url
	}
	return nil
}

type stubProfileRepo struct {
	profiles map[string]*models.CreatorProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[string]*models.CreatorProfile{}}
}

func (r *stubProfileRepo) FindByEmail(email string) (*models.CreatorProfile, error) {
	p, ok := r.profiles[email]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) Upsert(profile *models.CreatorProfile) error {
	clone := *profile
	r.profiles[profile.Email] = &clone
	return nil
}

func (r *stubProfileRepo) SetVerificationStatus(email string, status string) error {
	p, ok := r.profiles[email]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.VerificationStatus = status
	return nil
}

func (r *stubProfileRepo) SetAssetURL(email string, field string, url string) error {
	p, ok := r.profiles[email]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	if field == "logo_url" {
		p.LogoURL = url
	}
	return nil
}

type stubBrandProfileRepo struct{}

func (stubBrandProfileRepo) FindByEmail(string) (*models.BrandProfile, error) {
	return nil, repositories.ErrBrandProfileNotFound
}
func (stubBrandProfileRepo) Upsert(*models.BrandProfile) error { return nil }
func (stubBrandProfileRepo) SetReviewStatus(string, string) error {
	return repositories.ErrBrandProfileNotFound
}

type stubUserRepo struct {
	users map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*models.User{}}
}

func (r *stubUserRepo) add(role models.UserRole, email string) *models.User {
	u := &models.User{BaseModel: models.BaseModel{ID: uuid.NewString()}, Email: email, Role: role, Status: models.UserStatusActive}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) Update(user *models.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

type stubNotificationRepo struct {
	messages []string
}

func (r *stubNotificationRepo) Create(n *models.Notification) error {
	r.messages = append(r.messages, n.Message)
	return nil
}

func (r *stubNotificationRepo) FindByID(string) (*models.Notification, error) {
	return nil, repositories.ErrNotificationNotFound
}

func (r *stubNotificationRepo) FindByRecipient(string, repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	return nil, 0, nil
}

func (r *stubNotificationRepo) MarkAsRead(string) error              { return nil }
func (r *stubNotificationRepo) MarkAllAsRead(string) error           { return nil }
func (r *stubNotificationRepo) GetUnreadCount(string) (int64, error) { return 0, nil }
func (r *stubNotificationRepo) DeleteOlderThan(time.Time) (int64, error) {
	return 0, nil
}

func (r *stubNotificationRepo) CreateStatusNotification(recipientEmail, notificationType, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *stubNotificationRepo) CreateVideoSoldNotification(sellerEmail, videoTitle string) error {
	r.messages = append(r.messages, videoTitle)
	return nil
}

type stubContestRepo struct {
	contests map[string]*models.Contest
}

func newStubContestRepo() *stubContestRepo {
	return &stubContestRepo{contests: map[string]*models.Contest{}}
}

func (r *stubContestRepo) Create(contest *models.Contest) error {
	if contest.ID == "" {
		contest.ID = uuid.NewString()
	}
	if contest.CreatedAt.IsZero() {
		contest.CreatedAt = time.Now()
	}
	clone := *contest
	r.contests[contest.ID] = &clone
	return nil
}

func (r *stubContestRepo) FindByID(id string) (*models.Contest, error) {
	c, ok := r.contests[id]
	if !ok {
		return nil, repositories.ErrContestNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubContestRepo) FindAll(criteria repositories.ContestCriteria) ([]models.Contest, error) {
	var out []models.Contest
	for _, c := range r.contests {
		if criteria.Status != "" && string(c.Status) != criteria.Status {
			continue
		}
		if criteria.UserID != "" && c.UserID != criteria.UserID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubContestRepo) FindByOwner(userID string) ([]models.Contest, error) {
	return r.FindAll(repositories.ContestCriteria{UserID: userID})
}

func (r *stubContestRepo) FindActive(int) ([]models.Contest, error) { return nil, nil }

func (r *stubContestRepo) Update(contest *models.Contest) error {
	if _, ok := r.contests[contest.ID]; !ok {
		return repositories.ErrContestNotFound
	}
	clone := *contest
	r.contests[contest.ID] = &clone
	return nil
}

func (r *stubContestRepo) UpdateStatus(id string, status models.ContestStatus, feedback string) error {
	c, ok := r.contests[id]
	if !ok {
		return repositories.ErrContestNotFound
	}
	c.Status = status
	if feedback != "" {
		c.FeedbackMessage = feedback
	}
	return nil
}

func (r *stubContestRepo) Delete(id string) error {
	delete(r.contests, id)
	return nil
}

func (r *stubContestRepo) IncrementViews(string) error { return nil }

func (r *stubContestRepo) CompleteExpired(time.Time) (int64, error) { return 0, nil }

func (r *stubContestRepo) GetStats(string) (*repositories.ContestStats, error) {
	return &repositories.ContestStats{}, nil
}

type stubApplicationRepo struct{}

func (stubApplicationRepo) Create(*models.ContestApplication) error { return nil }
func (stubApplicationRepo) FindByID(string) (*models.ContestApplication, error) {
	return nil, repositories.ErrApplicationNotFound
}
func (stubApplicationRepo) FindByContest(string) ([]models.ContestApplication, error) {
	return nil, nil
}
func (stubApplicationRepo) FindByCreator(string) ([]models.ContestApplication, error) {
	return nil, nil
}
func (stubApplicationRepo) UpdateStatus(string, models.ApplicationStatus) error { return nil }
func (stubApplicationRepo) GetStats(string) (*repositories.ApplicationStats, error) {
	return &repositories.ApplicationStats{}, nil
}

// stubFileStore keeps uploaded blobs in a map and serves public URLs with a
// fixed host prefix.
type stubFileStore struct {
	files map[string][]byte
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{files: map[string][]byte{}}
}

func (s *stubFileStore) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *stubFileStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.files[path])), nil
}

func (s *stubFileStore) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *stubFileStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *stubFileStore) GetURL(_ context.Context, path string) (string, error) {
	return "https://files.example.com/" + path, nil
}

func (s *stubFileStore) GetSignedURL(ctx context.Context, path string, _ time.Duration) (string, error) {
	return s.GetURL(ctx, path)
}

// approvalAPI wires the creator and contest approval handlers onto a test
// engine backed by the stubs above.
type approvalAPI struct {
	router        *gin.Engine
	verifications *stubVerificationRepo
	profiles      *stubProfileRepo
	users         *stubUserRepo
	contests      *stubContestRepo
	notifications *stubNotificationRepo
	files         *stubFileStore
}

func newApprovalAPI(t *testing.T) *approvalAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &approvalAPI{
		verifications: newStubVerificationRepo(),
		profiles:      newStubProfileRepo(),
		users:         newStubUserRepo(),
		contests:      newStubContestRepo(),
		notifications: &stubNotificationRepo{},
		files:         newStubFileStore(),
	}

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedTypes = []string{"image/png", "application/pdf", "video/mp4"}

	creatorService := services.NewCreatorService(api.verifications, api.profiles, api.users)
	approvalService := services.NewApprovalService(
		api.verifications, api.profiles, stubBrandProfileRepo{},
		api.contests, api.users, api.notifications, nil,
	)
	uploadService := services.NewUploadService(api.verifications, api.profiles, api.files, cfg)
	contestService := services.NewContestService(api.contests, stubApplicationRepo{}, api.users, api.notifications)

	base := NewBaseHandler(validator.New())
	router := gin.New()
	group := router.Group("/api/v1")
	NewCreatorApprovalHandler(base, creatorService, approvalService, uploadService).RegisterRoutes(group)
	NewContestApprovalHandler(base, approvalService, contestService).RegisterRoutes(group)

	api.router = router
	return api
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *approvalAPI) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
