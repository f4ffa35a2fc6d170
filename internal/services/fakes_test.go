package services

import (
	"sort"
	"sync"
	"time"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes shared by the service tests. Each fake keeps
// records in a map guarded by a mutex because several services fire
// notification writes from goroutines.

type fakeVerificationRepo struct {
	mu      sync.Mutex
	records map[string]*models.CreatorVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{records: map[string]*models.CreatorVerification{}}
}

func (r *fakeVerificationRepo) Create(v *models.CreatorVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeVerificationRepo) FindByID(id string) (*models.CreatorVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrVerificationNotFound
	}
	clone := *v
	return &clone, nil
}

// FindAll matches the real scan: filtered, ordered created_at descending.
func (r *fakeVerificationRepo) FindAll(criteria repositories.VerificationCriteria) ([]models.CreatorVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeVerificationRepo) Update(v *models.CreatorVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[v.ID]; !ok {
		return repositories.ErrVerificationNotFound
	}
	clone := *v
	r.records[v.ID] = &clone
	return nil
}

func (r *fakeVerificationRepo) UpdateStatus(id string, status models.VerificationStatus, feedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeVerificationRepo) PatchAssetURL(id string, field string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.CreatorProfile
	failWith error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.CreatorProfile{}}
}

func (r *fakeProfileRepo) FindByEmail(email string) (*models.CreatorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	p, ok := r.profiles[email]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) Upsert(profile *models.CreatorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.Email] = &clone
	return nil
}

func (r *fakeProfileRepo) SetVerificationStatus(email string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[email]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.VerificationStatus = status
	return nil
}

func (r *fakeProfileRepo) SetAssetURL(email string, field string, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[email]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	if field == "logo_url" {
		p.LogoURL = url
	}
	return nil
}

type fakeBrandProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.BrandProfile
}

func newFakeBrandProfileRepo() *fakeBrandProfileRepo {
	return &fakeBrandProfileRepo{profiles: map[string]*models.BrandProfile{}}
}

func (r *fakeBrandProfileRepo) FindByEmail(email string) (*models.BrandProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[email]
	if !ok {
		return nil, repositories.ErrBrandProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeBrandProfileRepo) Upsert(profile *models.BrandProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.Email] = &clone
	return nil
}

func (r *fakeBrandProfileRepo) SetReviewStatus(email string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[email]
	if !ok {
		return repositories.ErrBrandProfileNotFound
	}
	p.ReviewStatus = status
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) add(role models.UserRole, email string) *models.User {
	u := &models.User{Email: email, Role: role, Status: models.UserStatusActive}
	_ = r.Create(u)
	return u
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failWith      error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) FindByID(id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			clone := r.notifications[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) FindByRecipient(email string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.RecipientEmail != email {
			continue
		}
		if criteria.UnreadOnly && n.IsRead {
			continue
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) MarkAsRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == id {
			now := time.Now()
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllAsRead(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for i := range r.notifications {
		if r.notifications[i].RecipientEmail == email {
			r.notifications[i].IsRead = true
			r.notifications[i].ReadAt = &now
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetUnreadCount(email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientEmail == email && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) CreateStatusNotification(recipientEmail, notificationType, message string) error {
	return r.Create(&models.Notification{
		RecipientEmail: recipientEmail,
		Type:           notificationType,
		Message:        message,
	})
}

func (r *fakeNotificationRepo) CreateVideoSoldNotification(sellerEmail, videoTitle string) error {
	return r.Create(&models.Notification{
		RecipientEmail: sellerEmail,
		Type:           repositories.NotificationTypeVideoSold,
		Message:        "Your video " + `"` + videoTitle + `"` + " has been purchased.",
	})
}

func (r *fakeNotificationRepo) all() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

type fakeContestRepo struct {
	mu       sync.Mutex
	contests map[string]*models.Contest
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{contests: map[string]*models.Contest{}}
}

func (r *fakeContestRepo) Create(contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeContestRepo) FindByID(id string) (*models.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contests[id]
	if !ok {
		return nil, repositories.ErrContestNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeContestRepo) FindAll(criteria repositories.ContestCriteria) ([]models.Contest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeContestRepo) FindByOwner(userID string) ([]models.Contest, error) {
	return r.FindAll(repositories.ContestCriteria{UserID: userID})
}

func (r *fakeContestRepo) FindActive(limit int) ([]models.Contest, error) {
	contests, _ := r.FindAll(repositories.ContestCriteria{Status: string(models.ContestStatusActive)})
	if limit > 0 && len(contests) > limit {
		contests = contests[:limit]
	}
	return contests, nil
}

func (r *fakeContestRepo) Update(contest *models.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contests[contest.ID]; !ok {
		return repositories.ErrContestNotFound
	}
	clone := *contest
	r.contests[contest.ID] = &clone
	return nil
}

func (r *fakeContestRepo) UpdateStatus(id string, status models.ContestStatus, feedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

func (r *fakeContestRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contests[id]; !ok {
		return repositories.ErrContestNotFound
	}
	delete(r.contests, id)
	return nil
}

func (r *fakeContestRepo) IncrementViews(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contests[id]; ok {
		c.Views++
	}
	return nil
}

func (r *fakeContestRepo) CompleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, c := range r.contests {
		if c.Status == models.ContestStatusActive && c.EndDate != nil && c.EndDate.Before(now) {
			c.Status = models.ContestStatusCompleted
			count++
		}
	}
	return count, nil
}

func (r *fakeContestRepo) GetStats(userID string) (*repositories.ContestStats, error) {
	return &repositories.ContestStats{}, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]*models.ContestApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: map[string]*models.ContestApplication{}}
}

func (r *fakeApplicationRepo) Create(application *models.ContestApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.ContestID == application.ContestID && a.UserID == application.UserID {
			return repositories.ErrApplicationAlreadyExists
		}
	}
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	clone := *application
	r.applications[application.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) FindByID(id string) (*models.ContestApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByContest(contestID string) ([]models.ContestApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ContestApplication
	for _, a := range r.applications {
		if a.ContestID == contestID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) FindByCreator(userID string) ([]models.ContestApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ContestApplication
	for _, a := range r.applications {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeApplicationRepo) GetStats(contestID string) (*repositories.ApplicationStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.ApplicationStats{}
	for _, a := range r.applications {
		if a.ContestID != contestID {
			continue
		}
		stats.TotalApplications++
		switch a.Status {
		case models.ApplicationStatusPending:
			stats.PendingApplications++
		case models.ApplicationStatusApproved:
			stats.ApprovedApplications++
		case models.ApplicationStatusRejected:
			stats.RejectedApplications++
		}
	}
	return stats, nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*models.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[string]*models.Video{}}
}

func (r *fakeVideoRepo) Create(video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}
	clone := *video
	r.videos[video.ID] = &clone
	return nil
}

func (r *fakeVideoRepo) FindByID(id string) (*models.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, repositories.ErrVideoNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVideoRepo) FindAll(criteria repositories.VideoCriteria) ([]models.Video, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Video
	for _, v := range r.videos {
		if criteria.UserID != "" && v.UserID != criteria.UserID {
			continue
		}
		if criteria.Status != "" && string(v.Status) != criteria.Status {
			continue
		}
		matched = append(matched, *v)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	start := (criteria.Page - 1) * criteria.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + criteria.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeVideoRepo) Update(video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[video.ID]; !ok {
		return repositories.ErrVideoNotFound
	}
	clone := *video
	r.videos[video.ID] = &clone
	return nil
}

func (r *fakeVideoRepo) IncrementViews(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[id]; ok {
		v.Views++
	}
	return nil
}

func (r *fakeVideoRepo) IncrementPurchaseCount(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[id]; ok {
		v.PurchaseCount++
	}
	return nil
}

func (r *fakeVideoRepo) SetStatus(id string, status models.VideoStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return repositories.ErrVideoNotFound
	}
	v.Status = status
	return nil
}

type fakePurchaseRepo struct {
	mu        sync.Mutex
	purchases map[string]*models.VideoPurchase
	sales     []repositories.CreatorSales
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[string]*models.VideoPurchase{}}
}

func (r *fakePurchaseRepo) Create(purchase *models.VideoPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if purchase.ID == "" {
		purchase.ID = uuid.NewString()
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now()
	}
	clone := *purchase
	r.purchases[purchase.ID] = &clone
	return nil
}

func (r *fakePurchaseRepo) FindByID(id string) (*models.VideoPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.purchases[id]
	if !ok {
		return nil, repositories.ErrPurchaseNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePurchaseRepo) FindByBuyerAndVideo(buyerUserID, videoID string) (*models.VideoPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.BuyerUserID == buyerUserID && p.VideoID == videoID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrPurchaseNotFound
}

func (r *fakePurchaseRepo) FindByCheckoutRef(checkoutRef string) (*models.VideoPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.CheckoutRef == checkoutRef {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repositories.ErrPurchaseNotFound
}

func (r *fakePurchaseRepo) FindByBuyer(buyerUserID string) ([]models.VideoPurchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.VideoPurchase
	for _, p := range r.purchases {
		if p.BuyerUserID == buyerUserID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Update(purchase *models.VideoPurchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.purchases[purchase.ID]; !ok {
		return repositories.ErrPurchaseNotFound
	}
	clone := *purchase
	r.purchases[purchase.ID] = &clone
	return nil
}

func (r *fakePurchaseRepo) AggregateSalesByCreator(limit int) ([]repositories.CreatorSales, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repositories.CreatorSales, len(r.sales))
	copy(out, r.sales)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeEmailProvider records outgoing mail.
type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []string
}

func (p *fakeEmailProvider) Send(to, subject, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, to+": "+subject)
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
