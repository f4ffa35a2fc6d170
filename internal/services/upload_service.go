package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/logger"
	"creatorhub_backend/internal/repositories"
	"creatorhub_backend/internal/services/dto"
	"creatorhub_backend/internal/storage"
	"creatorhub_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// assetColumns maps the upload file type to the verification column it fills.
var assetColumns = map[string]string{
	"logo":  "logo_url",
	"id":    "id_document_url",
	"video": "intro_video_url",
}

// assetMimePrefixes restricts what each file type may contain.
var assetMimePrefixes = map[string][]string{
	"logo":  {"image/"},
	"id":    {"image/", "application/pdf"},
	"video": {"video/"},
}

type UploadService struct {
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.CreatorProfileRepository
	store            storage.Storage
	cfg              *config.Config
}

func NewUploadService(
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.CreatorProfileRepository,
	store storage.Storage,
	cfg *config.Config,
) *UploadService {
	return &UploadService{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		store:            store,
		cfg:              cfg,
	}
}

// UploadVerificationAsset stores the file and patches its URL onto the
// verification record. When the owning email is known, the profile mirror is
// patched too; a mirror failure is logged, not surfaced.
func (s *UploadService) UploadVerificationAsset(ctx context.Context, file *multipart.FileHeader, req *dto.UploadAssetRequest) (string, error) {
	column, ok := assetColumns[req.FileType]
	if !ok {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("Unknown file type: %s", req.FileType))
	}

	if err := s.validateFile(file, req.FileType); err != nil {
		return "", err
	}

	verification, err := s.verificationRepo.FindByID(req.VerificationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationNotFound) {
			return "", apperrors.ErrVerificationNotFound
		}
		return "", err
	}

	key := fmt.Sprintf("verifications/%s/%s-%s%s",
		verification.ID, req.FileType, uuid.NewString(), filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := s.store.Save(ctx, key, src, contentType); err != nil {
		return "", fmt.Errorf("failed to save file to storage: %w", err)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		return "", err
	}

	if err := s.verificationRepo.PatchAssetURL(verification.ID, column, url); err != nil {
		return "", err
	}

	// Only the logo has a profile-side column; documents and videos stay on
	// the verification record.
	if req.FileType == "logo" {
		email := req.Email
		if email == "" {
			email = verification.Email
		}
		if email == "" {
			email = verification.DecodedProfileData().Email
		}
		if email != "" {
			if err := s.profileRepo.SetAssetURL(email, column, url); err != nil {
				logger.Warn("Failed to mirror asset URL onto profile", "email", email, "error", err)
			}
		}
	}

	return url, nil
}

func (s *UploadService) validateFile(file *multipart.FileHeader, fileType string) error {
	if file == nil || file.Size == 0 {
		return apperrors.NewBadRequestError("File is required")
	}
	if s.cfg.Upload.MaxSize > 0 && file.Size > s.cfg.Upload.MaxSize {
		return apperrors.NewBadRequestError(fmt.Sprintf("File exceeds size limit of %d bytes", s.cfg.Upload.MaxSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !mimeAllowed(contentType, assetMimePrefixes[fileType]) {
		return apperrors.NewBadRequestError(fmt.Sprintf("Unsupported content type %q for %s upload", contentType, fileType))
	}

	if len(s.cfg.Upload.AllowedTypes) > 0 {
		allowed := false
		for _, t := range s.cfg.Upload.AllowedTypes {
			if t == contentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return apperrors.NewBadRequestError(fmt.Sprintf("Content type %q is not allowed", contentType))
		}
	}
	return nil
}

func mimeAllowed(contentType string, prefixes []string) bool {
	for _, p := range prefixes {
		if len(contentType) >= len(p) && contentType[:len(p)] == p {
			return true
		}
	}
	return false
}
