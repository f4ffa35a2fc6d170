package services

import (
	"strings"

	"creatorhub_backend/internal/models"
	"creatorhub_backend/internal/services/dto"
)

// firstNonEmpty resolves an ordered fallback chain: the first non-blank value
// wins. Field resolution throughout consolidation is expressed through this
// helper so each chain stays testable on its own.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptySlice(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

func firstNonEmptyMap(values ...map[string]string) map[string]string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

// unknownCreatorName is the terminal fallback when neither record names the creator.
const unknownCreatorName = "Unknown Creator"

// ConsolidateCreator flattens a verification record and its (optional) profile
// record into one derived creator view. The verification's embedded
// profileData takes precedence over the profile for most fields; the profile
// wins social-link key collisions, and the tiktok overlay prefers the
// verification. Pure merge, no side effects.
func ConsolidateCreator(v *models.CreatorVerification, p *models.CreatorProfile) dto.ConsolidatedCreator {
	pd := v.DecodedProfileData()

	out := dto.ConsolidatedCreator{
		VerificationID:  v.ID,
		UserID:          v.UserID,
		Status:          string(v.Status),
		FeedbackMessage: v.FeedbackMessage,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
		IDDocumentURL:   v.IDDocumentURL,
		IntroVideoURL:   v.IntroVideoURL,
	}

	if p == nil {
		p = &models.CreatorProfile{}
	}

	out.Email = firstNonEmpty(pd.Email, v.Email, p.Email)
	out.FirstName = firstNonEmpty(pd.FirstName, p.FirstName)
	out.LastName = firstNonEmpty(pd.LastName, p.LastName)
	out.Name = resolveName(pd, p)

	out.LogoURL = firstNonEmpty(
		pd.LogoURL,
		pd.ProfilePictureURL,
		v.LogoURL,
		v.ProfilePictureURL,
		p.ProfilePictureURL,
		p.LogoURL,
		p.ProfileImageURL,
	)

	out.SocialMedia = mergeSocialMedia(pd, p)

	out.Bio = firstNonEmpty(pd.Bio, p.Bio)
	out.Country = firstNonEmpty(pd.Country, p.Country)
	out.Gender = firstNonEmpty(pd.Gender, p.Gender)
	out.Ethnicity = firstNonEmpty(pd.Ethnicity, p.Ethnicity)
	out.DateOfBirth = firstNonEmpty(pd.DateOfBirth, p.DateOfBirth)
	out.ContentTypes = firstNonEmptySlice(pd.ContentTypes, p.ContentTypes)
	out.ContentLinks = pd.ContentLinks
	out.Pricing = firstNonEmptyMap(pd.Pricing, p.DecodedPricing())

	return out
}

// resolveName prefers the verification's full name pair, then the profile's,
// then any single name part, then the fixed fallback.
func resolveName(pd models.ProfileData, p *models.CreatorProfile) string {
	if pd.FirstName != "" && pd.LastName != "" {
		return pd.FirstName + " " + pd.LastName
	}
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	if single := firstNonEmpty(pd.FirstName, pd.LastName, p.FirstName, p.LastName); single != "" {
		return single
	}
	return unknownCreatorName
}

// mergeSocialMedia shallow-merges the verification's socialMedia with the
// profile's socialLinks (profile wins on key collision), then overlays the
// tiktok key from whichever source carries a tiktokUrl, verification first.
func mergeSocialMedia(pd models.ProfileData, p *models.CreatorProfile) map[string]string {
	merged := map[string]string{}
	for k, v := range pd.SocialMedia {
		merged[k] = v
	}
	for k, v := range p.DecodedSocialLinks() {
		merged[k] = v
	}

	if tiktok := firstNonEmpty(pd.TiktokURL, p.TiktokURL); tiktok != "" {
		merged["tiktok"] = tiktok
	}

	if len(merged) == 0 {
		return nil
	}
	return merged
}

// groupKey derives the dedup key for a verification record: email (embedded
// document first, then top-level) when present, else userId. Records lacking
// both are dropped from aggregation.
func groupKey(v *models.CreatorVerification) string {
	pd := v.DecodedProfileData()
	if key := firstNonEmpty(pd.Email, v.Email); key != "" {
		return key
	}
	return v.UserID
}

// dedupeNewest keeps the single newest record per group key. Input is ordered
// created_at descending, so the first record seen for a key is the newest;
// equal timestamps resolve by scan order. Keyless records are dropped.
func dedupeNewest(records []models.CreatorVerification) []models.CreatorVerification {
	seen := make(map[string]bool, len(records))
	out := make([]models.CreatorVerification, 0, len(records))

	for i := range records {
		key := groupKey(&records[i])
		if key == "" {
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, records[i])
	}

	return out
}

// paginate slices the fully materialized list and builds pagination metadata.
func paginate(total, page, limit int) (start, end int, meta dto.Pagination) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = start + limit
	if end > total {
		end = total
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	meta = dto.Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
	return start, end, meta
}
