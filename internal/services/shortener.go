package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"tinyurl/internal/models"
	"tinyurl/internal/repository"
	"tinyurl/pkg/utils"
)

const (
	MessageShortened        = "URL shortened successfully"
	MessageAlreadyShortened = "URL already shortened"
)

type ShortenDTO struct {
	OriginalURL string
	CustomAlias string
	ExpiresAt   *time.Time
	OwnerID     string
}

type ShortenResult struct {
	Mapping  models.URLMapping
	ShortURL string
	Existing bool
	Message  string
}

type ShortenerService struct {
	store         *repository.Store
	auditService  *AuditService
	codeGenerator repository.CodeGenerator
	baseURL       string
	now           func() time.Time
}

func NewShortenerService(store *repository.Store, auditService *AuditService, codeGenerator repository.CodeGenerator, baseURL string) *ShortenerService {
	return &ShortenerService{
		store:         store,
		auditService:  auditService,
		codeGenerator: codeGenerator,
		baseURL:       strings.TrimRight(baseURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// reservedAliases are first path segments owned by fixed routes.
var reservedAliases = map[string]struct{}{
	"health":      {},
	"shorten":     {},
	"check-alias": {},
	"user":        {},
	"manage":      {},
}

func validateCustomAlias(alias string) error {
	if err := utils.ValidateAlias(alias); err != nil {
		return err
	}
	if strings.ContainsAny(alias, "/?# ") {
		return fmt.Errorf("%w: custom alias contains reserved characters", models.ErrValidation)
	}
	if _, ok := reservedAliases[strings.ToLower(alias)]; ok {
		return fmt.Errorf("%w: custom alias %q is reserved", models.ErrValidation, alias)
	}
	return nil
}

// ValidateURL accepts only absolute http and https URLs.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: original URL is required", models.ErrValidation)
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: invalid URL format", models.ErrValidation)
	}
	return nil
}

func (s *ShortenerService) ShortURL(code string) string {
	return s.baseURL + "/" + code
}

func (s *ShortenerService) Shorten(dto ShortenDTO) (*ShortenResult, error) {
	if err := ValidateURL(dto.OriginalURL); err != nil {
		return nil, err
	}
	if dto.CustomAlias != "" {
		if err := validateCustomAlias(dto.CustomAlias); err != nil {
			return nil, err
		}
	}

	m, existed, err := s.store.Create(repository.CreateParams{
		OriginalURL: dto.OriginalURL,
		CustomAlias: dto.CustomAlias,
		OwnerID:     dto.OwnerID,
		ExpiresAt:   dto.ExpiresAt,
		CreatedAt:   s.now(),
	}, s.codeGenerator)
	if err != nil {
		return nil, err
	}

	result := &ShortenResult{
		Mapping:  m,
		ShortURL: s.ShortURL(m.ShortCode),
		Existing: existed,
		Message:  MessageShortened,
	}
	if existed {
		result.Message = MessageAlreadyShortened
		return result, nil
	}

	s.auditService.LogAction(dto.OwnerID, ActionCreateLink, m.ShortCode, map[string]interface{}{
		"original_url": m.OriginalURL,
		"custom_alias": m.CustomAlias != "",
	})
	return result, nil
}

func (s *ShortenerService) Stats(code string) (models.URLStats, error) {
	m, err := s.store.Get(code)
	if err != nil {
		return models.URLStats{}, err
	}
	return m.Stats(), nil
}

// ListByOwner returns the owner's mappings, newest first.
func (s *ShortenerService) ListByOwner(ownerID string) []models.URLStats {
	all := s.store.Snapshot(ownerID)
	out := make([]models.URLStats, 0, len(all))
	for _, m := range all {
		if m.OwnerID != ownerID {
			continue
		}
		out = append(out, m.Stats())
	}
	return out
}

// Delete removes the mapping and its click history.
func (s *ShortenerService) Delete(ctx context.Context, code, ownerID string) error {
	m, err := s.store.Delete(ctx, code, ownerID)
	if err != nil {
		return err
	}
	s.auditService.LogAction(ownerID, ActionDeleteLink, m.ShortCode, map[string]interface{}{
		"original_url": m.OriginalURL,
	})
	return nil
}

// CheckAlias is a shape check only; it does not reserve or look up the alias.
func CheckAlias(alias string) bool {
	return utf8.RuneCountInString(alias) >= utils.MinAliasLength
}
