package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"autovest/internal/domain"
	"autovest/internal/repository"
)

// QueryLogService persiste y lista las consultas respondidas.
type QueryLogService struct {
	repo repository.QueryLogRepository
}

var (
	ErrQueryLogNotConfigured = errors.New("query log not configured")
	ErrQueryLogInvalidInput  = errors.New("query log invalid input")
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func NewQueryLogService(repo repository.QueryLogRepository) *QueryLogService {
	return &QueryLogService{repo: repo}
}

// Record implementa QueryRecorder.
func (s *QueryLogService) Record(ctx context.Context, bundle domain.ResponseBundle) error {
	if s == nil || s.repo == nil {
		return ErrQueryLogNotConfigured
	}

	entry := domain.NewQueryLog(bundle, subjectOf(bundle.ConsultedKeys))
	entry.Query = strings.TrimSpace(entry.Query)
	if entry.Query == "" || entry.Answer == "" {
		return ErrQueryLogInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	return s.repo.Create(ctx, entry)
}

func (s *QueryLogService) ListRecent(ctx context.Context, limit int) ([]domain.QueryLog, error) {
	if s == nil || s.repo == nil {
		return nil, ErrQueryLogNotConfigured
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// subjectOf toma la categoría de la primera clave consultada.
func subjectOf(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	category, _, _ := strings.Cut(keys[0], ":")
	return category
}
