package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/medlaunch/onboard-api/internal/email"
	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/internal/repository"
	"github.com/medlaunch/onboard-api/internal/validation"
)

const (
	defaultLimit  = 10
	maxLimit      = 100
	statsCacheKey = "stats_overview"
	statsCacheTTL = 30 * time.Second
)

type SubmissionServicer interface {
	Create(ctx context.Context, req *model.SubmissionRequest) (*model.SubmissionAck, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	List(ctx context.Context, filter model.SubmissionFilter, page model.Pagination) ([]*model.Submission, model.PageMeta, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.StatusAck, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type Service struct {
	repo     repository.SubmissionRepository
	emailSvc email.Service
	cache    *gocache.Cache
}

func NewService(repo repository.SubmissionRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		emailSvc: emailSvc,
		cache:    gocache.New(statsCacheTTL, 5*time.Minute),
	}
}

// Create coerces, defaults and validates the raw payload, then persists it.
// Validation failures come back as validation.Errors with one entry per
// violated field.
func (s *Service) Create(ctx context.Context, req *model.SubmissionRequest) (*model.SubmissionAck, error) {
	sub := req.ToSubmission()
	sub.ApplyDefaults()

	if errs := validation.ValidateSubmission(sub); len(errs) > 0 {
		return nil, validation.Errors(errs)
	}

	now := time.Now()
	sub.ID = uuid.New()
	sub.SubmissionDate = now
	sub.LastUpdated = now
	sub.Recompute()

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.cache.Delete(statsCacheKey)

	return &model.SubmissionAck{
		ID:             sub.ID,
		ClinicName:     sub.ClinicName,
		SubmissionDate: sub.SubmissionDate,
		Status:         sub.Status,
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context, filter model.SubmissionFilter, page model.Pagination) ([]*model.Submission, model.PageMeta, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit < 1 {
		page.Limit = defaultLimit
	}
	if page.Limit > maxLimit {
		page.Limit = maxLimit
	}

	submissions, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, model.PageMeta{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	return submissions, model.NewPageMeta(page.Page, page.Limit, total), nil
}

// UpdateStatus moves a submission between workflow states. Any state may move
// to any other so operators can correct mistakes; the dashboard itself only
// offers pending -> approved/rejected.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.StatusAck, error) {
	if err := validation.ValidateStatus(status); err != nil {
		return nil, err
	}

	ack, err := s.repo.UpdateStatus(ctx, id, status, time.Now())
	if err != nil {
		return nil, err
	}

	s.cache.Delete(statsCacheKey)
	s.notify(ctx, id, status)

	return ack, nil
}

// notify is best effort. A mail failure never fails the status update.
func (s *Service) notify(ctx context.Context, id uuid.UUID, status string) {
	if s.emailSvc == nil {
		return
	}
	sub, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("submission_id", id.String()).Msg("skipping status notification")
		return
	}
	if err := s.emailSvc.SendStatusUpdate(sub.GmailAccount, sub.ClinicName, status); err != nil {
		log.Warn().Err(err).Str("submission_id", id.String()).Msg("failed to send status notification")
	}
}

func (s *Service) Stats(ctx context.Context) (*model.Stats, error) {
	if cached, ok := s.cache.Get(statsCacheKey); ok {
		return cached.(*model.Stats), nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission stats: %w", err)
	}

	// The cached object is shared across requests, so it must be ready to
	// serialize as-is. An absent breakdown still encodes as an empty array.
	if stats.SpecialtyBreakdown == nil {
		stats.SpecialtyBreakdown = []model.SpecialtyCount{}
	}

	s.cache.Set(statsCacheKey, stats, statsCacheTTL)
	return stats, nil
}
