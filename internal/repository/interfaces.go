package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medlaunch/onboard-api/internal/model"
)

// ErrNotFound is returned when a lookup resolves no row.
var ErrNotFound = errors.New("record not found")

// SubmissionRepository persists onboarding applications. Reads never return
// the gmail password column.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	Get(ctx context.Context, id uuid.UUID) (*model.Submission, error)
	List(ctx context.Context, filter model.SubmissionFilter, page model.Pagination) ([]*model.Submission, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedAt time.Time) (*model.StatusAck, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

// AdminRepository manages dashboard operators.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	Get(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Count(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// TokenRepository tracks revoked session tokens until they would have expired
// on their own.
type TokenRepository interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
