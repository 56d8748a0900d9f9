package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/internal/repository"
)

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) repository.SubmissionRepository {
	return &submissionRepository{db: db}
}

// readColumns deliberately excludes gmail_password. The credential leaves the
// database only for the internal status-notification mailer, never for reads
// that feed API responses.
const readColumns = `
	id, clinic_name, doctor_name, specialty, phone_number, clinic_address,
	google_maps_link, working_hours, gmail_account, filming_day,
	content_approver, gmb_category, instagram_access, facebook_access,
	platform_access_agreement, accept_paid_ads, confirm_info, agree_terms,
	logo, pricing_file, front_desk_photo, waiting_room_photo, signage_photo,
	doctor_photos, clinic_services, doctor_bio, primary_color, secondary_color,
	accent_color, text_color, languages, status, completion_percentage,
	submission_date, last_updated
`

func (r *submissionRepository) Create(ctx context.Context, s *model.Submission) error {
	query := `
		INSERT INTO submissions (
			id, clinic_name, doctor_name, specialty, phone_number, clinic_address,
			google_maps_link, working_hours, gmail_account, gmail_password,
			filming_day, content_approver, gmb_category, instagram_access,
			facebook_access, platform_access_agreement, accept_paid_ads,
			confirm_info, agree_terms, logo, pricing_file, front_desk_photo,
			waiting_room_photo, signage_photo, doctor_photos, clinic_services,
			doctor_bio, primary_color, secondary_color, accent_color, text_color,
			languages, status, completion_percentage, submission_date, last_updated
		) VALUES (
			:id, :clinic_name, :doctor_name, :specialty, :phone_number, :clinic_address,
			:google_maps_link, :working_hours, :gmail_account, :gmail_password,
			:filming_day, :content_approver, :gmb_category, :instagram_access,
			:facebook_access, :platform_access_agreement, :accept_paid_ads,
			:confirm_info, :agree_terms, :logo, :pricing_file, :front_desk_photo,
			:waiting_room_photo, :signage_photo, :doctor_photos, :clinic_services,
			:doctor_bio, :primary_color, :secondary_color, :accent_color, :text_color,
			:languages, :status, :completion_percentage, :submission_date, :last_updated
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (r *submissionRepository) Get(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	query := `SELECT ` + readColumns + ` FROM submissions WHERE id = $1`

	var s model.Submission
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return &s, nil
}

func (r *submissionRepository) List(ctx context.Context, filter model.SubmissionFilter, page model.Pagination) ([]*model.Submission, int, error) {
	where := `
		WHERE (COALESCE($1, '') = '' OR status = $1)
		AND (COALESCE($2, '') = '' OR specialty = $2)
		AND (COALESCE($3, '') = '' OR clinic_name ILIKE '%' || $3 || '%' OR doctor_name ILIKE '%' || $3 || '%')
	`

	var total int
	countQuery := `SELECT COUNT(*) FROM submissions ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, filter.Status, filter.Specialty, filter.Search); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	query := `SELECT ` + readColumns + ` FROM submissions ` + where + `
		ORDER BY submission_date DESC
		LIMIT $4 OFFSET $5
	`
	offset := (page.Page - 1) * page.Limit

	var submissions []*model.Submission
	err := r.db.SelectContext(ctx, &submissions, query,
		filter.Status, filter.Specialty, filter.Search, page.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, total, nil
}

func (r *submissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, updatedAt time.Time) (*model.StatusAck, error) {
	query := `
		UPDATE submissions
		SET status = $1, last_updated = $2
		WHERE id = $3
		RETURNING id, status, last_updated
	`
	var ack model.StatusAck
	err := r.db.QueryRowxContext(ctx, query, status, updatedAt, id).
		Scan(&ack.ID, &ack.Status, &ack.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update submission status: %w", err)
	}
	return &ack, nil
}

func (r *submissionRepository) Stats(ctx context.Context) (*model.Stats, error) {
	overviewQuery := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = $1) AS pending,
			COUNT(*) FILTER (WHERE status = $2) AS approved,
			COUNT(*) FILTER (WHERE status = $3) AS rejected
		FROM submissions
	`
	var overview model.StatsOverview
	err := r.db.GetContext(ctx, &overview, overviewQuery,
		model.StatusPending, model.StatusApproved, model.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate submission counts: %w", err)
	}

	breakdownQuery := `
		SELECT specialty, COUNT(*) AS count
		FROM submissions
		GROUP BY specialty
		ORDER BY count DESC
	`
	var breakdown []model.SpecialtyCount
	if err := r.db.SelectContext(ctx, &breakdown, breakdownQuery); err != nil {
		return nil, fmt.Errorf("failed to aggregate specialty counts: %w", err)
	}

	return &model.Stats{Overview: overview, SpecialtyBreakdown: breakdown}, nil
}
