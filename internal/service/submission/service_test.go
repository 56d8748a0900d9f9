package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlaunch/onboard-api/internal/model"
	"github.com/medlaunch/onboard-api/internal/repository"
	"github.com/medlaunch/onboard-api/internal/validation"
)

// fakeRepo is an in-memory stand-in mirroring the postgres repository's
// observable behavior, including the password column never surfacing on reads.
type fakeRepo struct {
	records map[uuid.UUID]*model.Submission
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]*model.Submission)}
}

func (r *fakeRepo) Create(_ context.Context, s *model.Submission) error {
	stored := *s
	r.records[s.ID] = &stored
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Submission, error) {
	s, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *s
	out.GmailPassword = ""
	return &out, nil
}

func (r *fakeRepo) List(_ context.Context, filter model.SubmissionFilter, page model.Pagination) ([]*model.Submission, int, error) {
	var all []*model.Submission
	for _, s := range r.records {
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Specialty != "" && s.Specialty != filter.Specialty {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(s.ClinicName), needle) &&
				!strings.Contains(strings.ToLower(s.DoctorName), needle) {
				continue
			}
		}
		out := *s
		out.GmailPassword = ""
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].SubmissionDate.After(all[j].SubmissionDate)
	})

	total := len(all)
	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, updatedAt time.Time) (*model.StatusAck, error) {
	s, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.Status = status
	s.LastUpdated = updatedAt
	return &model.StatusAck{ID: id, Status: status, LastUpdated: updatedAt}, nil
}

func (r *fakeRepo) Stats(_ context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	bySpecialty := make(map[string]int)
	for _, s := range r.records {
		stats.Overview.Total++
		switch s.Status {
		case model.StatusPending:
			stats.Overview.Pending++
		case model.StatusApproved:
			stats.Overview.Approved++
		case model.StatusRejected:
			stats.Overview.Rejected++
		}
		bySpecialty[s.Specialty]++
	}
	for specialty, count := range bySpecialty {
		stats.SpecialtyBreakdown = append(stats.SpecialtyBreakdown,
			model.SpecialtyCount{Specialty: specialty, Count: count})
	}
	sort.Slice(stats.SpecialtyBreakdown, func(i, j int) bool {
		return stats.SpecialtyBreakdown[i].Count > stats.SpecialtyBreakdown[j].Count
	})
	return stats, nil
}

func validRequest() *model.SubmissionRequest {
	return &model.SubmissionRequest{
		ClinicName:              "عيادة الشفاء",
		DoctorName:              "د. سمير حداد",
		Specialty:               "dentist",
		PhoneNumber:             "0712345678",
		ClinicAddress:           "شارع الحمرا، بيروت",
		GoogleMapsLink:          "https://maps.google.com/?q=clinic",
		WorkingHours:            "9:00 - 17:00",
		GmailAccount:            "clinic@gmail.com",
		GmailPassword:           "secret123",
		FilmingDay:              "monday",
		ContentApprover:         "د. سمير حداد - 0712345678",
		GMBCategory:             "Dental Clinic",
		PlatformAccessAgreement: true,
		AcceptPaidAds:           true,
		ConfirmInfo:             true,
		AgreeTerms:              true,
		Logo:                    "https://res.cloudinary.com/demo/logo.png",
		PricingFile:             "https://res.cloudinary.com/demo/pricing.pdf",
		Languages:               model.StringList{"arabic"},
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	ack, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "عيادة الشفاء", ack.ClinicName)
	assert.Equal(t, model.StatusPending, ack.Status)
	assert.NotEqual(t, uuid.Nil, ack.ID)

	got, err := svc.Get(context.Background(), ack.ID)
	require.NoError(t, err)
	assert.Equal(t, "د. سمير حداد", got.DoctorName)
	assert.Equal(t, "0712345678", got.PhoneNumber)
	// Defaults for omitted optional fields.
	assert.Equal(t, model.DefaultPrimaryColor, got.PrimaryColor)
	assert.Equal(t, model.DefaultTextColor, got.TextColor)
	// The credential never comes back.
	assert.Empty(t, got.GmailPassword)
}

func TestCreateReturnsAllViolations(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	req := validRequest()
	req.ClinicName = ""
	req.PhoneNumber = "123"
	req.AgreeTerms = false

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestCreateComputesCompletion(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	req := validRequest()
	req.ClinicServices = "تنظيف"
	req.DoctorBio = "خبرة"
	req.FrontDeskPhoto = "https://example.com/desk.jpg"

	ack, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), ack.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.CompletionPercentage)
}

func TestListPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	base := time.Now()
	for i := 0; i < 15; i++ {
		id := uuid.New()
		repo.records[id] = &model.Submission{
			ID:             id,
			ClinicName:     fmt.Sprintf("clinic %d", i),
			Specialty:      "dentist",
			Status:         model.StatusPending,
			SubmissionDate: base.Add(time.Duration(i) * time.Minute),
		}
	}

	page1, meta, err := svc.List(context.Background(), model.SubmissionFilter{}, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 15, meta.TotalItems)

	page2, meta, err := svc.List(context.Background(), model.SubmissionFilter{}, model.Pagination{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.Equal(t, 2, meta.CurrentPage)

	// Newest first: the last created record leads page 1.
	assert.Equal(t, "clinic 14", page1[0].ClinicName)
}

func TestListSearchMatchesEitherName(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	records := []struct{ clinic, doctor string }{
		{"عيادة الشفاء", "د. سمير حداد"},
		{"Smile Dental Center", "د. ليلى منصور"},
		{"عيادة النور", "Dr. Samir Khoury"},
	}
	for i, rec := range records {
		id := uuid.New()
		repo.records[id] = &model.Submission{
			ID:             id,
			ClinicName:     rec.clinic,
			DoctorName:     rec.doctor,
			Specialty:      "dentist",
			Status:         model.StatusPending,
			SubmissionDate: time.Now().Add(time.Duration(i) * time.Minute),
		}
	}

	// Case-insensitive, matches the clinic name.
	got, meta, err := svc.List(context.Background(),
		model.SubmissionFilter{Search: "smile"}, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smile Dental Center", got[0].ClinicName)
	assert.Equal(t, 1, meta.TotalItems)

	// Matches across both name columns.
	got, _, err = svc.List(context.Background(),
		model.SubmissionFilter{Search: "samir"}, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dr. Samir Khoury", got[0].DoctorName)

	got, _, err = svc.List(context.Background(),
		model.SubmissionFilter{Search: "سمير"}, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "د. سمير حداد", got[0].DoctorName)

	got, meta, err = svc.List(context.Background(),
		model.SubmissionFilter{Search: "no such clinic"}, model.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, meta.TotalItems)
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, meta, err := svc.List(context.Background(), model.SubmissionFilter{}, model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 10, meta.ItemsPerPage)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	ack, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), ack.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)
	assert.False(t, updated.LastUpdated.IsZero())

	// Idempotent: repeating the update succeeds and lands on the same state.
	again, err := svc.UpdateStatus(context.Background(), ack.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, again.Status)

	got, err := svc.Get(context.Background(), ack.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
}

func TestUpdateStatusRejectsUnknownLabel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	ack, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), ack.ID, "approved")
	require.Error(t, err)

	var ferr validation.FieldError
	assert.ErrorAs(t, err, &ferr)

	got, err := svc.Get(context.Background(), ack.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), model.StatusApproved)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStatsOverview(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	statuses := []string{model.StatusPending, model.StatusPending, model.StatusApproved, model.StatusRejected}
	specialties := []string{"dentist", "dentist", "dentist", "cardiologist"}
	for i, status := range statuses {
		id := uuid.New()
		repo.records[id] = &model.Submission{
			ID:        id,
			Status:    status,
			Specialty: specialties[i],
		}
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Overview.Total)
	assert.Equal(t, 2, stats.Overview.Pending)
	assert.Equal(t, 1, stats.Overview.Approved)
	assert.Equal(t, 1, stats.Overview.Rejected)

	require.Len(t, stats.SpecialtyBreakdown, 2)
	assert.Equal(t, "dentist", stats.SpecialtyBreakdown[0].Specialty)
	assert.Equal(t, 3, stats.SpecialtyBreakdown[0].Count)
}

func TestStatsEmptyBreakdownSerializesAsArray(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stats.SpecialtyBreakdown)

	body, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"specialtyBreakdown":[]`)
}

// The cached stats object is handed to every concurrent request, so readers
// must never observe a mutation of it.
func TestStatsConcurrentReads(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := svc.Stats(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, stats.SpecialtyBreakdown)
			_, err = json.Marshal(stats)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestStatsCacheInvalidatedByCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Overview.Total)

	_, err = svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	stats, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Overview.Total)
}
