package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type mockMatchRepo struct {
	jobs        []repository.JobPost
	coverage    []repository.CoverageRow
	contractors []repository.ContractorRow
	err         error

	searchCalls int
	lastFrom    time.Time
	lastTo      time.Time
}

func (m *mockMatchRepo) JobsForContractor(context.Context, uuid.UUID) ([]repository.JobPost, error) {
	return m.jobs, m.err
}

func (m *mockMatchRepo) CoverageForJob(context.Context, uuid.UUID) ([]repository.CoverageRow, error) {
	return m.coverage, m.err
}

func (m *mockMatchRepo) SearchContractors(_ context.Context, _ []uuid.UUID, from, to time.Time) ([]repository.ContractorRow, error) {
	m.searchCalls++
	m.lastFrom = from
	m.lastTo = to
	return m.contractors, m.err
}

func TestFilterFullMandatoryCoverage(t *testing.T) {
	full := repository.CoverageRow{
		UserID: uuid.New(), Username: "full",
		RequiredMatched: 2, TotalRequired: 2, TotalMatched: 3,
	}
	partial := repository.CoverageRow{
		UserID: uuid.New(), Username: "partial",
		RequiredMatched: 2, TotalRequired: 3, TotalMatched: 2,
	}
	optionalOnly := repository.CoverageRow{
		UserID: uuid.New(), Username: "optional-only",
		RequiredMatched: 0, TotalRequired: 0, TotalMatched: 1,
	}

	out := FilterFullMandatoryCoverage([]repository.CoverageRow{full, partial, optionalOnly})

	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out))
	}
	if out[0].Username != "full" {
		t.Fatalf("expected full-coverage contractor first, got %q", out[0].Username)
	}
	// A job with no mandatory skills keeps everyone sharing any skill.
	if out[1].Username != "optional-only" {
		t.Fatalf("expected optional-only contractor kept, got %q", out[1].Username)
	}
}

func TestFilterFullMandatoryCoverage_Empty(t *testing.T) {
	if out := FilterFullMandatoryCoverage(nil); len(out) != 0 {
		t.Fatalf("expected empty result, got %d", len(out))
	}
}

func TestSearchContractors_RequiresSkills(t *testing.T) {
	uc := NewMatchingUsecase(&mockMatchRepo{}, mockJobPostRepo{}, nil, 0)

	_, err := uc.SearchContractors(context.Background(), SearchContractorsInput{
		From: time.Now(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearchContractors_ToBeforeFromRejected(t *testing.T) {
	uc := NewMatchingUsecase(&mockMatchRepo{}, mockJobPostRepo{}, nil, 0)

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	_, err := uc.SearchContractors(context.Background(), SearchContractorsInput{
		SkillIDs: []uuid.UUID{uuid.New()},
		From:     from,
		To:       from.AddDate(0, 0, -1),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearchContractors_SingleDateCollapsesRange(t *testing.T) {
	repo := &mockMatchRepo{contractors: []repository.ContractorRow{
		{UserID: uuid.New(), Username: "carpenter", Email: "c@example.com"},
	}}
	uc := NewMatchingUsecase(repo, mockJobPostRepo{}, nil, 0)

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	out, err := uc.SearchContractors(context.Background(), SearchContractorsInput{
		SkillIDs: []uuid.UUID{uuid.New()},
		From:     from,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !repo.lastFrom.Equal(from) || !repo.lastTo.Equal(from) {
		t.Fatalf("expected range collapsed to the single date, got %v..%v", repo.lastFrom, repo.lastTo)
	}
	if len(out) != 1 || out[0].Username != "carpenter" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestContractorsForJob_MissingJob(t *testing.T) {
	uc := NewMatchingUsecase(&mockMatchRepo{}, mockJobPostRepo{err: repository.ErrNotFound}, nil, 0)

	_, err := uc.ContractorsForJob(context.Background(), uuid.New())
	if !errors.Is(err, ErrJobPostNotFound) {
		t.Fatalf("expected ErrJobPostNotFound, got %v", err)
	}
}

func TestDedupeSkillIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	out := dedupeSkillIDs([]uuid.UUID{a, b, a, uuid.Nil, b})
	if len(out) != 2 || out[0] != a || out[1] != b {
		t.Fatalf("unexpected dedupe result: %v", out)
	}
}
