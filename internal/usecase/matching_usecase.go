package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"craftlink/internal/repository"

	"github.com/google/uuid"
)

type ContractorMatch struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	RequiredMatched int       `json:"required_matched"`
	TotalRequired   int       `json:"total_required"`
	TotalMatched    int       `json:"total_matched"`
}

type ContractorItem struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Email    string    `json:"email"`
}

type JobMatchItem struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Deadline    time.Time `json:"deadline"`
}

type SearchContractorsInput struct {
	SkillIDs []uuid.UUID
	From     time.Time
	To       time.Time
}

// MatchCache is the subset of the redis cache the matching reads go through.
// A nil cache disables caching entirely.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type MatchingUsecase interface {
	JobsForContractor(ctx context.Context, contractorID uuid.UUID) ([]JobMatchItem, error)
	ContractorsForJob(ctx context.Context, jobPostID uuid.UUID) ([]ContractorMatch, error)
	SearchContractors(ctx context.Context, in SearchContractorsInput) ([]ContractorItem, error)
}

type Matching struct {
	matches repository.MatchRepository
	jobs    repository.JobPostRepository
	cache   MatchCache
	ttl     time.Duration
}

func NewMatchingUsecase(matches repository.MatchRepository, jobs repository.JobPostRepository, cache MatchCache, ttl time.Duration) *Matching {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Matching{matches: matches, jobs: jobs, cache: cache, ttl: ttl}
}

// JobsForContractor lists open, still-unbooked job posts sharing at least one
// required skill with the contractor that do not clash with the contractor's
// existing booking dates.
func (u *Matching) JobsForContractor(ctx context.Context, contractorID uuid.UUID) ([]JobMatchItem, error) {
	if contractorID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	key := "match:jobs:" + contractorID.String()
	var cached []JobMatchItem
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	jobs, err := u.matches.JobsForContractor(ctx, contractorID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]JobMatchItem, 0, len(jobs))
	for _, jp := range jobs {
		out = append(out, JobMatchItem{
			ID:          jp.ID,
			UserID:      jp.UserID,
			Title:       jp.Title,
			Description: jp.Description,
			Price:       jp.Price,
			Deadline:    jp.Deadline,
		})
	}

	u.cacheSet(ctx, key, out)
	return out, nil
}

// ContractorsForJob keeps only contractors covering every mandatory skill the
// job requires. A job without mandatory skills accepts any contractor sharing
// at least one required skill.
func (u *Matching) ContractorsForJob(ctx context.Context, jobPostID uuid.UUID) ([]ContractorMatch, error) {
	if jobPostID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	if _, err := u.jobs.OwnerID(ctx, jobPostID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobPostNotFound
		}
		return nil, ErrInternal
	}

	key := "match:contractors:" + jobPostID.String()
	var cached []ContractorMatch
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.matches.CoverageForJob(ctx, jobPostID)
	if err != nil {
		return nil, ErrInternal
	}

	out := FilterFullMandatoryCoverage(rows)

	u.cacheSet(ctx, key, out)
	return out, nil
}

// FilterFullMandatoryCoverage applies the coverage rule: a contractor
// qualifies iff they hold every mandatory skill the job requires. Ordering of
// the input (total matched desc, user id asc) is preserved.
func FilterFullMandatoryCoverage(rows []repository.CoverageRow) []ContractorMatch {
	out := make([]ContractorMatch, 0, len(rows))
	for _, r := range rows {
		if r.RequiredMatched != r.TotalRequired {
			continue
		}
		out = append(out, ContractorMatch{
			UserID:          r.UserID,
			Username:        r.Username,
			Name:            r.Name,
			Surname:         r.Surname,
			RequiredMatched: r.RequiredMatched,
			TotalRequired:   r.TotalRequired,
			TotalMatched:    r.TotalMatched,
		})
	}
	return out
}

// SearchContractors finds contractors holding every requested skill with no
// booking inside the requested date range. A single-date search uses the same
// date for both range ends.
func (u *Matching) SearchContractors(ctx context.Context, in SearchContractorsInput) ([]ContractorItem, error) {
	skillIDs := dedupeSkillIDs(in.SkillIDs)
	if len(skillIDs) == 0 || in.From.IsZero() {
		return nil, ErrInvalidInput
	}

	to := in.To
	if to.IsZero() {
		to = in.From
	}
	if to.Before(in.From) {
		return nil, ErrInvalidInput
	}

	key := searchCacheKey(skillIDs, in.From, to)
	var cached []ContractorItem
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	rows, err := u.matches.SearchContractors(ctx, skillIDs, in.From, to)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]ContractorItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, ContractorItem{
			UserID:   r.UserID,
			Username: r.Username,
			Name:     r.Name,
			Surname:  r.Surname,
			Email:    r.Email,
		})
	}

	u.cacheSet(ctx, key, out)
	return out, nil
}

func (u *Matching) cacheGet(ctx context.Context, key string, out any) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.GetJSON(ctx, key, out)
	return err == nil && hit
}

func (u *Matching) cacheSet(ctx context.Context, key string, value any) {
	if u.cache == nil {
		return
	}
	_ = u.cache.SetJSON(ctx, key, value, u.ttl)
}

func dedupeSkillIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func searchCacheKey(skillIDs []uuid.UUID, from, to time.Time) string {
	strs := make([]string, 0, len(skillIDs))
	for _, id := range skillIDs {
		strs = append(strs, id.String())
	}
	sort.Strings(strs)
	return fmt.Sprintf("search:contractors:%s:%s:%s",
		strings.Join(strs, ","), from.Format("2006-01-02"), to.Format("2006-01-02"))
}
