package usecase

import (
	"context"

	"craftlink/internal/repository"
)

type AdminUsecase interface {
	Overview(ctx context.Context) (repository.Overview, error)
}

type Admin struct {
	stats repository.StatsRepository
}

func NewAdminUsecase(stats repository.StatsRepository) *Admin {
	return &Admin{stats: stats}
}

func (u *Admin) Overview(ctx context.Context) (repository.Overview, error) {
	ov, err := u.stats.Overview(ctx)
	if err != nil {
		return repository.Overview{}, ErrInternal
	}
	return ov, nil
}
