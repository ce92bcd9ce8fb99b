package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"craftlink/internal/domain/identity"
	"craftlink/internal/repository"
	"craftlink/internal/storage"

	"github.com/google/uuid"
)

var ErrPhotoNotFound = errors.New("photo not found")

const photoSubdir = "photos"

type PhotoItem struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Caption    *string   `json:"caption"`
	ImageURL   string    `json:"image_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type UpdatePhotoInput struct {
	Caption *string
	// File replaces the stored image when non-nil.
	File         io.Reader
	OriginalName string
}

type PhotoUsecase interface {
	Upload(ctx context.Context, actor identity.Identity, caption *string, file io.Reader, originalName string) (PhotoItem, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]PhotoItem, error)
	Update(ctx context.Context, actor identity.Identity, id uuid.UUID, in UpdatePhotoInput) (PhotoItem, error)
	Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error
}

type Photos struct {
	photos repository.PhotoRepository
	files  storage.FileStore
	origin string
}

func NewPhotoUsecase(photos repository.PhotoRepository, files storage.FileStore, publicOrigin string) *Photos {
	return &Photos{photos: photos, files: files, origin: publicOrigin}
}

func (u *Photos) Upload(ctx context.Context, actor identity.Identity, caption *string, file io.Reader, originalName string) (PhotoItem, error) {
	if file == nil {
		return PhotoItem{}, ErrInvalidInput
	}

	filename, err := u.files.Save(photoSubdir, file, originalName)
	if err != nil {
		return PhotoItem{}, ErrInternal
	}

	created, err := u.photos.Create(ctx, repository.Photo{
		ID:            uuid.New(),
		UserID:        actor.UserID,
		Caption:       caption,
		ImageFilename: filename,
	})
	if err != nil {
		_ = u.files.Remove(photoSubdir, filename)
		return PhotoItem{}, ErrInternal
	}
	return u.toItem(created), nil
}

func (u *Photos) ListForUser(ctx context.Context, userID uuid.UUID) ([]PhotoItem, error) {
	all, err := u.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	items := make([]PhotoItem, 0, len(all))
	for _, p := range all {
		items = append(items, u.toItem(p))
	}
	return items, nil
}

func (u *Photos) Update(ctx context.Context, actor identity.Identity, id uuid.UUID, in UpdatePhotoInput) (PhotoItem, error) {
	existing, err := u.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return PhotoItem{}, ErrPhotoNotFound
		}
		return PhotoItem{}, ErrInternal
	}
	if !actor.CanActFor(existing.UserID) {
		return PhotoItem{}, ErrForbidden
	}

	caption := existing.Caption
	if in.Caption != nil {
		caption = in.Caption
	}

	filename := existing.ImageFilename
	var replaced bool
	if in.File != nil {
		filename, err = u.files.Save(photoSubdir, in.File, in.OriginalName)
		if err != nil {
			return PhotoItem{}, ErrInternal
		}
		replaced = true
	}

	if err := u.photos.Update(ctx, id, caption, filename); err != nil {
		if replaced {
			_ = u.files.Remove(photoSubdir, filename)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return PhotoItem{}, ErrPhotoNotFound
		}
		return PhotoItem{}, ErrInternal
	}

	if replaced {
		_ = u.files.Remove(photoSubdir, existing.ImageFilename)
	}

	updated, err := u.photos.GetByID(ctx, id)
	if err != nil {
		return PhotoItem{}, ErrInternal
	}
	return u.toItem(updated), nil
}

func (u *Photos) Delete(ctx context.Context, actor identity.Identity, id uuid.UUID) error {
	existing, err := u.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return ErrInternal
	}
	if !actor.CanActFor(existing.UserID) {
		return ErrForbidden
	}

	// File removal is best effort; the row is authoritative.
	_ = u.files.Remove(photoSubdir, existing.ImageFilename)

	if err := u.photos.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Photos) toItem(p repository.Photo) PhotoItem {
	return PhotoItem{
		ID:         p.ID,
		UserID:     p.UserID,
		Caption:    p.Caption,
		ImageURL:   u.files.PublicURL(u.origin, photoSubdir, p.ImageFilename),
		UploadedAt: p.UploadedAt,
	}
}
