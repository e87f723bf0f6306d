// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

package volume

import (
	"context"
	"log/slog"

	"github.com/mangafire/mangafire/internal/core/manga"
	"github.com/mangafire/mangafire/internal/platform/validate"
)

// SeriesResolver translates a public series slug into catalogue metadata.
type SeriesResolver interface {
	FindBySlug(ctx context.Context, slug string) (*manga.Manga, error)
}

// Service orchestrates the business logic for volumes.
type Service struct {
	repo   Repository
	series SeriesResolver
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, series SeriesResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		series: series,
		logger: logger,
	}
}

// ListVolumes returns all volumes of a series in ascending number order.
func (service *Service) ListVolumes(ctx context.Context, slug string) ([]*Volume, error) {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return service.repo.ListByManga(ctx, series.ID)
}

// CreateVolume validates and persists a new volume. Duplicate numbers within
// a series surface as a conflict.
func (service *Service) CreateVolume(ctx context.Context, slug string, volume *Volume) error {
	series, err := service.series.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	volume.MangaID = series.ID

	if err := validateVolume(volume); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, volume); err != nil {
		return err
	}

	service.logger.Info("volume_created",
		slog.Int("volume_id", volume.ID),
		slog.Int("manga_id", volume.MangaID),
		slog.Float64("number", volume.Number),
	)

	return nil
}

// UpdateVolume applies a partial patch. A zero patch number keeps the
// current one.
func (service *Service) UpdateVolume(ctx context.Context, id int, patch *Volume) (*Volume, error) {
	current, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Number > 0 {
		current.Number = patch.Number
	}
	if patch.Title != nil {
		current.Title = patch.Title
	}
	if patch.CoverImage != nil {
		current.CoverImage = patch.CoverImage
	}

	if err := validateVolume(current); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// DeleteVolume removes a volume; its chapters stay, unassigned.
func (service *Service) DeleteVolume(ctx context.Context, id int) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("volume_deleted", slog.Int("volume_id", id))
	return nil
}

func validateVolume(volume *Volume) error {
	validator := validate.New()
	validator.Range(FieldNumber, int(volume.Number), 1, 10000)

	if volume.Title != nil {
		validator.MaxLen(FieldTitle, *volume.Title, 500)
	}

	if validator.HasErrors() {
		return validator.Err()
	}
	return nil
}
