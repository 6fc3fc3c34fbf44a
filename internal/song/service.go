package song

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/tunebox/tunebox/internal/apperr"
	"github.com/tunebox/tunebox/internal/media"
	"github.com/tunebox/tunebox/internal/notification"
)

// Service manages the song catalogue and user favorites.
type Service struct {
	repo     Repository
	uploader media.Uploader
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService builds a song service. notifier may be nil.
func NewService(repo Repository, uploader media.Uploader, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, uploader: uploader, notifier: notifier, logger: logger}
}

func (in UploadInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Song, validation.Required),
		validation.Field(&in.Thumbnail, validation.Required),
		validation.Field(&in.Artist, validation.Required),
		validation.Field(&in.SongName, validation.Required),
		validation.Field(&in.HexCode, validation.Required),
	)
}

// Upload stores the song file and thumbnail under songs/<id> and records the song.
func (s *Service) Upload(ctx context.Context, uploaderID string, in UploadInput) (Song, error) {
	if err := in.validate(); err != nil {
		return Song{}, apperr.ErrInvalidInput.WithMessage(err.Error())
	}

	id := uuid.NewString()
	folder := "songs/" + id

	songURL, err := s.uploader.Upload(ctx, media.Object{
		Resource:    media.ResourceAuto,
		Folder:      folder,
		Filename:    in.Song.Filename,
		ContentType: in.Song.ContentType,
		Size:        in.Song.Size,
		Body:        in.Song.Body,
	})
	if err != nil {
		return Song{}, fmt.Errorf("upload song: %w", err)
	}

	thumbnailURL, err := s.uploader.Upload(ctx, media.Object{
		Resource:    media.ResourceImage,
		Folder:      folder,
		Filename:    in.Thumbnail.Filename,
		ContentType: in.Thumbnail.ContentType,
		Size:        in.Thumbnail.Size,
		Body:        in.Thumbnail.Body,
	})
	if err != nil {
		return Song{}, fmt.Errorf("upload thumbnail: %w", err)
	}

	song := Song{
		ID:           id,
		SongName:     in.SongName,
		Artist:       in.Artist,
		HexCode:      in.HexCode,
		SongURL:      songURL,
		ThumbnailURL: thumbnailURL,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateSong(ctx, song); err != nil {
		return Song{}, err
	}

	if s.notifier != nil {
		event := notification.Event{
			Kind:       notification.KindSongUploaded,
			Subject:    song.ID,
			Attributes: map[string]string{"uploaded_by": uploaderID, "song_name": song.SongName},
		}
		if err := s.notifier.Notify(ctx, event); err != nil && s.logger != nil {
			s.logger.Warn("notify failed", slog.String("kind", event.Kind), slog.Any("error", err))
		}
	}
	return song, nil
}

// List returns the whole catalogue.
func (s *Service) List(ctx context.Context) ([]Song, error) {
	return s.repo.ListSongs(ctx)
}

// ToggleFavorite flips the user's favorite on songID and reports whether the
// song is favorited afterwards.
func (s *Service) ToggleFavorite(ctx context.Context, userID string, in FavoriteInput) (bool, error) {
	if err := validation.ValidateStruct(&in, validation.Field(&in.SongID, validation.Required)); err != nil {
		return false, apperr.ErrInvalidInput.WithMessage(err.Error())
	}

	existing, err := s.repo.FindFavorite(ctx, userID, in.SongID)
	switch {
	case err == nil:
		if err := s.repo.DeleteFavorite(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	case !errors.Is(err, ErrNotFound):
		return false, err
	}

	exists, err := s.repo.SongExists(ctx, in.SongID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, apperr.ErrSongNotFound
	}

	err = s.repo.CreateFavorite(ctx, Favorite{ID: uuid.NewString(), SongID: in.SongID, UserID: userID})
	if err != nil && !errors.Is(err, ErrFavoriteExists) {
		return false, err
	}
	return true, nil
}

// Favorites returns the user's favorites with their songs.
func (s *Service) Favorites(ctx context.Context, userID string) ([]Favorite, error) {
	return s.repo.ListFavorites(ctx, userID)
}
