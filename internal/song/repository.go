package song

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a song or favorite does not exist.
	ErrNotFound = errors.New("not found")
	// ErrFavoriteExists is returned when the user already favorited the song.
	ErrFavoriteExists = errors.New("favorite exists")
)

const uniqueViolation = "23505"

// Repository persists songs and favorites.
type Repository interface {
	CreateSong(ctx context.Context, song Song) error
	ListSongs(ctx context.Context) ([]Song, error)
	SongExists(ctx context.Context, id string) (bool, error)

	FindFavorite(ctx context.Context, userID, songID string) (Favorite, error)
	CreateFavorite(ctx context.Context, fav Favorite) error
	DeleteFavorite(ctx context.Context, id string) error
	// ListFavorites returns the user's favorites with Song populated.
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)
}

// PostgresRepository stores songs in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateSong inserts a song record.
func (r *PostgresRepository) CreateSong(ctx context.Context, s Song) error {
	_, err := r.db.Exec(ctx, `INSERT INTO songs (id, song_name, artist, hex_code, song_url, thumbnail_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`, s.ID, s.SongName, s.Artist, s.HexCode, s.SongURL, s.ThumbnailURL, s.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// ListSongs returns every song, newest first.
func (r *PostgresRepository) ListSongs(ctx context.Context) ([]Song, error) {
	rows, err := r.db.Query(ctx, `SELECT id, song_name, artist, hex_code, song_url, thumbnail_url, created_at
        FROM songs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		var s Song
		if err := rows.Scan(&s.ID, &s.SongName, &s.Artist, &s.HexCode, &s.SongURL, &s.ThumbnailURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

// SongExists reports whether a song with id is stored.
func (r *PostgresRepository) SongExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM songs WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("song exists: %w", err)
	}
	return exists, nil
}

// FindFavorite fetches the user's favorite for a song.
func (r *PostgresRepository) FindFavorite(ctx context.Context, userID, songID string) (Favorite, error) {
	var f Favorite
	err := r.db.QueryRow(ctx, `SELECT id, song_id, user_id FROM favorites WHERE user_id = $1 AND song_id = $2`, userID, songID).
		Scan(&f.ID, &f.SongID, &f.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Favorite{}, ErrNotFound
		}
		return Favorite{}, fmt.Errorf("find favorite: %w", err)
	}
	return f, nil
}

// CreateFavorite inserts a favorite; the (user_id, song_id) unique
// constraint turns a concurrent duplicate into ErrFavoriteExists.
func (r *PostgresRepository) CreateFavorite(ctx context.Context, f Favorite) error {
	_, err := r.db.Exec(ctx, `INSERT INTO favorites (id, song_id, user_id) VALUES ($1, $2, $3)`, f.ID, f.SongID, f.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrFavoriteExists
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// DeleteFavorite removes a favorite by id. Deleting a missing row is not an error.
func (r *PostgresRepository) DeleteFavorite(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the user's favorites joined with their songs.
func (r *PostgresRepository) ListFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.song_id, f.user_id,
            s.id, s.song_name, s.artist, s.hex_code, s.song_url, s.thumbnail_url, s.created_at
        FROM favorites f JOIN songs s ON s.id = f.song_id
        WHERE f.user_id = $1 ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favs := []Favorite{}
	for rows.Next() {
		var (
			f Favorite
			s Song
		)
		if err := rows.Scan(&f.ID, &f.SongID, &f.UserID,
			&s.ID, &s.SongName, &s.Artist, &s.HexCode, &s.SongURL, &s.ThumbnailURL, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		f.Song = &s
		favs = append(favs, f)
	}
	return favs, rows.Err()
}
