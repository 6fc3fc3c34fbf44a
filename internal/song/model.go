package song

import (
	"io"
	"time"
)

// Song is an uploaded track with its artwork.
type Song struct {
	ID           string    `json:"id"`
	SongName     string    `json:"song_name"`
	Artist       string    `json:"artist"`
	HexCode      string    `json:"hex_code"`
	SongURL      string    `json:"song_url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// Favorite marks a song for a user. Song is populated when listing a user's favorites.
type Favorite struct {
	ID     string `json:"id"`
	SongID string `json:"song_id"`
	UserID string `json:"user_id"`
	Song   *Song  `json:"song,omitempty"`
}

// File is an uploaded multipart part.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadInput carries the form fields and files of an upload request.
type UploadInput struct {
	SongName  string `json:"song_name"`
	Artist    string `json:"artist"`
	HexCode   string `json:"hex_code"`
	Song      *File  `json:"song"`
	Thumbnail *File  `json:"thumbnail"`
}

// FavoriteInput names the song to toggle.
type FavoriteInput struct {
	SongID string `json:"song_id"`
}
