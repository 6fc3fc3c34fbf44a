package song

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/apperr"
	"github.com/tunebox/tunebox/internal/auth"
)

// Handler exposes song HTTP endpoints. Every route sits behind the auth gate.
type Handler struct {
	service *Service
}

// NewHandler builds a song HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func identity(c *fiber.Ctx) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(c.UserContext())
	if !ok {
		return auth.Identity{}, apperr.ErrMissingCredential
	}
	return id, nil
}

// Upload accepts a multipart form with song and thumbnail files.
func (h *Handler) Upload(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.ErrInvalidInput.WithMessage("expected a multipart form")
	}

	in := UploadInput{
		SongName: firstValue(form, "song_name"),
		Artist:   firstValue(form, "artist"),
		HexCode:  firstValue(form, "hex_code"),
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for field, dst := range map[string]**File{"song": &in.Song, "thumbnail": &in.Thumbnail} {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		f, err := header.Open()
		if err != nil {
			return fmt.Errorf("open %s part: %w", field, err)
		}
		opened = append(opened, f)
		*dst = &File{
			Filename:    header.Filename,
			ContentType: header.Header.Get(fiber.HeaderContentType),
			Size:        header.Size,
			Body:        f,
		}
	}

	song, err := h.service.Upload(c.UserContext(), id.Subject, in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(song)
}

func firstValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns every song.
func (h *Handler) List(c *fiber.Ctx) error {
	songs, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(songs)
}

// Favorite toggles the caller's favorite on a song.
func (h *Handler) Favorite(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req FavoriteInput
	if err := c.BodyParser(&req); err != nil {
		return apperr.ErrInvalidInput.WithMessage("malformed request body")
	}
	favorited, err := h.service.ToggleFavorite(c.UserContext(), id.Subject, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"message": favorited})
}

// ListFavorites returns the caller's favorites with their songs.
func (h *Handler) ListFavorites(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	favs, err := h.service.Favorites(c.UserContext(), id.Subject)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(favs)
}
