package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/identity"
	"github.com/tunebox/tunebox/internal/song"
)

// RegisterSongRoutes wires the catalogue endpoints behind the gate. When
// idempotency is non-nil it guards the mutating routes.
func RegisterSongRoutes(r fiber.Router, h *song.Handler, gate, idempotency fiber.Handler) {
	group := r.Group("/song", gate)
	if idempotency != nil {
		group.Post("/upload", idempotency, h.Upload)
		group.Post("/favorite", idempotency, h.Favorite)
	} else {
		group.Post("/upload", h.Upload)
		group.Post("/favorite", h.Favorite)
	}
	group.Get("/list", h.List)
	group.Get("/list/favorites", h.ListFavorites)
}

// favoritesOf exposes song favorites to the identity service without the
// identity package importing song.
type favoritesOf struct {
	repo song.Repository
}

func (f favoritesOf) FavoritesOf(ctx context.Context, userID string) ([]identity.Favorite, error) {
	favs, err := f.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]identity.Favorite, 0, len(favs))
	for _, fav := range favs {
		out = append(out, identity.Favorite{ID: fav.ID, SongID: fav.SongID, UserID: fav.UserID})
	}
	return out, nil
}
