package song

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory song store for development and tests.
type MemoryRepository struct {
	mu        sync.RWMutex
	songs     map[string]Song
	favorites map[string]Favorite
}

// NewMemoryRepository builds an empty in-memory song store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{songs: make(map[string]Song), favorites: make(map[string]Favorite)}
}

func (r *MemoryRepository) CreateSong(_ context.Context, s Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs[s.ID] = s
	return nil
}

func (r *MemoryRepository) ListSongs(_ context.Context) ([]Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Song, 0, len(r.songs))
	for _, s := range r.songs {
		out = append(out, s)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryRepository) SongExists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.songs[id]
	return ok, nil
}

func (r *MemoryRepository) FindFavorite(_ context.Context, userID, songID string) (Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.favorites {
		if f.UserID == userID && f.SongID == songID {
			return f, nil
		}
	}
	return Favorite{}, ErrNotFound
}

func (r *MemoryRepository) CreateFavorite(_ context.Context, fav Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.favorites {
		if f.UserID == fav.UserID && f.SongID == fav.SongID {
			return ErrFavoriteExists
		}
	}
	fav.Song = nil
	r.favorites[fav.ID] = fav
	return nil
}

func (r *MemoryRepository) DeleteFavorite(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites, id)
	return nil
}

func (r *MemoryRepository) ListFavorites(_ context.Context, userID string) ([]Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Favorite{}
	for _, f := range r.favorites {
		if f.UserID != userID {
			continue
		}
		s, ok := r.songs[f.SongID]
		if !ok {
			continue
		}
		f.Song = &s
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Song.CreatedAt.Equal(out[j].Song.CreatedAt) {
			return out[i].Song.CreatedAt.After(out[j].Song.CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func sortNewestFirst(songs []Song) {
	sort.Slice(songs, func(i, j int) bool {
		if !songs[i].CreatedAt.Equal(songs[j].CreatedAt) {
			return songs[i].CreatedAt.After(songs[j].CreatedAt)
		}
		return songs[i].ID < songs[j].ID
	})
}
