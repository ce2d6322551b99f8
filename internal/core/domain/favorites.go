package domain

type FavoriteKind string

const (
	FavoriteVideos FavoriteKind = "videos"
	FavoriteShorts FavoriteKind = "shorts"
	FavoriteNews   FavoriteKind = "news"
)

func (k FavoriteKind) Valid() bool {
	switch k {
	case FavoriteVideos, FavoriteShorts, FavoriteNews:
		return true
	}
	return false
}

// Favorites holds a user's liked content IDs per kind.
type Favorites struct {
	Videos []ContentID `json:"videos"`
	Shorts []ContentID `json:"shorts"`
	News   []ContentID `json:"news"`
}

// CacheStats is the memory-tier introspection snapshot of the content cache.
type CacheStats struct {
	MemoryEntries int      `json:"memory_entries"`
	MemoryKeys    []string `json:"memory_keys"`
}
