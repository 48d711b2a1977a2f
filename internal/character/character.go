package character

import (
	"time"

	"hpportal/internal/platform/hpapi"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ErrRemoteFetch is matched by every error returned from a failed refresh.
var ErrRemoteFetch = hpapi.ErrRemoteFetch

// Character is a normalized upstream record. All fields are always set,
// possibly to "".
type Character struct {
	Name     string `json:"name"`
	House    string `json:"house"`
	Patronus string `json:"patronus"`
	Image    string `json:"image"`
}

// PageRequest selects a filtered page of characters.
type PageRequest struct {
	Query    string
	Page     int
	PageSize int
}

// PageResult is one page of the filtered collection. PreviousPage and
// NextPage are zero when there is no such page.
type PageResult struct {
	Items        []Character `json:"items"`
	Query        string      `json:"query"`
	Total        int         `json:"total"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
	TotalPages   int         `json:"total_pages"`
	HasPrevious  bool        `json:"has_previous"`
	HasNext      bool        `json:"has_next"`
	PreviousPage int         `json:"previous_page,omitempty"`
	NextPage     int         `json:"next_page,omitempty"`
}

// CacheStatus describes what the cache currently holds.
type CacheStatus struct {
	Populated bool          `json:"populated"`
	Size      int           `json:"size"`
	FetchedAt time.Time     `json:"fetched_at"`
	Age       time.Duration `json:"age"`
	TTL       time.Duration `json:"ttl"`
	Fresh     bool          `json:"fresh"`
}

func fromRemote(raw []hpapi.Character) []Character {
	out := make([]Character, len(raw))
	for i, r := range raw {
		out[i] = Character{
			Name:     r.Name,
			House:    r.House,
			Patronus: r.Patronus,
			Image:    r.Image,
		}
	}
	return out
}
