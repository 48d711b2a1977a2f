package character

import (
	"context"

	"hpportal/internal/platform/hpapi"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=character

// Fetcher downloads the full upstream collection. *hpapi.Client implements it.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]hpapi.Character, error)
}

// CharacterSource hands out the current collection. *Cache implements it.
type CharacterSource interface {
	Get(ctx context.Context) ([]Character, error)
	Status() CacheStatus
}
