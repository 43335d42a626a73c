// Package places defines the abstraction used to discover businesses through
// a free-text places search provider.
package places

import (
	"context"

	"leadfinder/pkg/domain"
)

const (
	// MinResults is the smallest result count a search can ask for.
	MinResults = 1
	// MaxResults is the largest result count a search can ask for.
	MaxResults = 100
)

// ClampResults bounds n to [MinResults, MaxResults].
func ClampResults(n int) int {
	return min(max(n, MinResults), MaxResults)
}

// Searcher is the abstraction for places search providers.
//
//go:generate mockgen -package mockplaces -source=interface.go -destination=mock/mockplaces.go *
type Searcher interface {
	// Search runs a single free-text query and returns at most maxResults
	// businesses (clamped to [MinResults, MaxResults]) in provider order.
	Search(ctx context.Context, query string, maxResults int) ([]domain.Business, error)
}
