package news

import (
	"context"
	"fmt"
	"strings"

	"coinpulse/internal/domain"
)

// SourceAdapter is one integration against an external news feed.
// Targeted reports whether Fetch already scopes its query to the asset;
// untargeted results go through FilterRelevant.
type SourceAdapter interface {
	Name() string
	Targeted() bool
	Fetch(ctx context.Context, asset domain.Asset) ([]domain.NewsRecord, error)
}

type PostReader interface {
	FetchPosts(ctx context.Context, symbol string, limit int) ([]domain.NewsRecord, error)
}

type SearchReader interface {
	Search(ctx context.Context, query string, limit int) ([]domain.NewsRecord, error)
}

type FeedReader interface {
	FetchFeed(ctx context.Context, feedURL, source string, maxItems int) ([]domain.NewsRecord, error)
}

const (
	curatedPostLimit = 25
	searchFeedLimit  = 20
	outletFeedLimit  = 15
)

// CuratedPostSource queries a post feed filtered by ticker symbol.
type CuratedPostSource struct {
	Reader PostReader
}

func (s CuratedPostSource) Name() string   { return "curated-posts" }
func (s CuratedPostSource) Targeted() bool { return true }

func (s CuratedPostSource) Fetch(ctx context.Context, asset domain.Asset) ([]domain.NewsRecord, error) {
	if s.Reader == nil {
		return nil, fmt.Errorf("curated post reader is not configured")
	}
	return s.Reader.FetchPosts(ctx, asset.Symbol, curatedPostLimit)
}

// SearchFeedSource runs a news search for "<name> <symbol> cryptocurrency".
type SearchFeedSource struct {
	Reader SearchReader
}

func (s SearchFeedSource) Name() string   { return "news-search" }
func (s SearchFeedSource) Targeted() bool { return true }

func (s SearchFeedSource) Fetch(ctx context.Context, asset domain.Asset) ([]domain.NewsRecord, error) {
	if s.Reader == nil {
		return nil, fmt.Errorf("news search reader is not configured")
	}
	return s.Reader.Search(ctx, SearchQuery(asset), searchFeedLimit)
}

// SearchQuery builds the asset-scoped search phrase.
func SearchQuery(asset domain.Asset) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s cryptocurrency", asset.Name, asset.Symbol))
}

// OutletFeedSource pulls a static outlet feed that is not query-parameterized.
type OutletFeedSource struct {
	Reader FeedReader
	URL    string
	Label  string
}

func (s OutletFeedSource) Name() string   { return "outlet-feed" }
func (s OutletFeedSource) Targeted() bool { return false }

func (s OutletFeedSource) Fetch(ctx context.Context, asset domain.Asset) ([]domain.NewsRecord, error) {
	if s.Reader == nil {
		return nil, fmt.Errorf("outlet feed reader is not configured")
	}
	return s.Reader.FetchFeed(ctx, s.URL, s.Label, outletFeedLimit)
}
