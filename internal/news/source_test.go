package news

import (
	"context"
	"testing"

	"coinpulse/internal/domain"

	"github.com/stretchr/testify/require"
)

type recordingReader struct {
	symbol, query, feedURL, source string
	limit                          int
	out                            []domain.NewsRecord
}

func (r *recordingReader) FetchPosts(_ context.Context, symbol string, limit int) ([]domain.NewsRecord, error) {
	r.symbol, r.limit = symbol, limit
	return r.out, nil
}

func (r *recordingReader) Search(_ context.Context, query string, limit int) ([]domain.NewsRecord, error) {
	r.query, r.limit = query, limit
	return r.out, nil
}

func (r *recordingReader) FetchFeed(_ context.Context, feedURL, source string, maxItems int) ([]domain.NewsRecord, error) {
	r.feedURL, r.source, r.limit = feedURL, source, maxItems
	return r.out, nil
}

func TestSourceAdaptersPassAssetScopedQueries(t *testing.T) {
	ctx := context.Background()
	asset := domain.Asset{Name: "Solana", Symbol: "SOL"}

	posts := &recordingReader{}
	_, err := CuratedPostSource{Reader: posts}.Fetch(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, "SOL", posts.symbol)
	require.Equal(t, 25, posts.limit)

	search := &recordingReader{}
	_, err = SearchFeedSource{Reader: search}.Fetch(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, "Solana SOL cryptocurrency", search.query)
	require.Equal(t, 20, search.limit)

	feed := &recordingReader{}
	_, err = OutletFeedSource{Reader: feed, URL: "https://outlet.test/rss", Label: "Outlet"}.Fetch(ctx, asset)
	require.NoError(t, err)
	require.Equal(t, "https://outlet.test/rss", feed.feedURL)
	require.Equal(t, "Outlet", feed.source)
	require.Equal(t, 15, feed.limit)
}

func TestSourceAdaptersTargeting(t *testing.T) {
	require.True(t, CuratedPostSource{}.Targeted())
	require.True(t, SearchFeedSource{}.Targeted())
	require.False(t, OutletFeedSource{}.Targeted())
}

func TestSourceAdaptersWithoutReaderFail(t *testing.T) {
	ctx := context.Background()
	for _, s := range []SourceAdapter{CuratedPostSource{}, SearchFeedSource{}, OutletFeedSource{}} {
		_, err := s.Fetch(ctx, btc)
		require.Error(t, err, s.Name())
	}
}

func TestFilterRelevant(t *testing.T) {
	records := []domain.NewsRecord{
		{Title: "Bitcoin climbs", URL: "1"},
		{Title: "Weekly wrap", Snippet: "btcusd closes higher", URL: "2"},
		{Title: "Ether gas fees fall", URL: "3"},
		{Title: "BTC dominance", URL: "4"},
		{Title: "Analysts eye btc/usd", URL: "5"},
	}

	got := FilterRelevant(records, btc)
	urls := make([]string, 0, len(got))
	for _, r := range got {
		urls = append(urls, r.URL)
	}
	require.Equal(t, []string{"1", "2", "4", "5"}, urls)
	require.Len(t, records, 5)
}

func TestFilterRelevantBlankAssetMatchesNothing(t *testing.T) {
	got := FilterRelevant([]domain.NewsRecord{{Title: "anything"}}, domain.Asset{Name: " ", Symbol: ""})
	require.Empty(t, got)
}

func TestDedupKeepsFirstAndOrder(t *testing.T) {
	in := []domain.NewsRecord{
		{Title: "A", URL: "u1"},
		{Title: "B", URL: "u2"},
		{Title: "a (copy)", URL: "u1"},
		{Title: "C", URL: "u3"},
	}

	got := Dedup(in)
	require.Equal(t, []domain.NewsRecord{in[0], in[1], in[3]}, got)
	require.Len(t, in, 4)
	require.Equal(t, "a (copy)", in[2].Title)
}

func TestDedupIsIdempotent(t *testing.T) {
	in := []domain.NewsRecord{
		{Title: "A", URL: "u1"},
		{Title: "no link"},
		{Title: "B", URL: "u2"},
		{Title: "A again", URL: "u1"},
		{Title: "no link either"},
		{Title: "C", URL: "u3"},
		{Title: "B again", URL: "u2"},
	}

	once := Dedup(in)
	twice := Dedup(once)
	require.Equal(t, once, twice)

	urls := make([]string, 0, len(once))
	for _, r := range once {
		urls = append(urls, r.URL)
	}
	// Records without a URL share the empty key, so only the first survives.
	require.Equal(t, []string{"u1", "", "u2", "u3"}, urls)
	require.Equal(t, "no link", once[1].Title)
}
