package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"coinpulse/internal/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	commandTimeout = 45 * time.Second
	botCoinLimit   = 10
	botHeadlines   = 3
)

type NewsAnalyzer interface {
	AnalyzeCoinNews(ctx context.Context, asset domain.Asset) (domain.AggregateReport, error)
}

type MarketReader interface {
	TopCoins(ctx context.Context, limit int) ([]domain.AssessedCoin, error)
	ResolveSymbol(ctx context.Context, symbol string) (domain.Asset, bool, error)
}

// StartTelegramBot starts long polling in the background. An empty token
// disables the bot.
func StartTelegramBot(ctx context.Context, token string, news NewsAnalyzer, market MarketReader) error {
	if token == "" {
		slog.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/news", func(c tele.Context) error {
		cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		return c.Send(newsReply(cmdCtx, news, market, c.Args()))
	})

	b.Handle("/coins", func(c tele.Context) error {
		cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		return c.Send(coinsReply(cmdCtx, market))
	})

	slog.Info("Telegram bot started")
	go b.Start()
	go func() {
		<-ctx.Done()
		b.Stop()
	}()
	return nil
}

// assetFromArgs reads "SYMBOL [Name words]". The name falls back to the
// known-asset table.
func assetFromArgs(args []string) (domain.Asset, bool) {
	if len(args) == 0 {
		return domain.Asset{}, false
	}
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		name = domain.KnownAssets[symbol]
	}
	asset := domain.Asset{Name: name, Symbol: symbol}
	return asset, asset.Validate() == nil
}

// resolveAsset is assetFromArgs plus a coin search for symbols the
// known-asset table does not cover.
func resolveAsset(ctx context.Context, market MarketReader, args []string) (domain.Asset, bool) {
	asset, ok := assetFromArgs(args)
	if ok || asset.Symbol == "" || market == nil {
		return asset, ok
	}
	found, ok, err := market.ResolveSymbol(ctx, asset.Symbol)
	if err != nil {
		slog.Warn("telegram symbol lookup failed", "symbol", asset.Symbol, "error", err)
		return asset, false
	}
	return found, ok
}

func newsReply(ctx context.Context, news NewsAnalyzer, market MarketReader, args []string) string {
	asset, ok := resolveAsset(ctx, market, args)
	if !ok {
		return "Usage: /news BTC or /news SYMBOL Coin Name"
	}
	report, err := news.AnalyzeCoinNews(ctx, asset)
	if err != nil {
		slog.Warn("telegram news analysis failed", "symbol", asset.Symbol, "error", err)
		return fmt.Sprintf("News analysis for %s failed, please retry later.", asset.Symbol)
	}
	return formatReport(asset, report)
}

func formatReport(asset domain.Asset, r domain.AggregateReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) news sentiment\n", asset.Name, asset.Symbol)
	fmt.Fprintf(&b, "Overall: %s\nSignal: %s (%d%% confidence)\n", r.Overall, r.Signal, r.Confidence)
	fmt.Fprintf(&b, "Bullish %d / Bearish %d / Neutral %d", r.BullishCount, r.BearishCount, r.NeutralCount)
	for i, src := range r.Sources {
		if i == botHeadlines {
			break
		}
		fmt.Fprintf(&b, "\n- %s (%s)", src.Title, src.Source)
	}
	return b.String()
}

func coinsReply(ctx context.Context, market MarketReader) string {
	coins, err := market.TopCoins(ctx, botCoinLimit)
	if err != nil {
		slog.Warn("telegram coins lookup failed", "error", err)
		return "Could not load market data, please retry later."
	}
	if len(coins) == 0 {
		return "No market data available."
	}
	var b strings.Builder
	b.WriteString("Top coins")
	for _, c := range coins {
		fmt.Fprintf(&b, "\n%d. %s $%.2f (%+.2f%%) %s %d%%",
			c.MarketCapRank, strings.ToUpper(c.Symbol), c.CurrentPrice, c.PriceChangePct24h,
			c.Assessment.Signal, c.Assessment.Confidence)
	}
	return b.String()
}
