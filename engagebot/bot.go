package engagebot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/engagebot/engagebot/database"
	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
	"github.com/ellavondegurechaff/engagebot/internal/domain/linkfilter"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

type Bot struct {
	Cfg      Config
	Client   bot.Client
	Version  string
	Commit   string
	DB       *database.DB
	Ledger   ledger.Service
	LinkRule *linkfilter.Rule
	Cookies  services.CookieStore
	Verifier *services.LikeVerifier
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(
			gateway.IntentGuilds,
			gateway.IntentGuildMessages,
			gateway.IntentMessageContent,
			gateway.IntentDirectMessages,
		)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("EngageBot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("for Instagram links"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.String("type", "sys"), slog.Any("error", err))
	}
}

// IsAdmin reports whether the member may manage the verifier session.
func (b *Bot) IsAdmin(id snowflake.ID) bool {
	return b.Cfg.Bot.IsAdmin(id)
}

// SendDM delivers a private message. Members with closed DMs are only
// logged, never treated as a failure of the triggering action.
func (b *Bot) SendDM(userID snowflake.ID, msg discord.MessageCreate) {
	dmChannel, err := b.Client.Rest().CreateDMChannel(userID)
	if err != nil {
		slog.Warn("Couldn't open DM channel",
			slog.String("type", "sys"),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		return
	}

	if _, err = b.Client.Rest().CreateMessage(dmChannel.ID(), msg); err != nil {
		slog.Warn("Couldn't message user",
			slog.String("type", "sys"),
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
	}
}
