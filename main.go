package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/commands"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/database"
	"github.com/ellavondegurechaff/engagebot/engagebot/database/legacy"
	"github.com/ellavondegurechaff/engagebot/engagebot/database/repositories"
	"github.com/ellavondegurechaff/engagebot/engagebot/handlers"
	"github.com/ellavondegurechaff/engagebot/engagebot/logger"
	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
	"github.com/ellavondegurechaff/engagebot/internal/domain/linkfilter"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	logger.Setup(logger.Options{})

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	importLegacy := flag.String("import-legacy", "", "path to the old SQLite database to import, then exit")
	legacyIDMap := flag.String("legacy-id-map", "", "optional TOML file mapping old user ids to Discord ids")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := engagebot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	slog.Info("Starting EngageBot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	slog.Info("Initializing database connection...", slog.String("type", "db"), slog.String("driver", cfg.DB.Driver))
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err = db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("type", "db"),
			slog.Any("error", err))
		os.Exit(-1)
	}
	if err = db.Ping(ctx); err != nil {
		logger.LogError("Database ping failed", err, slog.String("driver", db.Driver()))
		os.Exit(-1)
	}
	logger.LogSystem("Database ready",
		slog.String("driver", db.Driver()),
		slog.Duration("took", time.Since(dbStartTime)))

	rule, err := linkfilter.Lookup(cfg.Ledger.LinkRuleVersion)
	if err != nil {
		slog.Error("Unknown link rule", slog.String("type", "sys"), slog.Any("error", err))
		os.Exit(-1)
	}

	if *importLegacy != "" {
		if err = runLegacyImport(db, rule, *importLegacy, *legacyIDMap); err != nil {
			logger.LogError("Legacy import failed", err, slog.String("path", *importLegacy))
			os.Exit(-1)
		}
		return
	}

	repo, err := repositories.NewLedgerRepository(db.BunDB(), cfg.Ledger.StartingScore, cfg.Ledger.LinkCacheSize)
	if err != nil {
		slog.Error("Failed to create ledger repository", slog.String("type", "db"), slog.Any("error", err))
		os.Exit(-1)
	}

	cookies, err := newCookieStore(ctx, cfg)
	if err != nil {
		logger.LogError("Failed to create cookie store", err, slog.String("backend", cfg.Cookies.Backend))
		os.Exit(-1)
	}

	verifier := services.NewLikeVerifier(cookies, services.VerifierOptions{
		Headless:      cfg.Verifier.Headless,
		UserAgent:     cfg.Verifier.UserAgent,
		ChromePath:    cfg.Verifier.ChromePath,
		Settle:        cfg.Verifier.Settle(),
		MaxConcurrent: int64(cfg.Verifier.MaxConcurrent),
	})
	verifier.Probe(ctx)

	b := engagebot.New(*cfg, version, commit)
	b.DB = db
	b.LinkRule = rule
	b.Cookies = cookies
	b.Verifier = verifier
	b.Ledger = ledger.NewService(repo, verifier, ledger.Options{
		QueueLimit:       cfg.Ledger.QueueLimit,
		LeaderboardLimit: cfg.Ledger.LeaderboardLimit,
		VerifyTimeout:    cfg.Verifier.Timeout(),
		RuleVersion:      rule.Version,
	})

	h := handler.New()

	h.Command("/username", handlers.WrapWithLogging("username", commands.UsernameHandler(b)))
	h.Command("/done", handlers.WrapWithTimeout("done", cfg.Verifier.Timeout()+config.VerifyCommandSlack, commands.DoneHandler(b)))
	h.Command("/queue", handlers.WrapWithLogging("queue", commands.QueueHandler(b)))
	h.Component("/queue/refresh", handlers.WrapComponentWithLogging("queue-refresh", commands.QueueRefreshHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))
	h.Command("/status", handlers.WrapWithLogging("status", commands.StatusHandler(b)))
	h.Command("/rules", handlers.WrapWithLogging("rules", commands.RulesHandler))
	h.Command("/help", handlers.WrapWithLogging("help", commands.HelpHandler(b)))
	h.Autocomplete("/help", commands.HelpAutocomplete)
	h.Command("/version", commands.VersionHandler(b))

	// Admin commands
	h.Command("/adjust", handlers.WrapWithLogging("adjust", commands.AdjustHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady), handlers.MessageHandler(b)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.", slog.String("type", "sys"))
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...", slog.String("type", "sys"))
}

func newCookieStore(ctx context.Context, cfg *engagebot.Config) (services.CookieStore, error) {
	if cfg.Cookies.Backend == "spaces" {
		return services.NewSpacesCookieStore(ctx,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Cookies.ObjectKey,
		)
	}
	return services.NewFileCookieStore(cfg.Cookies.Path), nil
}

func runLegacyImport(db *database.DB, rule *linkfilter.Rule, path, idMapPath string) error {
	opts := legacy.Options{Rule: rule}
	if idMapPath != "" {
		ids, err := legacy.LoadIDMap(idMapPath)
		if err != nil {
			return err
		}
		opts.IDMap = ids
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ImportQueryTimeout)
	defer cancel()

	start := time.Now()
	report, err := legacy.NewImporter(db.BunDB(), opts).ImportFile(ctx, path)
	if err != nil {
		return err
	}

	slog.Info("Legacy import finished",
		slog.String("type", "db"),
		slog.Int("users", report.Users),
		slog.Int("links", report.Links),
		slog.Int("likes", report.Likes),
		slog.Int("skipped_links", report.SkippedLinks),
		slog.Int("skipped_likes", report.SkippedLikes),
		slog.Duration("took", time.Since(start)))
	if len(report.CollidingLinks) > 0 {
		slog.Warn("Some legacy links were not imported because their ids are already taken",
			slog.String("type", "db"),
			slog.Any("link_ids", report.CollidingLinks))
	}
	return nil
}
