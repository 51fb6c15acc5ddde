package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 See the top sharers by total score",
}

func LeaderboardHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		entries, err := b.Ledger.Leaderboard(ctx, b.Cfg.Ledger.LeaderboardLimit)
		if err != nil {
			return utils.EH.CreateLedgerError(e, err)
		}

		return utils.EH.CreateEphemeralEmbed(e,
			fmt.Sprintf("🏆 Top %d Users (Total Score)", b.Cfg.Ledger.LeaderboardLimit),
			utils.FormatLeaderboard(entries))
	}
}
