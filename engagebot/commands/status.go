package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

var Status = discord.SlashCommandCreate{
	Name:        "status",
	Description: "📊 Show your score and Instagram username",
}

func StatusHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		stats, err := b.Ledger.Stats(ctx, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateLedgerError(e, err)
		}

		return utils.EH.CreateEphemeralEmbed(e, "📊 Your Status", utils.FormatStats(stats))
	}
}
