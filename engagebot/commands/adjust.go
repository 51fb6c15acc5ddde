package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

var Adjust = discord.SlashCommandCreate{
	Name:        "adjust",
	Description: "🛠️ Admin: correct a member's spendable points",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Member to adjust",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "delta",
			Description: "Points to add (negative to remove)",
			Required:    true,
			MinValue:    utils.Ptr(-1000),
			MaxValue:    utils.Ptr(1000),
		},
	},
}

func AdjustHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreatePermissionError(e, "Only bot admins can adjust scores.")
		}

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		delta := data.Int("delta")

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		stats, err := b.Ledger.AdjustScore(ctx, target.ID.String(), delta)
		if err != nil {
			return utils.EH.CreateLedgerError(e, err)
		}

		slog.Info("Admin adjusted score",
			slog.String("type", "cmd"),
			slog.String("name", "adjust"),
			slog.String("user_name", e.User().Username),
			slog.String("target_id", target.ID.String()),
			slog.Int("delta", delta))

		return utils.EH.CreateEphemeralSuccess(e,
			fmt.Sprintf("%s now has %s to spend (%s total).",
				target.Mention(), utils.Plural(stats.SpendableScore, "point"), utils.Plural(stats.LifetimeScore, "point")))
	}
}
