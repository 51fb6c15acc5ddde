package commands

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

var Done = discord.SlashCommandCreate{
	Name:        "done",
	Description: "✅ Confirm you liked a post from the queue",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "link_id",
			Description: "The link ID shown in /queue",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

// DoneHandler runs the like check. The browser takes several seconds, so the
// response is deferred and filled in once the ledger answers.
func DoneHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}

		linkID := int64(e.SlashCommandInteractionData().Int("link_id"))

		ctx, cancel := context.WithTimeout(context.Background(), b.Cfg.Verifier.Timeout())
		defer cancel()

		if err := b.Ledger.RequestVerification(ctx, e.User().ID.String(), linkID); err != nil {
			slog.Info("Like not credited",
				slog.String("type", "cmd"),
				slog.String("name", "done"),
				slog.String("user_name", e.User().Username),
				slog.Int64("link_id", linkID),
				slog.Any("error", err))
			return utils.EH.UpdateLedgerError(e, err)
		}

		return utils.EH.UpdateSuccess(e, "You liked this post! Score +1.")
	}
}
