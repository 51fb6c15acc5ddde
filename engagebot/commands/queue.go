package commands

import (
	"context"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

const queueRefreshID = "/queue/refresh"

var Queue = discord.SlashCommandCreate{
	Name:        "queue",
	Description: "📋 Show the most recent links you can like",
}

func QueueHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		embed, err := queueEmbed(ctx, b, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateLedgerError(e, err)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds:     []discord.Embed{embed},
			Components: queueComponents(),
			Flags:      discord.MessageFlagEphemeral,
		})
	}
}

// QueueRefreshHandler redraws the queue in place.
func QueueRefreshHandler(b *engagebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		embed, err := queueEmbed(ctx, b, e.User().ID.String())
		if err != nil {
			return utils.EH.CreateEphemeralError(e, err)
		}

		return e.UpdateMessage(discord.MessageUpdate{
			Embeds:     &[]discord.Embed{embed},
			Components: utils.Ptr(queueComponents()),
		})
	}
}

func queueEmbed(ctx context.Context, b *engagebot.Bot, userID string) (discord.Embed, error) {
	links, err := b.Ledger.Queue(ctx, userID, b.Cfg.Ledger.QueueLimit)
	if err != nil {
		return discord.Embed{}, err
	}
	return discord.Embed{
		Title:       "📋 Recent Instagram Links",
		Description: utils.FormatQueue(links),
		Color:       config.EmbedDefaultColor,
	}, nil
}

func queueComponents() []discord.ContainerComponent {
	return []discord.ContainerComponent{
		discord.NewActionRow(discord.NewSecondaryButton("🔄 Refresh", queueRefreshID)),
	}
}
