package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

var Username = discord.SlashCommandCreate{
	Name:        "username",
	Description: "👤 Set your Instagram username",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "handle",
			Description: "Your Instagram username, e.g. ironman",
			Required:    true,
			MaxLength:   utils.Ptr(30),
		},
	},
}

func UsernameHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		handle := e.SlashCommandInteractionData().String("handle")
		if err := b.Ledger.RegisterHandle(ctx, e.User().ID.String(), handle); err != nil {
			return utils.EH.CreateLedgerError(e, err)
		}

		return utils.EH.CreateEphemeralSuccess(e,
			fmt.Sprintf("Your Instagram username (%s) has been saved!", ledger.NormalizeHandle(handle)))
	}
}
