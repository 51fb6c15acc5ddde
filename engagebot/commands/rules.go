package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

const rulesText = "1. Share only Instagram links.\n" +
	"2. Be respectful to others.\n" +
	"3. Follow the group guidelines.\n\n" +
	"Posting a link costs 1 point. Liking someone else's post and confirming it with `/done` earns 1 point."

var Rules = discord.SlashCommandCreate{
	Name:        "rules",
	Description: "📜 Show the group rules",
}

func RulesHandler(e *handler.CommandEvent) error {
	return utils.EH.CreateEphemeralEmbed(e, "📜 Rules", rulesText)
}
