package commands

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📖 Show the welcome message or help for one command",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "command",
			Description:  "Command to explain",
			Required:     false,
			Autocomplete: true,
		},
	},
}

type CommandInfo struct {
	Name  string
	Usage string
	About string
	Admin bool
}

var commandInfos = []CommandInfo{
	{Name: "username", Usage: "/username handle:<your_IG_username>", About: "Set your Instagram username. Required before posting or confirming likes."},
	{Name: "queue", Usage: "/queue", About: "Show the most recent links from other members that you can like."},
	{Name: "done", Usage: "/done link_id:<id>", About: "Confirm you liked a post from the queue. The bot checks Instagram and credits 1 point."},
	{Name: "status", Usage: "/status", About: "Show your spendable score, total score and username."},
	{Name: "leaderboard", Usage: "/leaderboard", About: "See the top sharers by total score."},
	{Name: "rules", Usage: "/rules", About: "Show the group rules."},
	{Name: "help", Usage: "/help [command]", About: "Show the welcome message, or details for one command."},
	{Name: "version", Usage: "/version", About: "Show the running bot version."},
	{Name: "adjust", Usage: "/adjust user:<member> delta:<points>", About: "Correct a member's spendable points.", Admin: true},
}

// commandSource lets fuzzy match against command names.
type commandSource []CommandInfo

func (s commandSource) String(i int) string { return s[i].Name }
func (s commandSource) Len() int            { return len(s) }

// FindCommands returns the commands matching query, best match first.
func FindCommands(query string) []CommandInfo {
	query = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(query)), "/")
	if query == "" {
		return commandInfos
	}

	matches := fuzzy.FindFrom(query, commandSource(commandInfos))
	found := make([]CommandInfo, 0, len(matches))
	for _, m := range matches {
		found = append(found, commandInfos[m.Index])
	}
	return found
}

func HelpHandler(b *engagebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query, ok := e.SlashCommandInteractionData().OptString("command")
		if !ok || strings.TrimSpace(query) == "" {
			return e.CreateMessage(discord.MessageCreate{
				Embeds:     []discord.Embed{welcomeEmbed()},
				Components: groupLinkRow(b),
				Flags:      discord.MessageFlagEphemeral,
			})
		}

		found := FindCommands(query)
		if len(found) == 0 {
			return utils.EH.CreateUserError(e, fmt.Sprintf("No command matches '%s'. Run `/help` to see them all.", query))
		}

		cmd := found[0]
		about := fmt.Sprintf("**Usage:** `%s`\n\n%s", cmd.Usage, cmd.About)
		if cmd.Admin {
			about += "\n\n🛠️ Admins only."
		}
		return utils.EH.CreateEphemeralEmbed(e, "/"+cmd.Name, about)
	}
}

func HelpAutocomplete(e *handler.AutocompleteEvent) error {
	found := FindCommands(e.Data.String("command"))
	choices := make([]discord.AutocompleteChoice, 0, min(len(found), 25))
	for _, cmd := range found {
		if len(choices) == 25 {
			break
		}
		choices = append(choices, discord.AutocompleteChoiceString{
			Name:  cmd.Name,
			Value: cmd.Name,
		})
	}
	return e.AutocompleteResult(choices)
}

func welcomeEmbed() discord.Embed {
	var sb strings.Builder
	sb.WriteString("📋 Available commands:\n")
	for _, cmd := range commandInfos {
		if cmd.Admin {
			continue
		}
		fmt.Fprintf(&sb, "• `%s`\n", cmd.Usage)
	}
	sb.WriteString("\nPost your Instagram links in the group channel. Each link costs 1 point; liking others' posts earns points back.\n\n")
	sb.WriteString("💡 Tip: Share links, engage with others, and climb the leaderboard!")

	return discord.Embed{
		Title:       "🌟 Welcome to EngageBot! 🌟",
		Description: sb.String(),
		Color:       config.EmbedDefaultColor,
		Footer:      &discord.EmbedFooter{Text: "Use /help command:<name> for details"},
	}
}

func groupLinkRow(b *engagebot.Bot) []discord.ContainerComponent {
	if b.Cfg.Bot.GroupLink == "" {
		return nil
	}
	return []discord.ContainerComponent{
		discord.NewActionRow(discord.NewLinkButton("🔗 Join Group", b.Cfg.Bot.GroupLink)),
	}
}
