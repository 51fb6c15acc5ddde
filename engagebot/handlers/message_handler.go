package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"

	"github.com/ellavondegurechaff/engagebot/engagebot"
	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/engagebot/utils"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

const (
	onlyInstagramMessage = "Only Instagram links are allowed!"
	linkSavedReply       = "✅ Link saved. Check your DMs!"
	cookieUploadTimeout  = 30 * time.Second
)

// MessageHandler listens to the group channel for link submissions and to
// direct messages for admin cookie uploads.
func MessageHandler(b *engagebot.Bot) bot.EventListener {
	return &events.ListenerAdapter{
		OnGuildMessageCreate: func(e *events.GuildMessageCreate) {
			if e.Message.Author.Bot || e.ChannelID != b.Cfg.Bot.GroupChannelID {
				return
			}
			handleGroupMessage(b, e.Message)
		},
		OnDMMessageCreate: func(e *events.DMMessageCreate) {
			if e.Message.Author.Bot {
				return
			}
			handleDirectMessage(b, e.Message)
		},
	}
}

func handleGroupMessage(b *engagebot.Bot, msg discord.Message) {
	author := msg.Author

	match, ok := b.LinkRule.Extract(msg.Content)
	if !ok {
		deleteMessage(b, msg)
		b.SendDM(author.ID, discord.MessageCreate{Content: onlyInstagramMessage})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	linkID, err := b.Ledger.SubmitLink(ctx, author.ID.String(), match.URL)
	if err != nil {
		_, message := utils.ClassifyLedgerError(err)
		if !ledger.IsTransient(err) {
			deleteMessage(b, msg)
		}
		slog.Info("Link submission rejected",
			slog.String("type", "cmd"),
			slog.String("name", "submit_link"),
			slog.String("user_name", author.Username),
			slog.String("status", "rejected"),
			slog.Any("error", err))
		b.SendDM(author.ID, discord.MessageCreate{Content: message})
		return
	}

	reply := discord.NewMessageCreateBuilder().
		SetContent(linkSavedReply).
		SetMessageReferenceByID(msg.ID).
		Build()
	if _, err := b.Client.Rest().CreateMessage(msg.ChannelID, reply); err != nil {
		slog.Warn("Couldn't reply to link submission",
			slog.String("type", "sys"),
			slog.String("channel_id", msg.ChannelID.String()),
			slog.Any("error", err))
	}

	b.SendDM(author.ID, discord.MessageCreate{
		Content:    fmt.Sprintf("✅ Your link was saved with ID `%d`. It costs 1 point; like others' posts and use `/done <id>` to earn more.", linkID),
		Components: groupLinkButton(b),
	})
}

func handleDirectMessage(b *engagebot.Bot, msg discord.Message) {
	author := msg.Author

	upload, ok := cookieAttachment(msg.Attachments)
	if !ok {
		b.SendDM(author.ID, discord.MessageCreate{
			Content:    "Post your Instagram links in the group and use the slash commands there. Run `/help` to get started.",
			Components: groupLinkButton(b),
		})
		return
	}

	if !b.IsAdmin(author.ID) {
		slog.Warn("Rejected cookie upload from non-admin",
			slog.String("type", "sys"),
			slog.String("user_id", author.ID.String()),
			slog.String("user_name", author.Username))
		b.SendDM(author.ID, discord.MessageCreate{Content: "⛔ Only bot admins can replace the session cookies."})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cookieUploadTimeout)
	defer cancel()

	count, err := replaceCookiesFromAttachment(ctx, b, upload)
	if err != nil {
		slog.Error("Cookie upload failed",
			slog.String("type", "sys"),
			slog.String("user_name", author.Username),
			slog.Any("error", err))
		b.SendDM(author.ID, discord.MessageCreate{Content: cookieUploadMessage(err)})
		return
	}

	slog.Info("Cookies replaced",
		slog.String("type", "sys"),
		slog.String("user_name", author.Username),
		slog.Int("cookies", count),
		slog.String("status", "success"))
	b.SendDM(author.ID, discord.MessageCreate{
		Content: fmt.Sprintf("✅ Cookies updated (%s). Like checks will use the new session.", utils.Plural(count, "cookie")),
	})
}

func cookieAttachment(attachments []discord.Attachment) (discord.Attachment, bool) {
	for _, a := range attachments {
		if strings.EqualFold(a.Filename, config.CookieUploadFilename) {
			return a, true
		}
	}
	return discord.Attachment{}, false
}

func replaceCookiesFromAttachment(ctx context.Context, b *engagebot.Bot, a discord.Attachment) (int, error) {
	if a.Size > config.MaxCookieUploadBytes {
		return 0, utils.ErrTooLarge
	}
	blob, err := utils.DownloadAttachment(ctx, a.URL, config.MaxCookieUploadBytes)
	if err != nil {
		return 0, err
	}
	return b.Verifier.ReplaceCookies(ctx, blob)
}

func cookieUploadMessage(err error) string {
	switch {
	case errors.Is(err, utils.ErrTooLarge):
		return fmt.Sprintf("❌ That file is too large. Cookie exports must be under %d KiB.", config.MaxCookieUploadBytes/1024)
	case errors.Is(err, services.ErrInvalidCookies):
		return "❌ That file is not a valid cookie export. Export your Instagram cookies as a JSON array and send it as `cookies.json`."
	default:
		return "❌ Couldn't save the cookies. Please try again later."
	}
}

func deleteMessage(b *engagebot.Bot, msg discord.Message) {
	if err := b.Client.Rest().DeleteMessage(msg.ChannelID, msg.ID); err != nil {
		slog.Warn("Couldn't delete group message",
			slog.String("type", "sys"),
			slog.String("message_id", msg.ID.String()),
			slog.Any("error", err))
	}
}

func groupLinkButton(b *engagebot.Bot) []discord.ContainerComponent {
	if b.Cfg.Bot.GroupLink == "" {
		return nil
	}
	return []discord.ContainerComponent{
		discord.NewActionRow(discord.NewLinkButton("Go to group", b.Cfg.Bot.GroupLink)),
	}
}
