package utils

import (
	"errors"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/engagebot/engagebot/config"
	"github.com/ellavondegurechaff/engagebot/engagebot/services"
	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

// ResponseHandler provides standardized response methods for commands and components
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - User input issues, validation failures, parameter problems
	UserError ErrorType = iota
	// SystemError - Database failures, browser failures, internal errors
	SystemError
	// NotFoundError - Requested resources don't exist
	NotFoundError
	// PermissionError - Unauthorized actions, access denied
	PermissionError
	// BusinessLogicError - Score gate, duplicate likes, ledger rule violations
	BusinessLogicError
)

const retryHint = " Please try again later."

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "❌"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// ClassifyLedgerError maps a ledger error to its category and the message
// shown to the member. Transient failures carry a retry hint.
func ClassifyLedgerError(err error) (ErrorType, string) {
	switch {
	case errors.Is(err, ledger.ErrHandleRequired):
		return UserError, "You need to set your Instagram username first. Use `/username <your_username>`."
	case errors.Is(err, ledger.ErrInvalidHandle):
		return UserError, "Please provide a valid Instagram username (e.g. `/username ironman`)."
	case errors.Is(err, ledger.ErrInsufficientScore):
		return BusinessLogicError, "You can't add a link yet! Engage with others' posts, earn points, and then post again."
	case errors.Is(err, ledger.ErrLinkNotFound):
		return NotFoundError, "There is no link with that ID. Check `/queue` for current links."
	case errors.Is(err, ledger.ErrOwnLink):
		return BusinessLogicError, "That's your own link. Like someone else's post to earn points."
	case errors.Is(err, ledger.ErrAlreadyLiked):
		return BusinessLogicError, "You already got a point for this post."
	case errors.Is(err, ledger.ErrNotLiked):
		return BusinessLogicError, "You have not liked this post yet. Like it on Instagram, then run `/done` again."
	case errors.Is(err, services.ErrNoCookies), errors.Is(err, services.ErrInvalidCookies):
		return SystemError, "Like checks are not set up yet. An admin needs to upload fresh session cookies." + retryHint
	case errors.Is(err, ledger.ErrVerificationUnavailable):
		return SystemError, "Couldn't check Instagram right now." + retryHint
	case errors.Is(err, ledger.ErrStorageUnavailable):
		return SystemError, "The points database is unavailable." + retryHint
	default:
		return SystemError, "Something went wrong." + retryHint
	}
}

func errorEmbed(errorType ErrorType, message string) discord.Embed {
	return discord.Embed{
		Description: getErrorPrefix(errorType) + " " + message,
		Color:       getErrorColor(errorType),
	}
}

// CreateClassifiedError sends an ephemeral error embed.
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{errorEmbed(errorType, message)},
		Flags:  discord.MessageFlagEphemeral,
	})
}

// CreateUserError creates an error response for user input issues
func (h *ResponseHandler) CreateUserError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, UserError, message)
}

// CreatePermissionError creates an error response for unauthorized actions
func (h *ResponseHandler) CreatePermissionError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, PermissionError, message)
}

// CreateLedgerError answers a not-yet-acknowledged command with the message
// for err.
func (h *ResponseHandler) CreateLedgerError(event *handler.CommandEvent, err error) error {
	errorType, message := ClassifyLedgerError(err)
	return h.CreateClassifiedError(event, errorType, message)
}

// UpdateLedgerError fills in a deferred response with the message for err.
func (h *ResponseHandler) UpdateLedgerError(event *handler.CommandEvent, err error) error {
	errorType, message := ClassifyLedgerError(err)
	_, updateErr := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{errorEmbed(errorType, message)},
	})
	return updateErr
}

func (h *ResponseHandler) CreateEphemeralSuccess(event *handler.CommandEvent, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Description: "✅ " + message,
			Color:       config.SuccessColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

func (h *ResponseHandler) UpdateSuccess(event *handler.CommandEvent, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Description: "✅ " + message,
			Color:       config.SuccessColor,
		}},
	})
	return err
}

// CreateEphemeralEmbed sends a titled info embed only the invoking member sees.
func (h *ResponseHandler) CreateEphemeralEmbed(event *handler.CommandEvent, title, description string, components ...discord.ContainerComponent) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: description,
			Color:       config.EmbedDefaultColor,
		}},
		Components: components,
		Flags:      discord.MessageFlagEphemeral,
	})
}

// CreateEphemeralError creates an ephemeral error message for component events
func (h *ResponseHandler) CreateEphemeralError(event *handler.ComponentEvent, err error) error {
	errorType, message := ClassifyLedgerError(err)
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{errorEmbed(errorType, message)},
		Flags:  discord.MessageFlagEphemeral,
	})
}
