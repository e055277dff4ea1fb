package cli

import (
	"context"
	"log/slog"

	"github.com/offkai-bot/offkai/internal/orchestrator"
)

// noopCollaborator stands in for the Slack adapter when cfg.Slack is
// disabled (e.g. local testing of the command surface without a bot
// token), logging every call instead of performing it.
type noopCollaborator struct{}

var _ orchestrator.Collaborator = noopCollaborator{}

func (noopCollaborator) SendMessage(ctx context.Context, channelID int64, text string) error {
	slog.Info("collaborator disabled: send_message", "channel_id", channelID, "text", text)
	return nil
}

func (noopCollaborator) PinMessage(ctx context.Context, messageID int64) error {
	slog.Info("collaborator disabled: pin_message", "message_id", messageID)
	return nil
}

func (noopCollaborator) EditMessage(ctx context.Context, messageID int64, text string) error {
	slog.Info("collaborator disabled: edit_message", "message_id", messageID, "text", text)
	return nil
}

func (noopCollaborator) FetchThread(ctx context.Context, threadID int64) (orchestrator.Thread, error) {
	return orchestrator.Thread{ID: threadID}, nil
}

func (noopCollaborator) DMUser(ctx context.Context, userID int64, text string) error {
	slog.Info("collaborator disabled: dm_user", "user_id", userID, "text", text)
	return nil
}

func (noopCollaborator) AssignRole(ctx context.Context, guildID, userID, roleID int64) error {
	slog.Info("collaborator disabled: assign_role", "guild_id", guildID, "user_id", userID, "role_id", roleID)
	return nil
}

func (noopCollaborator) RemoveRole(ctx context.Context, guildID, userID, roleID int64) error {
	slog.Info("collaborator disabled: remove_role", "guild_id", guildID, "user_id", userID, "role_id", roleID)
	return nil
}

func (noopCollaborator) DeleteRole(ctx context.Context, guildID, roleID int64) error {
	slog.Info("collaborator disabled: delete_role", "guild_id", guildID, "role_id", roleID)
	return nil
}
