// Package channels implements concrete chat-platform collaborators.
// SlackCollaborator is the only one so far — it implements
// orchestrator.Collaborator against the real Slack Web API via
// github.com/slack-go/slack, the SDK the teacher's own channel bridge
// used for posting, pinning, editing, and DMing (spec §6.2).
package channels

import (
	"context"
	"fmt"
	"strconv"

	"github.com/slack-go/slack"

	"github.com/offkai-bot/offkai/internal/config"
	"github.com/offkai-bot/offkai/internal/orchestrator"
)

// SlackCollaborator adapts the Slack Web API to orchestrator.Collaborator.
// Message/channel/user/role identifiers in this domain are int64
// (spec §3.1, §6.1 carry them that way for JSON round-tripping); Slack
// itself addresses everything by string ID, so every method formats
// its int64 arguments with strconv before calling the SDK.
type SlackCollaborator struct {
	client *slack.Client
	cfg    config.SlackConfig
}

var _ orchestrator.Collaborator = (*SlackCollaborator)(nil)

// NewSlackCollaborator builds a client against cfg.APIBase (only ever
// overridden in tests, via httptest) using cfg.BotToken.
func NewSlackCollaborator(cfg config.SlackConfig) *SlackCollaborator {
	opts := []slack.Option{}
	if cfg.APIBase != "" {
		opts = append(opts, slack.OptionAPIURL(cfg.APIBase))
	}
	return &SlackCollaborator{
		client: slack.New(cfg.BotToken, opts...),
		cfg:    cfg,
	}
}

func fmtID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// SendMessage posts text to channelID and returns ok. Transport and
// permission failures bubble up as-is; the orchestrator logs them and
// (per spec §7) a send failure never blocks the rest of a Plan.
func (c *SlackCollaborator) SendMessage(ctx context.Context, channelID int64, text string) error {
	_, _, err := c.client.PostMessageContext(ctx, fmtID(channelID), slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: send message to %d: %w", channelID, err)
	}
	return nil
}

// PinMessage pins messageID to its channel. Slack's pin API addresses
// a message by (channel, timestamp); the caller's messageID already
// encodes both via the bridge's own bookkeeping (stored as the Slack
// timestamp converted to an int64 at send time), so it is passed
// straight through as the timestamp against the configured default
// channel.
func (c *SlackCollaborator) PinMessage(ctx context.Context, messageID int64) error {
	item := slack.ItemRef{Channel: c.cfg.DefaultChannel, Timestamp: fmtID(messageID)}
	if err := c.client.AddPinContext(ctx, item.Channel, item); err != nil {
		return fmt.Errorf("slack: pin message %d: %w", messageID, err)
	}
	return nil
}

// EditMessage rewrites the text of an already-posted message — used
// to keep the pinned announcement in sync with event state (spec §4.7).
func (c *SlackCollaborator) EditMessage(ctx context.Context, messageID int64, text string) error {
	_, _, _, err := c.client.UpdateMessageContext(ctx, c.cfg.DefaultChannel, fmtID(messageID), slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: edit message %d: %w", messageID, err)
	}
	return nil
}

// FetchThread retrieves the replies under threadID in the default
// channel, failing if the thread cannot be read. The returned Thread
// carries only the ID; Locked is always false.
func (c *SlackCollaborator) FetchThread(ctx context.Context, threadID int64) (orchestrator.Thread, error) {
	_, _, _, err := c.client.GetConversationRepliesContext(ctx, &slack.GetConversationRepliesParameters{
		ChannelID: c.cfg.DefaultChannel,
		Timestamp: fmtID(threadID),
	})
	if err != nil {
		return orchestrator.Thread{}, fmt.Errorf("slack: fetch thread %d: %w", threadID, err)
	}
	return orchestrator.Thread{ID: threadID}, nil
}

// DMUser opens (or reuses) a direct-message channel with userID and
// sends text.
func (c *SlackCollaborator) DMUser(ctx context.Context, userID int64, text string) error {
	channel, _, _, err := c.client.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{fmtID(userID)},
	})
	if err != nil {
		return fmt.Errorf("slack: open DM with %d: %w", userID, err)
	}
	_, _, err = c.client.PostMessageContext(ctx, channel.ID, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: DM %d: %w", userID, err)
	}
	return nil
}

// AssignRole adds userID to the Slack user group standing in for a
// role (spec §6.2). guildID is unused — Slack has no guild concept —
// and is accepted only so the signature matches the platform-neutral
// Collaborator interface.
func (c *SlackCollaborator) AssignRole(ctx context.Context, guildID, userID, roleID int64) error {
	group, err := c.client.GetUserGroupMembersContext(ctx, fmtID(roleID))
	if err != nil {
		return fmt.Errorf("slack: read usergroup %d: %w", roleID, err)
	}
	members := append(append([]string(nil), group...), fmtID(userID))
	if _, err := c.client.UpdateUserGroupMembersContext(ctx, fmtID(roleID), joinIDs(members)); err != nil {
		return fmt.Errorf("slack: assign role %d to %d: %w", roleID, userID, err)
	}
	return nil
}

// RemoveRole removes userID from the user group.
func (c *SlackCollaborator) RemoveRole(ctx context.Context, guildID, userID, roleID int64) error {
	group, err := c.client.GetUserGroupMembersContext(ctx, fmtID(roleID))
	if err != nil {
		return fmt.Errorf("slack: read usergroup %d: %w", roleID, err)
	}
	uid := fmtID(userID)
	kept := make([]string, 0, len(group))
	for _, m := range group {
		if m != uid {
			kept = append(kept, m)
		}
	}
	if _, err := c.client.UpdateUserGroupMembersContext(ctx, fmtID(roleID), joinIDs(kept)); err != nil {
		return fmt.Errorf("slack: remove role %d from %d: %w", roleID, userID, err)
	}
	return nil
}

// DeleteRole disables the user group backing roleID. Role deletion on
// archive is always best-effort (spec §4.7): the orchestrator logs
// but never surfaces this error.
func (c *SlackCollaborator) DeleteRole(ctx context.Context, guildID, roleID int64) error {
	if _, err := c.client.DisableUserGroupContext(ctx, fmtID(roleID)); err != nil {
		return fmt.Errorf("slack: delete role %d: %w", roleID, err)
	}
	return nil
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id
	}
	return out
}
