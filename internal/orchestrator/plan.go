package orchestrator

import (
	"context"
	"log/slog"
)

// ActionKind identifies which Collaborator method an Action dispatches
// to. The orchestrator's commands never perform I/O under the store
// lock; they append Actions to a Plan that is dispatched after the
// lock is released (spec §5: "the orchestrator computes a plan,
// releases the lock, then performs I/O"). The reminder Sink method
// Orchestrator.SendMessage is the exception: it calls the
// Collaborator directly, without a Plan.
type ActionKind int

const (
	ActionSendMessage ActionKind = iota
	ActionPinMessage
	ActionEditMessage
	ActionDMUser
	ActionAssignRole
	ActionRemoveRole
	ActionDeleteRole
)

// Action is one queued side effect.
type Action struct {
	Kind      ActionKind
	ChannelID int64
	MessageID int64
	UserID    int64
	GuildID   int64
	RoleID    int64
	Text      string
}

// Plan is the ordered set of side effects one command produced.
type Plan []Action

// Dispatch runs every action in plan against c, outside any lock. Per
// spec §7's error-handling table, a pin_message failure is surfaced to
// the caller (it is how organizers learn the pinned announcement is
// stale); every other action failure is logged and otherwise
// swallowed so that one bad DM or role call does not abort the rest of
// the plan. Role deletion failures in particular are always
// best-effort (spec §4.7 "archive").
func Dispatch(ctx context.Context, c Collaborator, plan Plan) error {
	var surfaced error
	for _, a := range plan {
		if err := run(ctx, c, a); err != nil {
			slog.Error("orchestrator: side effect failed", "kind", a.Kind, "error", err)
			if a.Kind == ActionPinMessage && surfaced == nil {
				surfaced = err
			}
		}
	}
	return surfaced
}

func run(ctx context.Context, c Collaborator, a Action) error {
	switch a.Kind {
	case ActionSendMessage:
		return c.SendMessage(ctx, a.ChannelID, a.Text)
	case ActionPinMessage:
		return c.PinMessage(ctx, a.MessageID)
	case ActionEditMessage:
		return c.EditMessage(ctx, a.MessageID, a.Text)
	case ActionDMUser:
		return c.DMUser(ctx, a.UserID, a.Text)
	case ActionAssignRole:
		return c.AssignRole(ctx, a.GuildID, a.UserID, a.RoleID)
	case ActionRemoveRole:
		return c.RemoveRole(ctx, a.GuildID, a.UserID, a.RoleID)
	case ActionDeleteRole:
		return c.DeleteRole(ctx, a.GuildID, a.RoleID)
	default:
		return nil
	}
}
