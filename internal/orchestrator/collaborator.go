// Package orchestrator implements the event-action orchestrator (C7):
// it composes the registration engine, the promotion/admission engine,
// the persistence layer, and the alert scheduler into one command per
// organizer action, and turns each action's side effects into a Plan
// that is executed against a chat-platform Collaborator after the
// coordinator's lock has been released (spec §4.7, §5).
package orchestrator

import "context"

// Thread is the minimal shape the orchestrator needs back from
// fetching a chat thread (spec §6.2).
type Thread struct {
	ID     int64
	Locked bool
}

// Collaborator is every external chat-platform service the
// orchestrator depends on (spec §6.2). Implementations talk to a
// concrete platform (internal/channels implements it for Slack); tests
// use an in-memory fake.
type Collaborator interface {
	SendMessage(ctx context.Context, channelID int64, text string) error
	PinMessage(ctx context.Context, messageID int64) error
	EditMessage(ctx context.Context, messageID int64, text string) error
	FetchThread(ctx context.Context, threadID int64) (Thread, error)
	DMUser(ctx context.Context, userID int64, text string) error
	AssignRole(ctx context.Context, guildID, userID, roleID int64) error
	RemoveRole(ctx context.Context, guildID, userID, roleID int64) error
	DeleteRole(ctx context.Context, guildID, roleID int64) error
}
