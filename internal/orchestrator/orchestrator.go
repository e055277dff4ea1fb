package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/offkai-bot/offkai/internal/alerts"
	"github.com/offkai-bot/offkai/internal/bus"
	"github.com/offkai-bot/offkai/internal/clock"
	"github.com/offkai-bot/offkai/internal/offkai"
	"github.com/offkai-bot/offkai/internal/store"
)

// Orchestrator composes the registration engine, the persistence
// coordinator, and the alert scheduler into one command per organizer
// action (spec §4.7, component C7).
type Orchestrator struct {
	store     *store.Coordinator
	scheduler *alerts.Scheduler
	collab    Collaborator
	clock     clock.Clock
	notify    *bus.Bus
}

// New returns an Orchestrator wired to the given collaborators.
func New(s *store.Coordinator, sch *alerts.Scheduler, collab Collaborator, c clock.Clock) *Orchestrator {
	if c == nil {
		c = clock.Real{}
	}
	return &Orchestrator{store: s, scheduler: sch, collab: collab, clock: c, notify: bus.New()}
}

// Notifications returns the bus every dispatched Action is fanned out
// onto, for observers such as the audit trail to subscribe to.
func (o *Orchestrator) Notifications() *bus.Bus {
	return o.notify
}

// CreateRequest carries the fields needed to instantiate a new event.
type CreateRequest struct {
	Name        string
	Venue       string
	Address     string
	MapsLink    string
	StartTime   time.Time
	Deadline    *time.Time
	Drinks      []string
	MaxCapacity *int
	CreatorID   *int64
	ChannelID   *int64
	PingRoleID  *int64
}

// Create validates and instantiates a new event, registers its
// reminder tasks, and emits the "send event message" side effect
// (spec §4.7).
func (o *Orchestrator) Create(ctx context.Context, req CreateRequest) (*offkai.Event, error) {
	now := o.clock.Now()
	if !req.StartTime.After(now) {
		return nil, &offkai.EventError{Event: req.Name, Kind: offkai.ErrDateTimeInPast}
	}
	if req.Deadline != nil {
		if !req.Deadline.After(now) {
			return nil, &offkai.EventError{Event: req.Name, Kind: offkai.ErrDeadlineInPast}
		}
		if !req.Deadline.Before(req.StartTime) {
			return nil, &offkai.EventError{Event: req.Name, Kind: offkai.ErrDeadlineAfterEvent}
		}
	}

	e := &offkai.Event{
		Name:        req.Name,
		Venue:       req.Venue,
		Address:     req.Address,
		MapsLink:    req.MapsLink,
		StartTime:   req.StartTime,
		Deadline:    req.Deadline,
		Drinks:      append([]string(nil), req.Drinks...),
		MaxCapacity: req.MaxCapacity,
		CreatorID:   req.CreatorID,
		ChannelID:   req.ChannelID,
		Open:        true,
		PingRoleID:  req.PingRoleID,
	}

	var created *offkai.Event
	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		added, aerr := events.Add(e)
		if aerr != nil {
			return aerr
		}
		created = added
		return nil
	})
	if err != nil {
		return nil, err
	}

	alerts.RegisterReminders(o.scheduler, created, o)

	var plan Plan
	if created.ChannelID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *created.ChannelID, Text: renderAnnouncement(created)})
	}
	if derr := o.dispatch(ctx, created.Name, plan); derr != nil {
		return created, derr
	}
	return created, nil
}

// ModifyRequest is the mutable-field patch for Modify (mirrors
// offkai.EventPatch).
type ModifyRequest = offkai.EventPatch

// Modify applies patch to name, persists it, and — if capacity was
// raised — runs promotion (spec §4.7). If the deadline changed, fresh
// reminder tasks are registered; stale tasks from the old deadline are
// left in the scheduler (it has no per-event cancellation) but are
// harmless no-ops once they fire, because AutoClose is idempotent
// against an already-closed event.
func (o *Orchestrator) Modify(ctx context.Context, name string, patch offkai.EventPatch) (*offkai.Event, error) {
	var updated *offkai.Event
	var promoted []*offkai.WaitlistEntry
	deadlineChanged := patch.Deadline != nil

	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		before, gerr := events.Get(name)
		if gerr != nil {
			return gerr
		}
		prevCap := before.MaxCapacity

		next, uerr := events.Update(name, patch, regs)
		if uerr != nil {
			return uerr
		}
		updated = next

		capacityIncreased := next.MaxCapacity != nil && (prevCap == nil || *next.MaxCapacity > *prevCap)
		if capacityIncreased {
			promoted = offkai.Promote(name, next, regs, offkai.TriggerCapacityIncrease)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if deadlineChanged {
		alerts.RegisterReminders(o.scheduler, updated, o)
	}

	plan := o.promotionPlan(updated, promoted)
	if derr := o.dispatch(ctx, updated.Name, plan); derr != nil {
		return updated, derr
	}
	return updated, nil
}

// Close delegates to the event store, refreshes the pinned message,
// and optionally posts message to the event's thread (spec §4.7).
func (o *Orchestrator) Close(ctx context.Context, name, message string) (*offkai.Event, error) {
	e, err := o.transitionOpen(ctx, name, false, message)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Reopen mirrors Close and additionally runs promotion, since capacity
// may now exceed the former closed_attendance_count (spec §4.7).
func (o *Orchestrator) Reopen(ctx context.Context, name, message string) (*offkai.Event, error) {
	var updated *offkai.Event
	var promoted []*offkai.WaitlistEntry

	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		next, serr := events.SetOpenStatus(name, true, regs)
		if serr != nil {
			return serr
		}
		updated = next
		promoted = offkai.Promote(name, next, regs, offkai.TriggerReopen)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan := o.promotionPlan(updated, promoted)
	if updated.MessageID != nil {
		plan = append(plan, Action{Kind: ActionEditMessage, MessageID: *updated.MessageID, Text: renderAnnouncement(updated)})
	}
	if message != "" && updated.ThreadID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *updated.ThreadID, Text: message})
	}
	if derr := o.dispatch(ctx, updated.Name, plan); derr != nil {
		return updated, derr
	}
	return updated, nil
}

// AutoClose is registered with the alert scheduler as the Δ=0 task
// (spec §4.6) and also serves as the scheduler Sink. It re-enters the
// close flow under the store's lock, exactly like an organizer-issued
// close.
func (o *Orchestrator) AutoClose(eventName, message string) error {
	_, err := o.transitionOpen(context.Background(), eventName, false, message)
	if err != nil && (errors.Is(err, offkai.ErrAlreadyClosed) || errors.Is(err, offkai.ErrArchived) || errors.Is(err, offkai.ErrNotFound)) {
		// A stale reminder firing after the event was already closed,
		// archived, or deleted elsewhere is not an error worth surfacing.
		return nil
	}
	return err
}

// SendMessage implements alerts.Sink for the non-zero reminder offsets.
func (o *Orchestrator) SendMessage(channelID int64, text string) error {
	return o.collab.SendMessage(context.Background(), channelID, text)
}

func (o *Orchestrator) transitionOpen(ctx context.Context, name string, open bool, message string) (*offkai.Event, error) {
	var updated *offkai.Event
	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		next, serr := events.SetOpenStatus(name, open, regs)
		if serr != nil {
			return serr
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	var plan Plan
	if updated.MessageID != nil {
		plan = append(plan, Action{Kind: ActionEditMessage, MessageID: *updated.MessageID, Text: renderAnnouncement(updated)})
	}
	if message != "" && updated.ThreadID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *updated.ThreadID, Text: message})
	}
	if derr := o.dispatch(ctx, updated.Name, plan); derr != nil {
		return updated, derr
	}
	return updated, nil
}

// Archive transitions the event to archived, posts an archived notice
// to its thread, and best-effort deletes its associated role — a
// failure there does not block archival (spec §4.7). The thread itself
// is not edited or locked on the chat platform.
func (o *Orchestrator) Archive(ctx context.Context, name string) (*offkai.Event, error) {
	var updated *offkai.Event
	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		next, aerr := events.Archive(name)
		if aerr != nil {
			return aerr
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	var plan Plan
	if updated.ThreadID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *updated.ThreadID, Text: archivedNotice()})
	}
	if updated.RoleID != nil {
		guild := int64(0)
		plan = append(plan, Action{Kind: ActionDeleteRole, GuildID: guild, RoleID: *updated.RoleID})
	}
	// Archival itself already committed; role-deletion/thread-notice
	// failures are logged by Dispatch and never surfaced here.
	_ = o.dispatch(ctx, updated.Name, plan)
	return updated, nil
}

// RegisterRequest carries the fields needed to join an event, either
// confirmed or waitlisted (spec §4.4).
type RegisterRequest struct {
	EventName         string
	UserID            int64
	Username          string
	DisplayName       string
	ExtraPeople       int
	ExtrasNames       []string
	BehaviorConfirmed bool
	ArrivalConfirmed  bool
	Drinks            []string
}

// Register runs the admission decision (C4) for a prospective
// registration, placing it in the confirmed list or the waitlist, and
// emits the one-shot "capacity reached" notification on the exact
// equality transition (spec §4.4).
func (o *Orchestrator) Register(ctx context.Context, req RegisterRequest) (*offkai.Registration, offkai.Decision, error) {
	reg := &offkai.Registration{
		UserID:            req.UserID,
		Username:          req.Username,
		DisplayName:       req.DisplayName,
		ExtraPeople:       req.ExtraPeople,
		ExtrasNames:       append([]string(nil), req.ExtrasNames...),
		BehaviorConfirmed: req.BehaviorConfirmed,
		ArrivalConfirmed:  req.ArrivalConfirmed,
		Drinks:            append([]string(nil), req.Drinks...),
		Timestamp:         o.clock.Now(),
	}

	var decision offkai.Decision
	var event *offkai.Event
	var reachedCapacity, groupTooLarge bool

	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		e, gerr := events.Get(req.EventName)
		if gerr != nil {
			return gerr
		}
		if verr := reg.Validate(e.HasDrinks()); verr != nil {
			return verr
		}

		headCount := regs.HeadCount(req.EventName)
		decision = offkai.Admit(e, headCount, reg.PartySize(), o.clock.Now())
		groupTooLarge = decision == offkai.DecisionWaitlistGroupTooLarge
		event = e

		if decision == offkai.DecisionConfirm {
			// Only a successful confirm can have brought head_count to
			// max_capacity (spec §4.4) — a blocked admission never
			// changes head_count, so the notice must not fire for it.
			reachedCapacity = offkai.ReachesCapacity(e, headCount, reg.PartySize())
			return regs.AddConfirmed(req.EventName, reg)
		}
		return regs.AddWaitlist(req.EventName, reg)
	})
	if err != nil {
		return nil, 0, err
	}

	var plan Plan
	if reachedCapacity && event.ChannelID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *event.ChannelID, Text: capacityReachedNotice(event)})
	}
	if groupTooLarge {
		plan = append(plan, Action{Kind: ActionDMUser, UserID: req.UserID, Text: groupTooLargeNotice(event)})
	}
	if derr := o.dispatch(ctx, req.EventName, plan); derr != nil {
		return reg, decision, derr
	}
	return reg, decision, nil
}

// WithdrawConfirmed removes a confirmed registrant, runs promotion,
// and notifies every user promoted as a result (spec §4.7).
func (o *Orchestrator) WithdrawConfirmed(ctx context.Context, eventName string, userID int64) error {
	var event *offkai.Event
	var promoted []*offkai.WaitlistEntry

	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		if _, rerr := regs.RemoveConfirmed(eventName, userID); rerr != nil {
			return rerr
		}
		e, gerr := events.Get(eventName)
		if gerr != nil {
			return gerr
		}
		event = e
		promoted = offkai.Promote(eventName, e, regs, offkai.TriggerWithdrawal)
		return nil
	})
	if err != nil {
		return err
	}

	plan := o.promotionPlan(event, promoted)
	return o.dispatch(ctx, eventName, plan)
}

// WithdrawWaitlisted removes a waitlisted registrant. No capacity was
// freed, so no promotion runs (spec §4.7).
func (o *Orchestrator) WithdrawWaitlisted(ctx context.Context, eventName string, userID int64) error {
	return o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		_, err := regs.RemoveWaitlist(eventName, userID)
		return err
	})
}

// PromoteManual is the organizer-initiated promotion that bypasses
// capacity and closed_attendance_count (spec §4.5, §4.7).
func (o *Orchestrator) PromoteManual(ctx context.Context, eventName string, userID int64) error {
	var event *offkai.Event
	var entry *offkai.WaitlistEntry

	err := o.store.Mutate(func(events *offkai.EventStore, regs *offkai.RegistrationStore) error {
		e, gerr := events.Get(eventName)
		if gerr != nil {
			return gerr
		}
		popped, perr := regs.PromoteSpecific(eventName, userID)
		if perr != nil {
			return perr
		}
		regs.PushConfirmed(eventName, popped)
		event = e
		entry = popped
		return nil
	})
	if err != nil {
		return err
	}

	plan := o.promotionPlan(event, []*offkai.WaitlistEntry{entry})
	return o.dispatch(ctx, eventName, plan)
}

// Broadcast sends text to an event's channel (spec_full §8.3,
// supplemented from original_source's single channel.send(message)
// in src/offkai_bot/main.py and cogs/events.py).
func (o *Orchestrator) Broadcast(ctx context.Context, eventName, text string) error {
	var event *offkai.Event
	o.store.View(func(events *offkai.EventStore, regs *offkai.RegistrationStore) {
		event, _ = events.Get(eventName)
	})
	if event == nil {
		return &offkai.EventError{Event: eventName, Kind: offkai.ErrNotFound}
	}

	var plan Plan
	if event.ChannelID != nil {
		plan = append(plan, Action{Kind: ActionSendMessage, ChannelID: *event.ChannelID, Text: text})
	}
	return o.dispatch(ctx, eventName, plan)
}

// dispatch runs plan against the collaborator and fans every action
// out onto the notification bus for observers (spec §5: "the
// orchestrator computes a plan, releases the lock, then performs I/O").
// Every call gets its own correlation ID, stamped onto each published
// Notification, so an observer such as the audit trail (spec_full
// §8.2) can group a batch of side effects back to the command that
// produced them.
func (o *Orchestrator) dispatch(ctx context.Context, eventName string, plan Plan) error {
	traceID := uuid.NewString()
	err := Dispatch(ctx, o.collab, plan)
	for _, a := range plan {
		o.notify.Publish(bus.Notification{
			TraceID:   traceID,
			EventName: eventName,
			Kind:      int(a.Kind),
			ChannelID: a.ChannelID,
			MessageID: a.MessageID,
			UserID:    a.UserID,
			GuildID:   a.GuildID,
			RoleID:    a.RoleID,
			Text:      a.Text,
		})
	}
	return err
}

// promotionPlan builds the pinned-message refresh and one DM per
// promoted user, shared by withdraw/reopen/manual-promote/modify.
func (o *Orchestrator) promotionPlan(event *offkai.Event, promoted []*offkai.WaitlistEntry) Plan {
	var plan Plan
	for _, p := range promoted {
		plan = append(plan, Action{Kind: ActionDMUser, UserID: p.UserID, Text: promotedNotice(event)})
	}
	if event.MessageID != nil {
		plan = append(plan, Action{Kind: ActionEditMessage, MessageID: *event.MessageID, Text: renderAnnouncement(event)})
	}
	return plan
}
