package orchestrator

import (
	"fmt"
	"strings"

	"github.com/offkai-bot/offkai/internal/offkai"
)

// renderAnnouncement renders the event summary posted on creation and
// re-rendered into the pinned message on every subsequent state change
// (spec §4.7's "send event message" / "refresh pinned message").
func renderAnnouncement(e *offkai.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", e.Name)
	fmt.Fprintf(&b, "Venue: %s (%s)\n", e.Venue, e.Address)
	fmt.Fprintf(&b, "Starts: %s\n", e.StartTime.In(offkai.JST).Format("2006-01-02 15:04 JST"))
	if e.Deadline != nil {
		fmt.Fprintf(&b, "Registration deadline: %s\n", e.Deadline.In(offkai.JST).Format("2006-01-02 15:04 JST"))
	}
	if e.MaxCapacity != nil {
		fmt.Fprintf(&b, "Capacity: %d\n", *e.MaxCapacity)
	}
	switch {
	case e.Archived:
		b.WriteString("Status: archived\n")
	case !e.Open:
		b.WriteString("Status: closed\n")
	default:
		b.WriteString("Status: open\n")
	}
	return b.String()
}

func capacityReachedNotice(e *offkai.Event) string {
	return fmt.Sprintf("\"%s\" has reached its capacity of %d.", e.Name, *e.MaxCapacity)
}

func groupTooLargeNotice(e *offkai.Event) string {
	return fmt.Sprintf("Your party does not fit in the remaining space for \"%s\" — you have been placed on the waitlist.", e.Name)
}

func promotedNotice(e *offkai.Event) string {
	return fmt.Sprintf("A spot opened up for \"%s\" — you have been moved from the waitlist to confirmed.", e.Name)
}

func archivedNotice() string {
	return "This event has been archived and is now locked."
}
