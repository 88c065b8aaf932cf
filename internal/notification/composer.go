package notification

import (
	"fmt"
	"strings"

	"go-vacation/internal/events"
	"go-vacation/internal/shared/dateutil"
)

// Compose renders the mail for a leave notification. ok is false when the
// event has nobody to notify.
func Compose(e events.LeaveNotificationEvent) (msg Message, ok bool) {
	name, email := e.Recipient()
	if email == "" {
		return Message{}, false
	}
	period := fmt.Sprintf("%s to %s", displayDate(e.StartDate), displayDate(e.EndDate))

	switch e.EventType {
	case events.LeaveSubmitted:
		return Message{
			To:      email,
			ToName:  name,
			Subject: fmt.Sprintf("New leave request: %s", e.RequesterName),
			Body: fmt.Sprintf(
				"Hello %s,\n\n%s has requested leave.\nPeriod: %s (%d days)\n\nPlease open the manager queue to review it.\n",
				greeting(name), e.RequesterName, period, e.TotalDays,
			),
		}, true
	case events.LeaveDecided:
		label := statusLabel(e.Status)
		var b strings.Builder
		fmt.Fprintf(&b, "Hello %s,\n\nYour leave request for %s was %s", greeting(name), period, label)
		if e.DecidedBy != "" {
			fmt.Fprintf(&b, " by %s", e.DecidedBy)
		}
		b.WriteString(".\n")
		if e.RejectionReason != "" {
			fmt.Fprintf(&b, "Reason: %s\n", e.RejectionReason)
		}
		fmt.Fprintf(&b, "\nStatus: %s\n", strings.ToUpper(label))
		return Message{
			To:      email,
			ToName:  name,
			Subject: "Update on your leave request",
			Body:    b.String(),
		}, true
	}
	return Message{}, false
}

func statusLabel(status string) string {
	switch status {
	case "APPROVED_FINAL":
		return "approved"
	case "REJECTED":
		return "rejected"
	}
	return strings.ToLower(status)
}

func greeting(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

// displayDate turns YYYY-MM-DD into DD/MM/YYYY, leaving anything else as is.
func displayDate(v string) string {
	d, err := dateutil.Parse(v)
	if err != nil {
		return v
	}
	return dateutil.FormatDisplay(d)
}
