// ABOUTME: Calendar-day grouping of conversation messages
// ABOUTME: Pure function producing Today/Yesterday/date-labelled groups in the viewer's time zone
package messaging

import (
	"time"

	"github.com/tablevine/tablevine/models"
)

// DayGroup is one calendar day's worth of messages, ascending by creation
// time within the group.
type DayGroup struct {
	Label    string
	Day      time.Time
	Messages []models.Message
}

// GroupByDay splits an ascending message list into calendar-day groups in
// loc, labelled "Today", "Yesterday", or the day's date for anything older.
// Group order follows the chronological order of the input.
func GroupByDay(messages []models.Message, now time.Time, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	today := truncateDay(now.In(loc))
	yesterday := today.AddDate(0, 0, -1)

	var groups []DayGroup
	for _, m := range messages {
		day := truncateDay(m.CreatedAt.In(loc))
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Messages = append(groups[n-1].Messages, m)
			continue
		}
		groups = append(groups, DayGroup{
			Label:    dayLabel(day, today, yesterday),
			Day:      day,
			Messages: []models.Message{m},
		})
	}
	return groups
}

func dayLabel(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(yesterday):
		return "Yesterday"
	default:
		return day.Format("January 2, 2006")
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
