package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinInitialDataFields is how many recognised fields an initial data
// submission must contain to be accepted.
const MinInitialDataFields = 3

// initialDataLine matches "1. value", "2 value" and similar numbered lines.
var initialDataLine = regexp.MustCompile(`^(\d+)[.\s]+(.+)$`)

// SessionMessage is one timestamped entry in a chat session log.
type SessionMessage struct {
	// At is when the message was recorded.
	At time.Time

	// Role is who spoke.
	Role Role

	// Content is what was said.
	Content string
}

// Session is one chat session's persistent record.
type Session struct {
	// ID is the session identifier, derived from start time and user.
	ID string

	// StartedAt is when the session began.
	StartedAt time.Time

	// UserID identifies the user.
	UserID string

	// UserName is the display name, when known.
	UserName string

	// InitialData holds the equipment fields collected at session start.
	InitialData map[string]string

	// InitialDataAt is when the initial data was recorded.
	InitialDataAt time.Time

	// Messages is the ordered transcript.
	Messages []SessionMessage
}

// NewSession creates a session with an ID derived from the start time and
// user, matching the on-disk session file naming.
func NewSession(userID, userName string, startedAt time.Time) Session {
	return Session{
		ID:        fmt.Sprintf("%s_user_%s", startedAt.Format("2006-01-02_15-04-05"), userID),
		StartedAt: startedAt,
		UserID:    userID,
		UserName:  userName,
	}
}

// ParseInitialData extracts "N. value" lines from a user submission and maps
// them onto the configured field names. Lines whose number falls outside the
// field list are ignored. Returns ErrInvalidInput when fewer than
// MinInitialDataFields fields were recognised.
func ParseInitialData(input string, fields []string) (map[string]string, error) {
	data := make(map[string]string)

	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := initialDataLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 || num > len(fields) {
			continue
		}
		data[fields[num-1]] = strings.TrimSpace(m[2])
	}

	if len(data) < MinInitialDataFields {
		return nil, fmt.Errorf("%w: recognised %d of at least %d required fields", ErrInvalidInput, len(data), MinInitialDataFields)
	}
	return data, nil
}
