package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type Entry struct {
	Role Role
	Text string
}

// Transcript keeps the lines exchanged in one session so they can be saved
// for later review. It is never fed back into the knowledge base.
type Transcript struct {
	ID      string
	Started time.Time
	entries []Entry
}

func NewTranscript() *Transcript {
	return &Transcript{
		ID:      uuid.New().String(),
		Started: time.Now(),
	}
}

func (t *Transcript) Record(role Role, text string) {
	t.entries = append(t.entries, Entry{Role: role, Text: text})
}

func (t *Transcript) Entries() []Entry {
	return t.entries
}

func (t *Transcript) Len() int {
	return len(t.entries)
}

// Markdown renders the transcript, merging consecutive lines of one speaker.
func (t *Transcript) Markdown() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Helpdesk Session %s\n\n", t.ID))
	sb.WriteString(fmt.Sprintf("Started: %s\n\n", t.Started.Format(time.RFC3339)))

	var last Role
	for _, e := range t.entries {
		if e.Role != last {
			if last != "" {
				sb.WriteString("\n")
			}
			switch e.Role {
			case RoleUser:
				sb.WriteString("## User\n")
			case RoleBot:
				sb.WriteString("## Bot\n")
			}
			last = e.Role
		}
		sb.WriteString(strings.TrimLeft(e.Text, "\n") + "\n")
	}
	return sb.String()
}

// Save writes the transcript to <dir>/<id>.md and returns the path.
func (t *Transcript) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(t.ID)+".md")
	return path, os.WriteFile(path, []byte(t.Markdown()), 0644)
}
