package event

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the calendar-day format used across all artifacts.
const DateLayout = "2006-01-02"

// Event is one classified, dated observation about a lab. Events are
// produced upstream and are read-only here; scoring consumes the typed
// fields and never inspects source text.
type Event struct {
	ID                     string   `json:"id"`
	Date                   string   `json:"date"`
	Lab                    string   `json:"lab"`
	Dimension              string   `json:"dimension"`
	ChecklistItemsAffected []string `json:"checklist_items_affected"`
	Summary                string   `json:"summary,omitempty"`
	Source                 string   `json:"source,omitempty"`
	Tags                   []string `json:"tags,omitempty"`
	Confidence             string   `json:"confidence,omitempty"`

	// day is the parsed Date, set at store construction.
	day time.Time
}

// Day returns the event's parsed calendar day (UTC midnight).
func (e Event) Day() time.Time { return e.day }

type eventsDoc struct {
	Events []Event `json:"events"`
}

// Store is the run's immutable event collection, sorted by date
// ascending. Events whose date cannot be parsed are dropped at
// construction rather than carried with a sentinel date that would
// never expire from the decay window.
type Store struct {
	events []Event
}

// NewStore parses, filters, and orders raw events into a Store.
func NewStore(events []Event) *Store {
	kept := make([]Event, 0, len(events))
	for _, ev := range events {
		day, err := time.ParseInLocation(DateLayout, ev.Date, time.UTC)
		if err != nil {
			log.Warn().Str("event_id", ev.ID).Str("date", ev.Date).
				Msg("Dropping event with unparseable date")
			continue
		}
		ev.day = day
		kept = append(kept, ev)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].day.Before(kept[j].day)
	})
	return &Store{events: kept}
}

// LoadStore reads the events document from path. A missing or
// unreadable file is fatal for the run: scoring must not overwrite good
// prior snapshots with output computed from partial input.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	var doc eventsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse events JSON: %w", err)
	}
	return NewStore(doc.Events), nil
}

// Len returns the number of retained events.
func (s *Store) Len() int { return len(s.events) }

// Bounds returns the earliest and latest event days. ok is false when
// the store is empty.
func (s *Store) Bounds() (first, last time.Time, ok bool) {
	if len(s.events) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.events[0].day, s.events[len(s.events)-1].day, true
}

// InWindow returns the lab's events inside the closed decay window
// [ref - windowDays, ref], in date order. An event exactly windowDays
// before ref is included; one day further back is not.
func (s *Store) InWindow(ref time.Time, lab string, windowDays int) []Event {
	start := ref.AddDate(0, 0, -windowDays)
	var out []Event
	for _, ev := range s.events {
		if ev.Lab != lab {
			continue
		}
		if ev.day.Before(start) || ev.day.After(ref) {
			continue
		}
		out = append(out, ev)
	}
	return out
}
