package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/pranavmehta-git/fault-line/internal/scoring"
)

// rawItem mirrors one checklist entry on disk. Keywords drive the
// upstream classifier and are ignored by scoring.
type rawItem struct {
	ID        string   `json:"id"`
	Dimension string   `json:"dimension"`
	Points    int      `json:"points"`
	Keywords  []string `json:"keywords"`
}

type checklistDoc struct {
	ChecklistItems []rawItem `json:"checklist_items"`
}

// Catalog is the static checklist-item mapping, loaded once per run and
// read-only thereafter.
type Catalog struct {
	items map[string]scoring.ChecklistItem
}

// New builds a catalog from typed items. Items with an unknown
// dimension are excluded; they could never contribute to a tracked
// dimension's score.
func New(items []scoring.ChecklistItem) *Catalog {
	byID := make(map[string]scoring.ChecklistItem, len(items))
	for _, it := range items {
		if !scoring.ValidDimension(it.Dimension) {
			log.Warn().Str("item_id", it.ID).Str("dimension", string(it.Dimension)).
				Msg("Dropping checklist item with unknown dimension")
			continue
		}
		byID[it.ID] = it
	}
	return &Catalog{items: byID}
}

// Load reads the checklist document from path. Missing checklist input
// is fatal for the run, same as missing events.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist: %w", err)
	}
	var doc checklistDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse checklist JSON: %w", err)
	}
	items := make([]scoring.ChecklistItem, 0, len(doc.ChecklistItems))
	for _, raw := range doc.ChecklistItems {
		items = append(items, scoring.ChecklistItem{
			ID:        raw.ID,
			Dimension: scoring.Dimension(raw.Dimension),
			Points:    raw.Points,
		})
	}
	return New(items), nil
}

// Item resolves a checklist item by identifier.
func (c *Catalog) Item(id string) (scoring.ChecklistItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Len returns the number of known checklist items.
func (c *Catalog) Len() int { return len(c.items) }
