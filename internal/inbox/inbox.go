// Package inbox implements the quick-capture checklist document.
//
// Each item is one checklist line with optional trailing metadata tokens:
//
//	- [ ] buy milk [ts:1700000000000] [dest:goal]
//
// Tokens are order-independent and stripped from the end of the line.
// A destination other than "none" marks the item as triaged; triaged items
// are garbage-collected from the document on the next reconciling load.
package inbox

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lifeplanner/internal/tags"
	"lifeplanner/internal/vault"
)

// Destination is where a triaged item was sent.
type Destination string

// Destination values. DestNone means not yet triaged.
const (
	DestNone   Destination = "none"
	DestGoal   Destination = "goal"
	DestTask   Destination = "task"
	DestWeekly Destination = "weekly"
	DestIssue  Destination = "issue"
)

// Status is the triage state of an item, derived from its destination.
type Status string

const (
	StatusNew     Status = "new"
	StatusTriaged Status = "triaged"
)

// Item is one captured inbox entry.
type Item struct {
	ID          string
	Content     string
	CreatedAt   int64 // epoch millis; 0 means unknown
	Destination Destination
	Status      Status
}

var (
	itemPattern = regexp.MustCompile(`^- \[.\] (.+)$`)
	metaPattern = regexp.MustCompile(`\s\[(ts|dest):([^\]]+)\]\s*$`)
)

// Parse extracts inbox items from document text. Lines that are not
// checklist items are ignored. Items keep a stable ID across reloads by
// deriving it from the capture timestamp ("inbox-<ts>"); hand-written
// lines without a ts token get a positional ID ("inbox-0", ...).
func Parse(content string) []Item {
	var items []Item

	for _, line := range strings.Split(content, "\n") {
		match := itemPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		text, meta := extractMetadata(match[1])

		dest := Destination(meta["dest"])
		if dest == "" {
			dest = DestNone
		}

		createdAt := parseTimestamp(meta["ts"])

		id := fmt.Sprintf("inbox-%d", len(items))
		if createdAt != 0 {
			id = fmt.Sprintf("inbox-%d", createdAt)
		}

		items = append(items, Item{
			ID:          id,
			Content:     text,
			CreatedAt:   createdAt,
			Destination: dest,
			Status:      statusFor(dest),
		})
	}

	return items
}

// Serialize renders the inbox document. Zero items emit a single empty
// checklist placeholder so the file stays editable.
func Serialize(items []Item, defaultTags []string) string {
	lines := []string{"# Inbox", ""}

	if len(items) == 0 {
		lines = append(lines, "- [ ] ")
	} else {
		for _, item := range items {
			var tokens []string

			if item.CreatedAt != 0 {
				tokens = append(tokens, fmt.Sprintf("ts:%d", item.CreatedAt))
			}

			if item.Destination != DestNone && item.Destination != "" {
				tokens = append(tokens, fmt.Sprintf("dest:%s", item.Destination))
			}

			suffix := ""
			if len(tokens) > 0 {
				suffix = " [" + strings.Join(tokens, "] [") + "]"
			}

			lines = append(lines, "- [ ] "+item.Content+suffix)
		}
	}

	lines = append(lines, "")

	return strings.Join(tags.Prepend(lines, defaultTags), "\n")
}

// extractMetadata repeatedly strips trailing [ts:...] / [dest:...] tokens,
// so the tokens may appear in either order.
func extractMetadata(raw string) (string, map[string]string) {
	content := strings.TrimSpace(raw)
	meta := make(map[string]string, 2)

	for {
		loc := metaPattern.FindStringSubmatchIndex(content)
		if loc == nil {
			break
		}

		key := content[loc[2]:loc[3]]
		value := content[loc[4]:loc[5]]
		meta[key] = value

		content = strings.TrimSpace(content[:loc[0]])
	}

	return content, meta
}

func parseTimestamp(raw string) int64 {
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}

	return value
}

func statusFor(dest Destination) Status {
	if dest == DestNone || dest == "" {
		return StatusNew
	}

	return StatusTriaged
}

// Repository is the storage contract the inbox service needs.
type Repository interface {
	Read(path string) (string, error)
	Write(path, content string) error
}

// Service manages the inbox document.
type Service struct {
	repo        Repository
	baseDir     string
	defaultTags []string
	now         func() time.Time
}

// NewService returns an inbox service over the given repository.
func NewService(repo Repository, baseDir string, defaultTags []string) *Service {
	return &Service{repo: repo, baseDir: baseDir, defaultTags: defaultTags, now: time.Now}
}

func (s *Service) path() string {
	return vault.DocPath(vault.DocInbox, s.baseDir)
}

// Load parses the inbox document as stored, triaged items included.
func (s *Service) Load() ([]Item, error) {
	content, err := s.repo.Read(s.path())
	if err != nil {
		return nil, err
	}

	if content == "" {
		return nil, nil
	}

	return Parse(content), nil
}

// LoadAndReconcile returns the untriaged items. Items already sent to a
// destination are treated as consumed: they are dropped from the result
// and the document is rewritten without them.
func (s *Service) LoadAndReconcile() ([]Item, error) {
	items, err := s.Load()
	if err != nil {
		return nil, err
	}

	active := make([]Item, 0, len(items))

	for _, item := range items {
		if item.Destination == DestNone {
			active = append(active, item)
		}
	}

	if len(active) != len(items) {
		saveErr := s.Save(active)
		if saveErr != nil {
			return nil, saveErr
		}
	}

	return active, nil
}

// Add captures a new item with the current timestamp. The timestamp is
// bumped past any existing capture in the same millisecond so the
// derived ID stays unique.
func (s *Service) Add(content string) (Item, error) {
	items, err := s.LoadAndReconcile()
	if err != nil {
		return Item{}, err
	}

	now := s.now().UnixMilli()
	for hasCreatedAt(items, now) {
		now++
	}

	item := Item{
		ID:          fmt.Sprintf("inbox-%d", now),
		Content:     content,
		CreatedAt:   now,
		Destination: DestNone,
		Status:      StatusNew,
	}

	items = append(items, item)

	saveErr := s.Save(items)
	if saveErr != nil {
		return Item{}, saveErr
	}

	return item, nil
}

// MarkTriaged records the destination an item was sent to. The dest token
// stays in the document until the next reconciling load consumes it.
// Unknown IDs are a no-op.
func (s *Service) MarkTriaged(itemID string, dest Destination) error {
	items, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	idx := indexOf(items, itemID)
	if idx == -1 {
		return nil
	}

	items[idx].Destination = dest
	items[idx].Status = statusFor(dest)

	if items[idx].CreatedAt == 0 {
		items[idx].CreatedAt = s.now().UnixMilli()
	}

	return s.Save(items)
}

// Update rewrites an item's content. Unknown IDs are a no-op.
func (s *Service) Update(itemID, content string) error {
	items, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	idx := indexOf(items, itemID)
	if idx == -1 {
		return nil
	}

	items[idx].Content = content

	if items[idx].CreatedAt == 0 {
		items[idx].CreatedAt = s.now().UnixMilli()
	}

	return s.Save(items)
}

// Delete removes an item.
func (s *Service) Delete(itemID string) error {
	items, err := s.LoadAndReconcile()
	if err != nil {
		return err
	}

	remaining := make([]Item, 0, len(items))

	for _, item := range items {
		if item.ID != itemID {
			remaining = append(remaining, item)
		}
	}

	return s.Save(remaining)
}

// Save rewrites the whole inbox document.
func (s *Service) Save(items []Item) error {
	return s.repo.Write(s.path(), Serialize(items, s.defaultTags))
}

func hasCreatedAt(items []Item, ts int64) bool {
	for _, item := range items {
		if item.CreatedAt == ts {
			return true
		}
	}

	return false
}

func indexOf(items []Item, id string) int {
	for idx, item := range items {
		if item.ID == id {
			return idx
		}
	}

	return -1
}
