package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/signalsfoundry/doppler-validator/model"
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
	EventSatelliteAdded EventType = iota
	EventElementsUpdated
	EventDownlinkUpdated
)

// Event is emitted to subscribers when a catalog entry changes.
type Event struct {
	Type  EventType
	Entry Entry
}

// Entry couples a satellite's orbital elements with its known downlink.
// DownlinkHz is zero until a frequency has been resolved.
type Entry struct {
	Elements   model.SatelliteElements
	DownlinkHz float64
}

// Catalog is an in-memory, thread-safe registry of tracked satellites,
// keyed by canonical (upper-cased, trimmed) name.
type Catalog struct {
	mu sync.RWMutex

	entries map[string]*Entry
	byNorad map[uint32]string

	subs    map[int]func(Event)
	nextSub int
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[string]*Entry),
		byNorad: make(map[uint32]string),
		subs:    make(map[int]func(Event)),
	}
}

func (c *Catalog) subscribersLocked() []func(Event) {
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func canonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Add registers a new satellite. It returns an error if the name or NORAD ID
// is already present.
func (c *Catalog) Add(elements model.SatelliteElements) error {
	key := canonicalName(elements.Name)
	if key == "" {
		return fmt.Errorf("satellite name must not be empty")
	}

	c.mu.Lock()
	if _, exists := c.entries[key]; exists {
		c.mu.Unlock()
		return fmt.Errorf("satellite %q already in catalog", elements.Name)
	}
	if existing, exists := c.byNorad[elements.NoradID]; exists && elements.NoradID != 0 {
		c.mu.Unlock()
		return fmt.Errorf("NORAD ID %d already in catalog as %q", elements.NoradID, existing)
	}
	entry := &Entry{Elements: elements}
	c.entries[key] = entry
	if elements.NoradID != 0 {
		c.byNorad[elements.NoradID] = key
	}
	event := Event{Type: EventSatelliteAdded, Entry: *entry}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Get returns the entry for the given satellite name, or false if not found.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[canonicalName(name)]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// GetByNoradID returns the entry with the given NORAD catalog number, or
// false if not found.
func (c *Catalog) GetByNoradID(noradID uint32) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.byNorad[noradID]
	if !ok {
		return Entry{}, false
	}
	return *c.entries[key], true
}

// List returns a snapshot slice of all entries.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		res = append(res, *entry)
	}
	return res
}

// UpdateElements replaces a satellite's orbital elements, keeping the
// resolved downlink, and notifies subscribers. Fresh element sets arrive
// whenever a TLE is re-fetched.
func (c *Catalog) UpdateElements(name string, elements model.SatelliteElements) error {
	key := canonicalName(name)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("satellite %q not in catalog", name)
	}
	if entry.Elements.NoradID != 0 {
		delete(c.byNorad, entry.Elements.NoradID)
	}
	entry.Elements = elements
	if elements.NoradID != 0 {
		c.byNorad[elements.NoradID] = key
	}
	event := Event{Type: EventElementsUpdated, Entry: *entry}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// UpdateDownlink records a satellite's downlink frequency and notifies
// subscribers.
func (c *Catalog) UpdateDownlink(name string, downlinkHz float64) error {
	key := canonicalName(name)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("satellite %q not in catalog", name)
	}
	entry.DownlinkHz = downlinkHz
	event := Event{Type: EventDownlinkUpdated, Entry: *entry}
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, sub := range subs {
		sub(event)
	}
	return nil
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function; unsubscribing is idempotent and never affects
// other subscribers.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
