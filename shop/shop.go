// Package shop generates the between-round item offers and settles purchases.
package shop

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/roguetris/effect"
)

// ItemID identifies one offered item. IDs are never reused within an engine,
// so a reference to an item from an earlier batch can never match a new one.
type ItemID uint32

// PayloadKind says what an item grants on purchase.
type PayloadKind int

const (
	// GrantEffect adds a new active effect.
	GrantEffect PayloadKind = iota
	// ScoreBonus adds points to the running score.
	ScoreBonus
	// CurrencyBonus adds currency.
	CurrencyBonus
	// SlowFall stretches the auto-fall interval until the session restarts.
	SlowFall
)

var payloadNames = map[PayloadKind]string{
	GrantEffect:   "effect",
	ScoreBonus:    "score",
	CurrencyBonus: "currency",
	SlowFall:      "slow_fall",
}

func (k PayloadKind) String() string {
	if name, ok := payloadNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParsePayloadKind maps configuration names back to a PayloadKind.
func ParsePayloadKind(name string) (PayloadKind, bool) {
	for k, n := range payloadNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Payload describes what a purchase applies. Effect and Duration are only
// meaningful for GrantEffect.
type Payload struct {
	Kind     PayloadKind
	Effect   effect.Type
	Value    float64
	Duration float64
}

// Entry is a catalogue template that items are stamped from.
type Entry struct {
	Name        string
	Description string
	BaseCost    int
	Payload     Payload
}

// Item is a concrete offer in the current batch.
type Item struct {
	ID          ItemID
	Name        string
	Description string
	Cost        int
	Payload     Payload
}

// Progress is the game progress that item costs scale with.
type Progress struct {
	Round int
}

// Wallet is the purchasing side of a session.
type Wallet interface {
	Balance() int
	Debit(amount int)
	Apply(p Payload)
}

// Source is the randomness used to pick offers. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Engine owns the catalogue and the currently offered batch.
type Engine struct {
	catalog    []Entry
	batchSize  int
	costGrowth float64
	src        Source

	nextID ItemID
	order  []ItemID
	offers *intmap.Map[ItemID, Item]
}

// NewEngine creates a shop. batchSize is capped at the catalogue size.
func NewEngine(catalog []Entry, batchSize int, costGrowth float64, src Source) *Engine {
	if batchSize <= 0 {
		batchSize = 1
	}
	if !(costGrowth >= 0) {
		costGrowth = 0
	}
	return &Engine{
		catalog:    append([]Entry(nil), catalog...),
		batchSize:  min(batchSize, len(catalog)),
		costGrowth: costGrowth,
		src:        src,
		offers:     intmap.New[ItemID, Item](8),
	}
}

// Cost returns the price of entry at the given progress.
func (e *Engine) Cost(entry Entry, p Progress) int {
	scale := 1 + e.costGrowth*float64(max(p.Round, 0))
	return max(int(math.Round(float64(entry.BaseCost)*scale)), 0)
}

// Generate replaces the current batch with a fresh selection of distinct
// catalogue entries and returns it.
func (e *Engine) Generate(p Progress) []Item {
	e.Discard()

	picks := make([]int, len(e.catalog))
	for i := range picks {
		picks[i] = i
	}
	// Partial Fisher-Yates: the first batchSize slots end up uniformly chosen.
	for i := 0; i < e.batchSize; i++ {
		j := i
		if e.src != nil {
			j = i + e.src.IntN(len(picks)-i)
		}
		picks[i], picks[j] = picks[j], picks[i]
	}

	for _, idx := range picks[:e.batchSize] {
		entry := e.catalog[idx]
		e.nextID++
		item := Item{
			ID:          e.nextID,
			Name:        entry.Name,
			Description: entry.Description,
			Cost:        e.Cost(entry, p),
			Payload:     entry.Payload,
		}
		e.offers.Put(item.ID, item)
		e.order = append(e.order, item.ID)
	}

	return e.Items()
}

// Items returns the items still on offer in the order they were generated.
func (e *Engine) Items() []Item {
	items := make([]Item, 0, len(e.order))
	for _, id := range e.order {
		if item, ok := e.offers.Get(id); ok {
			items = append(items, item)
		}
	}
	return items
}

// Lookup returns the offered item with the given id.
func (e *Engine) Lookup(id ItemID) (Item, bool) {
	return e.offers.Get(id)
}

// Purchase buys the item with the given id. It fails without touching the
// wallet when the id is not in the current batch (unknown, stale, or already
// bought) or when the wallet cannot cover the cost. A successful purchase
// removes the item from the batch.
func (e *Engine) Purchase(id ItemID, w Wallet) bool {
	if w == nil {
		return false
	}
	item, ok := e.offers.Get(id)
	if !ok {
		return false
	}
	if w.Balance() < item.Cost {
		return false
	}

	e.offers.Del(id)
	w.Debit(item.Cost)
	w.Apply(item.Payload)
	return true
}

// Discard drops the current batch.
func (e *Engine) Discard() {
	e.offers.Clear()
	e.order = e.order[:0]
}

// Len returns the number of items still on offer.
func (e *Engine) Len() int {
	return e.offers.Len()
}
