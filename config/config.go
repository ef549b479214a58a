// Package config holds the balance tunables for a session and loads them from
// YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/shop"
	"gopkg.in/yaml.v3"
)

var (
	ErrBoardSize    = errors.New("board must be at least 4x4")
	ErrFallInterval = errors.New("fall interval must be positive")
	ErrTarget       = errors.New("target score must be positive")
	ErrTargetGrowth = errors.New("target growth must be at least 1")
	ErrLineScores   = errors.New("line scores must be non-negative and non-decreasing")
	ErrCatalog      = errors.New("invalid catalogue item")
)

// Balance is every tunable the rules engine reads.
type Balance struct {
	BoardWidth     int           `yaml:"board_width"`
	BoardHeight    int           `yaml:"board_height"`
	FallInterval   float64       `yaml:"fall_interval"`
	InitialTarget  int           `yaml:"initial_target"`
	TargetGrowth   float64       `yaml:"target_growth"`
	LineScores     []int         `yaml:"line_scores"`
	CurrencyRate   float64       `yaml:"currency_rate"`
	ShopBatchSize  int           `yaml:"shop_batch_size"`
	ShopCostGrowth float64       `yaml:"shop_cost_growth"`
	ColorCount     int           `yaml:"color_count"`
	Catalog        []CatalogItem `yaml:"catalog"`
}

// CatalogItem is the YAML form of a shop entry. Kind is one of "effect",
// "score", "currency" or "slow_fall"; Effect names the effect type for
// "effect" items.
type CatalogItem struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Cost        int     `yaml:"cost"`
	Kind        string  `yaml:"kind"`
	Effect      string  `yaml:"effect,omitempty"`
	Value       float64 `yaml:"value"`
	Duration    float64 `yaml:"duration,omitempty"`
}

// Default returns the stock balance.
func Default() Balance {
	return Balance{
		BoardWidth:     10,
		BoardHeight:    20,
		FallInterval:   1.0,
		InitialTarget:  1000,
		TargetGrowth:   1.5,
		LineScores:     []int{100, 300, 500, 800},
		CurrencyRate:   1.0,
		ShopBatchSize:  3,
		ShopCostGrowth: 0.25,
		ColorCount:     7,
		Catalog:        DefaultCatalog(),
	}
}

// DefaultCatalog returns the stock shop catalogue.
func DefaultCatalog() []CatalogItem {
	return []CatalogItem{
		{Name: "Double Score", Description: "Line clears score twice as much for 30s.", Cost: 400, Kind: "effect", Effect: "score_multiplier", Value: 2, Duration: 30},
		{Name: "Bonus Points", Description: "+50 points on every line clear for 45s.", Cost: 200, Kind: "effect", Effect: "bonus_points", Value: 50, Duration: 45},
		{Name: "Line Bonus", Description: "+25 points per cleared line for 45s.", Cost: 250, Kind: "effect", Effect: "line_clear_bonus", Value: 25, Duration: 45},
		{Name: "Combo Booster", Description: "Multi-line clears score x1.5 for 60s.", Cost: 300, Kind: "effect", Effect: "combo_bonus", Value: 1.5, Duration: 60},
		{Name: "Score Injection", Description: "Adds 250 points immediately.", Cost: 350, Kind: "score", Value: 250},
		{Name: "Slow Fall", Description: "Pieces fall 25% slower for the rest of the run.", Cost: 500, Kind: "slow_fall", Value: 1.25},
	}
}

// Load reads a YAML balance file. Fields left out of the file keep their
// default values.
func Load(path string) (*Balance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML balance data, fills in defaults and validates the result.
func Parse(data []byte) (*Balance, error) {
	var b Balance
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode balance: %w", err)
	}
	b.ApplyDefaults()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// ApplyDefaults replaces zero values with the stock ones.
func (b *Balance) ApplyDefaults() {
	d := Default()
	if b.BoardWidth == 0 {
		b.BoardWidth = d.BoardWidth
	}
	if b.BoardHeight == 0 {
		b.BoardHeight = d.BoardHeight
	}
	if b.FallInterval == 0 {
		b.FallInterval = d.FallInterval
	}
	if b.InitialTarget == 0 {
		b.InitialTarget = d.InitialTarget
	}
	if b.TargetGrowth == 0 {
		b.TargetGrowth = d.TargetGrowth
	}
	if len(b.LineScores) == 0 {
		b.LineScores = d.LineScores
	}
	if b.CurrencyRate == 0 {
		b.CurrencyRate = d.CurrencyRate
	}
	if b.ShopBatchSize == 0 {
		b.ShopBatchSize = d.ShopBatchSize
	}
	if b.ColorCount == 0 {
		b.ColorCount = d.ColorCount
	}
	if len(b.Catalog) == 0 {
		b.Catalog = d.Catalog
	}
}

// Validate reports the first setting the rules engine cannot run with.
func (b *Balance) Validate() error {
	if b.BoardWidth < 4 || b.BoardHeight < 4 {
		return fmt.Errorf("%w: got %dx%d", ErrBoardSize, b.BoardWidth, b.BoardHeight)
	}
	if !(b.FallInterval > 0) {
		return fmt.Errorf("%w: got %v", ErrFallInterval, b.FallInterval)
	}
	if b.InitialTarget <= 0 {
		return fmt.Errorf("%w: got %d", ErrTarget, b.InitialTarget)
	}
	if !(b.TargetGrowth >= 1) {
		return fmt.Errorf("%w: got %v", ErrTargetGrowth, b.TargetGrowth)
	}
	for i, s := range b.LineScores {
		if s < 0 || (i > 0 && s < b.LineScores[i-1]) {
			return fmt.Errorf("%w: %v", ErrLineScores, b.LineScores)
		}
	}
	_, err := b.Entries()
	return err
}

// Entries converts the catalogue into shop entries.
func (b *Balance) Entries() ([]shop.Entry, error) {
	entries := make([]shop.Entry, 0, len(b.Catalog))
	for i, item := range b.Catalog {
		entry, err := item.entry()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d (%q): %v", ErrCatalog, i, item.Name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c CatalogItem) entry() (shop.Entry, error) {
	if c.Name == "" {
		return shop.Entry{}, errors.New("missing name")
	}
	if c.Cost < 0 {
		return shop.Entry{}, fmt.Errorf("negative cost %d", c.Cost)
	}
	kind, ok := shop.ParsePayloadKind(c.Kind)
	if !ok {
		return shop.Entry{}, fmt.Errorf("unknown kind %q", c.Kind)
	}

	payload := shop.Payload{Kind: kind, Value: c.Value}
	switch kind {
	case shop.GrantEffect:
		typ, ok := effect.ParseType(c.Effect)
		if !ok {
			return shop.Entry{}, fmt.Errorf("unknown effect %q", c.Effect)
		}
		if !(c.Duration > 0) {
			return shop.Entry{}, fmt.Errorf("effect duration must be positive, got %v", c.Duration)
		}
		payload.Effect = typ
		payload.Duration = c.Duration
	case shop.SlowFall:
		if !(c.Value >= 1) {
			return shop.Entry{}, fmt.Errorf("slow fall factor must be at least 1, got %v", c.Value)
		}
	}

	return shop.Entry{
		Name:        c.Name,
		Description: c.Description,
		BaseCost:    c.Cost,
		Payload:     payload,
	}, nil
}
