package shop_test

import (
	"testing"

	"github.com/plus3/roguetris/effect"
	"github.com/plus3/roguetris/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWallet struct {
	balance int
	applied []shop.Payload
}

func (w *testWallet) Balance() int        { return w.balance }
func (w *testWallet) Debit(amount int)    { w.balance -= amount }
func (w *testWallet) Apply(p shop.Payload) { w.applied = append(w.applied, p) }

// firstPick always chooses the lowest remaining index, which keeps catalogue
// order.
type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

// lastPick always chooses the highest remaining index.
type lastPick struct{}

func (lastPick) IntN(n int) int { return n - 1 }

func testCatalog() []shop.Entry {
	return []shop.Entry{
		{Name: "Double Score", BaseCost: 400, Payload: shop.Payload{Kind: shop.GrantEffect, Effect: effect.ScoreMultiplier, Value: 2, Duration: 30}},
		{Name: "Bonus Points", BaseCost: 200, Payload: shop.Payload{Kind: shop.GrantEffect, Effect: effect.BonusPoints, Value: 50, Duration: 45}},
		{Name: "Score Injection", BaseCost: 300, Payload: shop.Payload{Kind: shop.ScoreBonus, Value: 250}},
		{Name: "Slow Fall", BaseCost: 500, Payload: shop.Payload{Kind: shop.SlowFall, Value: 1.25}},
	}
}

func TestGenerate(t *testing.T) {
	t.Run("batch of distinct entries", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0.5, firstPick{})
		items := engine.Generate(shop.Progress{Round: 0})

		require.Len(t, items, 3)
		assert.Equal(t, "Double Score", items[0].Name)
		assert.Equal(t, "Bonus Points", items[1].Name)
		assert.Equal(t, "Score Injection", items[2].Name)
		assert.Equal(t, 400, items[0].Cost)
	})

	t.Run("source drives selection", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 2, 0, lastPick{})
		items := engine.Generate(shop.Progress{})

		require.Len(t, items, 2)
		assert.Equal(t, "Slow Fall", items[0].Name)
		names := map[string]bool{items[0].Name: true, items[1].Name: true}
		assert.Len(t, names, 2)
	})

	t.Run("costs scale with round", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 1, 0.5, firstPick{})
		assert.Equal(t, 400, engine.Generate(shop.Progress{Round: 0})[0].Cost)
		assert.Equal(t, 600, engine.Generate(shop.Progress{Round: 1})[0].Cost)
		assert.Equal(t, 800, engine.Generate(shop.Progress{Round: 2})[0].Cost)
	})

	t.Run("batch size capped by catalogue", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 10, 0, firstPick{})
		assert.Len(t, engine.Generate(shop.Progress{}), 4)
	})

	t.Run("ids are never reused across batches", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 2, 0, firstPick{})
		first := engine.Generate(shop.Progress{})
		second := engine.Generate(shop.Progress{})

		seen := map[shop.ItemID]bool{}
		for _, item := range append(first, second...) {
			assert.False(t, seen[item.ID], "id %d reused", item.ID)
			seen[item.ID] = true
		}
		assert.Equal(t, 2, engine.Len())
	})

	t.Run("empty catalogue", func(t *testing.T) {
		engine := shop.NewEngine(nil, 3, 0, firstPick{})
		assert.Empty(t, engine.Generate(shop.Progress{}))
	})
}

func TestPurchase(t *testing.T) {
	t.Run("success debits and applies", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 1000}

		ok := engine.Purchase(items[0].ID, wallet)
		require.True(t, ok)
		assert.Equal(t, 600, wallet.balance)
		require.Len(t, wallet.applied, 1)
		assert.Equal(t, effect.ScoreMultiplier, wallet.applied[0].Effect)
		assert.Len(t, engine.Items(), 2, "bought item leaves the batch")
	})

	t.Run("second purchase of the same item fails", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 1000}

		require.True(t, engine.Purchase(items[1].ID, wallet))
		balance := wallet.balance

		assert.False(t, engine.Purchase(items[1].ID, wallet))
		assert.Equal(t, balance, wallet.balance)
		assert.Len(t, wallet.applied, 1)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 399}

		assert.False(t, engine.Purchase(items[0].ID, wallet))
		assert.Equal(t, 399, wallet.balance)
		assert.Empty(t, wallet.applied)
		assert.Len(t, engine.Items(), 3)
	})

	t.Run("exact balance is enough", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 200}

		assert.True(t, engine.Purchase(items[1].ID, wallet))
		assert.Equal(t, 0, wallet.balance)
	})

	t.Run("unknown and stale ids", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 2, 0, firstPick{})
		stale := engine.Generate(shop.Progress{})
		engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 5000}

		assert.False(t, engine.Purchase(stale[0].ID, wallet))
		assert.False(t, engine.Purchase(shop.ItemID(9999), wallet))
		assert.Equal(t, 5000, wallet.balance)
	})

	t.Run("identical items are tracked separately", func(t *testing.T) {
		catalog := []shop.Entry{
			{Name: "Coin", BaseCost: 10, Payload: shop.Payload{Kind: shop.CurrencyBonus, Value: 5}},
			{Name: "Coin", BaseCost: 10, Payload: shop.Payload{Kind: shop.CurrencyBonus, Value: 5}},
		}
		engine := shop.NewEngine(catalog, 2, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		wallet := &testWallet{balance: 100}

		assert.True(t, engine.Purchase(items[0].ID, wallet))
		assert.True(t, engine.Purchase(items[1].ID, wallet))
		assert.False(t, engine.Purchase(items[0].ID, wallet))
		assert.Equal(t, 80, wallet.balance)
	})

	t.Run("nil wallet", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 1, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		assert.False(t, engine.Purchase(items[0].ID, nil))
	})

	t.Run("discard empties the batch", func(t *testing.T) {
		engine := shop.NewEngine(testCatalog(), 3, 0, firstPick{})
		items := engine.Generate(shop.Progress{})
		engine.Discard()

		_, ok := engine.Lookup(items[0].ID)
		assert.False(t, ok)
		assert.Equal(t, 0, engine.Len())
	})
}

func TestPayloadKindNames(t *testing.T) {
	for _, k := range []shop.PayloadKind{shop.GrantEffect, shop.ScoreBonus, shop.CurrencyBonus, shop.SlowFall} {
		parsed, ok := shop.ParsePayloadKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "unknown", shop.PayloadKind(42).String())
}
