package session_test

import (
	"testing"

	"github.com/plus3/roguetris/config"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotString(t *testing.T) {
	s := newSession(t, func(b *config.Balance) {
		b.BoardWidth = 6
		b.BoardHeight = 6
	})
	s.HardDrop()

	want := `phase=Playing round=0 score=0/1000 currency=0 lines=0 time=0.0s
current=I#2 at (2,4) rot=0
next=I
+------+
|......|
|.@@@@.|
|......|
|......|
|......|
|.####.|
+------+
`
	assert.Equal(t, want, s.Snapshot().String())
}

func TestSnapshotStringShowsOffers(t *testing.T) {
	s := newSession(t, func(b *config.Balance) {
		b.InitialTarget = 100
		b.Catalog = cheapCatalog()
	})
	fillBottomRowWithO(t, s)
	s.OpenShop()

	dump := s.Snapshot().String()
	assert.Contains(t, dump, "phase=Shop")
	assert.Contains(t, dump, "current=none")
	assert.Contains(t, dump, "Double Score cost=60")
	assert.NotContains(t, dump, "@")
}
