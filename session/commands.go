package session

import (
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/shop"
)

// Commands buffers session commands so a host can collect a frame's input and
// apply it in one place. Commands run in the order they were queued.
type Commands struct {
	queue []func(s *Session) Result
}

// NewCommands returns an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

func (c *Commands) push(fn func(s *Session) Result) {
	c.queue = append(c.queue, fn)
}

// Move queues a move in dir.
func (c *Commands) Move(dir Direction) {
	c.push(func(s *Session) Result { return s.Move(dir) })
}

// Rotate queues a clockwise rotation.
func (c *Commands) Rotate() {
	c.push((*Session).Rotate)
}

// SoftDrop queues a soft drop.
func (c *Commands) SoftDrop() {
	c.push((*Session).SoftDrop)
}

// HardDrop queues a hard drop.
func (c *Commands) HardDrop() {
	c.push((*Session).HardDrop)
}

// Spawn queues a spawn.
func (c *Commands) Spawn() {
	c.push((*Session).Spawn)
}

// Advance queues a tick of dt seconds.
func (c *Commands) Advance(dt float64) {
	c.push(func(s *Session) Result { return s.Advance(dt) })
}

// Restart queues a restart.
func (c *Commands) Restart() {
	c.push((*Session).Restart)
}

// SetNext queues a replacement of the next piece.
func (c *Commands) SetNext(shape piece.Shape) {
	c.push(func(s *Session) Result { return accepted(s.SetNext(shape)) })
}

// OpenShop queues a shop open.
func (c *Commands) OpenShop() {
	c.push(func(s *Session) Result { return accepted(s.OpenShop()) })
}

// CloseShop queues a shop close.
func (c *Commands) CloseShop() {
	c.push(func(s *Session) Result { return accepted(s.CloseShop()) })
}

// Purchase queues a purchase of the offered item id.
func (c *Commands) Purchase(id shop.ItemID) {
	c.push(func(s *Session) Result { return accepted(s.Purchase(id)) })
}

// accepted maps the boolean commands onto Idle or Rejected.
func accepted(ok bool) Result {
	if ok {
		return Result{Outcome: Idle}
	}
	return Result{Outcome: Rejected}
}

// Defer queues an arbitrary host function to run in order with the commands.
func (c *Commands) Defer(fn func()) {
	c.push(func(*Session) Result {
		fn()
		return Result{Outcome: Idle}
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies every queued command to s, resets the buffer and returns the
// results in order. Commands queued while flushing run in the same flush.
func (c *Commands) Flush(s *Session) []Result {
	if len(c.queue) == 0 {
		return nil
	}
	results := make([]Result, 0, len(c.queue))
	for i := 0; i < len(c.queue); i++ {
		results = append(results, c.queue[i](s))
	}
	c.queue = c.queue[:0]
	return results
}
