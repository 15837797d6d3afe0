// ABOUTME: Interval polling for roster and active-conversation refresh
// ABOUTME: Returns an explicit handle so the owning view can cancel on teardown
package messaging

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Default polling intervals.
const (
	RosterInterval  = 30 * time.Second
	MessageInterval = 5 * time.Second
)

// Poller is the cancellation handle for a running polling loop. Stop must be
// called when the owning view is torn down, otherwise the timers keep firing
// against a view that no longer exists.
type Poller struct {
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Stop cancels the polling loops and waits for them to exit. Safe to call
// more than once.
func (p *Poller) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Start launches two loops: the roster refreshes every rosterEvery, and the
// active conversation every messagesEvery while one is selected. Zero
// intervals fall back to the defaults. Poll errors are held in Err and
// retried implicitly on the next tick.
func (s *Sync) Start(ctx context.Context, rosterEvery, messagesEvery time.Duration) *Poller {
	if rosterEvery <= 0 {
		rosterEvery = RosterInterval
	}
	if messagesEvery <= 0 {
		messagesEvery = MessageInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Poller{cancel: cancel}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(rosterEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.LoadRoster(ctx)
			}
		}
	}()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(messagesEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.Active() != uuid.Nil {
					_ = s.LoadMessages(ctx)
				}
			}
		}
	}()

	return p
}
