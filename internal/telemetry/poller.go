package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zedbee/gateway-wizard/internal/logging"
)

// DefaultPollInterval matches the system-info page refresh rate.
const DefaultPollInterval = 3000 * time.Millisecond

// Fetcher retrieves a telemetry snapshot from the gateway.
type Fetcher interface {
	FetchSystemInfo(ctx context.Context) (*SystemInfo, error)
}

// Update is one poll result. Exactly one of Info and Err is set.
type Update struct {
	Info *SystemInfo
	Err  error
}

// Poller drives the fixed-interval telemetry loop for the system-info view.
// At most one loop runs at a time: Start cancels any previous loop before
// launching a new one, and Stop cancels the active loop.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPoller creates a poller with the default 3-second interval.
func NewPoller(fetcher Fetcher) *Poller {
	return &Poller{fetcher: fetcher, interval: DefaultPollInterval}
}

// SetInterval overrides the poll interval. Only affects loops started
// afterwards.
func (p *Poller) SetInterval(interval time.Duration) {
	p.interval = interval
}

// Start launches the polling loop and returns its update channel. The first
// fetch fires immediately, then one per interval. The channel is closed
// when the loop stops, either via Stop or ctx cancellation.
func (p *Poller) Start(ctx context.Context) <-chan Update {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	updates := make(chan Update, 1)
	go p.run(loopCtx, updates)
	return updates
}

// Stop cancels the active polling loop, if any.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) run(ctx context.Context, updates chan<- Update) {
	defer close(updates)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, updates)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, updates)
		}
	}
}

func (p *Poller) poll(ctx context.Context, updates chan<- Update) {
	info, err := p.fetcher.FetchSystemInfo(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Debug("Telemetry poll failed", zap.Error(err))
	}

	select {
	case updates <- Update{Info: info, Err: err}:
	case <-ctx.Done():
	}
}
