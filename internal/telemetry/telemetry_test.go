package telemetry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{0, "0m"},
		{59, "59m"},
		{60, "1h 0m"},
		{125, "2h 5m"},
		{1440, "24h 0m"},
		{-5, "0m"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.minutes); got != tt.want {
			t.Errorf("FormatUptime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

type fakeFetcher struct {
	calls atomic.Int64
	err   error
}

func (f *fakeFetcher) FetchSystemInfo(ctx context.Context) (*SystemInfo, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &SystemInfo{Hostname: "gw", UptimeMinutes: 61}, nil
}

func TestPollerDeliversUpdates(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := NewPoller(fetcher)
	p.SetInterval(10 * time.Millisecond)
	defer p.Stop()

	updates := p.Start(context.Background())

	select {
	case u := <-updates:
		if u.Err != nil {
			t.Fatalf("first update error = %v", u.Err)
		}
		if u.Info.Hostname != "gw" {
			t.Errorf("Info.Hostname = %q, want gw", u.Info.Hostname)
		}
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestPollerSurfacesErrors(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("unreachable")}
	p := NewPoller(fetcher)
	p.SetInterval(10 * time.Millisecond)
	defer p.Stop()

	updates := p.Start(context.Background())
	select {
	case u := <-updates:
		if u.Err == nil {
			t.Fatal("update error = nil, want fetch error")
		}
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestPollerStopClosesChannel(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := NewPoller(fetcher)
	p.SetInterval(10 * time.Millisecond)

	updates := p.Start(context.Background())
	<-updates
	p.Stop()

	select {
	case _, ok := <-updates:
		for ok {
			_, ok = <-updates
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Stop")
	}
}

func TestPollerRestartCancelsPriorLoop(t *testing.T) {
	fetcher := &fakeFetcher{}
	p := NewPoller(fetcher)
	p.SetInterval(10 * time.Millisecond)
	defer p.Stop()

	first := p.Start(context.Background())
	<-first
	second := p.Start(context.Background())

	// The first loop must wind down once the second starts
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-first:
			if !ok {
				<-second
				return
			}
		case <-deadline:
			t.Fatal("first loop still running after restart")
		}
	}
}
