// Package ui holds the notification and confirmation state machines.
// Both are presentation-agnostic; the terminal front-end (or a test)
// plugs in behind small interfaces.
package ui

import (
	"sync"
	"time"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Notice struct {
	Message  string
	Severity Severity
}

// Sink receives notification phase changes. Show replaces whatever is
// currently displayed, Hide starts the exit transition, Clear removes
// the notice entirely.
type Sink interface {
	Show(Notice)
	Hide(Notice)
	Clear()
}

const (
	defaultVisibleFor = 3 * time.Second
	defaultExitFor    = 300 * time.Millisecond
)

// Notifier is a latest-wins toast: a new notice while one is visible
// replaces the content and restarts the dismiss timer. No queueing.
type Notifier struct {
	mu         sync.Mutex
	sink       Sink
	visibleFor time.Duration
	exitFor    time.Duration
	current    Notice
	gen        int
	hideTimer  *time.Timer
	clearTimer *time.Timer
}

func NewNotifier(sink Sink) *Notifier {
	return &Notifier{
		sink:       sink,
		visibleFor: defaultVisibleFor,
		exitFor:    defaultExitFor,
	}
}

// NewNotifierWithTiming exists for tests that cannot wait out the real
// dismiss delay.
func NewNotifierWithTiming(sink Sink, visibleFor, exitFor time.Duration) *Notifier {
	return &Notifier{
		sink:       sink,
		visibleFor: visibleFor,
		exitFor:    exitFor,
	}
}

// Notify is fire-and-forget.
func (n *Notifier) Notify(message string, severity Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.hideTimer != nil {
		n.hideTimer.Stop()
	}
	if n.clearTimer != nil {
		n.clearTimer.Stop()
	}

	n.gen++
	gen := n.gen
	n.current = Notice{Message: message, Severity: severity}
	n.sink.Show(n.current)

	n.hideTimer = time.AfterFunc(n.visibleFor, func() {
		n.beginHide(gen)
	})
}

func (n *Notifier) beginHide(gen int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return // superseded by a newer notice
	}
	n.sink.Hide(n.current)
	n.clearTimer = time.AfterFunc(n.exitFor, func() {
		n.finishHide(gen)
	})
}

func (n *Notifier) finishHide(gen int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return
	}
	n.sink.Clear()
}
