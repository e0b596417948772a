package ui

import (
	"errors"
	"sync"
)

// Options configures a confirmation dialog.
type Options struct {
	Icon        string
	Title       string
	Message     string
	ConfirmText string
	CancelText  string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "¿Estás seguro?"
	}
	if o.Message == "" {
		o.Message = "Esta acción no se puede deshacer."
	}
	if o.ConfirmText == "" {
		o.ConfirmText = "Sí, continuar"
	}
	if o.CancelText == "" {
		o.CancelText = "Cancelar"
	}
	return o
}

// Prompt presents a pending confirmation to the user. Implementations
// answer through the Pending handle; they must not block Present.
type Prompt interface {
	Present(Options, *Pending)
}

var ErrConfirmPending = errors.New("a confirmation is already pending")

// Confirmer opens one confirmation dialog at a time and guarantees each
// dialog resolves exactly once.
type Confirmer struct {
	mu      sync.Mutex
	prompt  Prompt
	pending *Pending
}

func NewConfirmer(prompt Prompt) *Confirmer {
	return &Confirmer{prompt: prompt}
}

// Open presents the dialog and returns its handle. The caller waits on
// Result; dismissal counts as "no".
func (c *Confirmer) Open(opts Options) (*Pending, error) {
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return nil, ErrConfirmPending
	}
	p := &Pending{
		result: make(chan bool, 1),
		done: func(p *Pending) {
			c.mu.Lock()
			if c.pending == p {
				c.pending = nil
			}
			c.mu.Unlock()
		},
	}
	c.pending = p
	c.mu.Unlock()

	c.prompt.Present(opts.withDefaults(), p)
	return p, nil
}

// Confirm opens the dialog and blocks until it resolves.
func (c *Confirmer) Confirm(opts Options) bool {
	p, err := c.Open(opts)
	if err != nil {
		return false
	}
	return <-p.Result()
}

// Pending is one open confirmation. Answer and Dismiss are safe to call
// from any handler; every call after the first is a no-op, which is what
// keeps reused dialog surfaces from resolving twice.
type Pending struct {
	mu       sync.Mutex
	resolved bool
	result   chan bool
	done     func(*Pending)
}

func (p *Pending) Answer(yes bool) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.mu.Unlock()

	p.result <- yes
	if p.done != nil {
		p.done(p)
	}
}

// Dismiss resolves the dialog as "no" (background click, escape).
func (p *Pending) Dismiss() {
	p.Answer(false)
}

func (p *Pending) Result() <-chan bool {
	return p.result
}
