package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPrompt struct {
	opts    Options
	pending *Pending
}

func (p *capturedPrompt) Present(opts Options, pending *Pending) {
	p.opts = opts
	p.pending = pending
}

func TestConfirmYes(t *testing.T) {
	prompt := &capturedPrompt{}
	c := NewConfirmer(prompt)

	p, err := c.Open(Options{Title: "Eliminar Producto"})
	require.NoError(t, err)

	prompt.pending.Answer(true)
	assert.True(t, <-p.Result())
}

func TestDismissResolvesFalseExactlyOnce(t *testing.T) {
	prompt := &capturedPrompt{}
	c := NewConfirmer(prompt)

	p, err := c.Open(Options{})
	require.NoError(t, err)

	p.Dismiss()
	assert.False(t, <-p.Result())

	// A second click after resolution has no further effect.
	p.Answer(true)
	select {
	case v := <-p.Result():
		t.Fatalf("unexpected second resolution: %v", v)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestOnePendingAtATime(t *testing.T) {
	prompt := &capturedPrompt{}
	c := NewConfirmer(prompt)

	p, err := c.Open(Options{})
	require.NoError(t, err)

	_, err = c.Open(Options{})
	assert.ErrorIs(t, err, ErrConfirmPending)

	p.Answer(false)
	<-p.Result()

	// Resolution releases the slot for the next dialog.
	_, err = c.Open(Options{})
	assert.NoError(t, err)
}

func TestOptionsDefaults(t *testing.T) {
	prompt := &capturedPrompt{}
	c := NewConfirmer(prompt)

	p, err := c.Open(Options{})
	require.NoError(t, err)
	defer p.Dismiss()

	assert.Equal(t, "¿Estás seguro?", prompt.opts.Title)
	assert.Equal(t, "Cancelar", prompt.opts.CancelText)
}

type autoAnswerPrompt struct{ answer bool }

func (p autoAnswerPrompt) Present(_ Options, pending *Pending) {
	go pending.Answer(p.answer)
}

func TestConfirmBlocksUntilAnswered(t *testing.T) {
	c := NewConfirmer(autoAnswerPrompt{answer: true})
	assert.True(t, c.Confirm(Options{}))

	c = NewConfirmer(autoAnswerPrompt{answer: false})
	assert.False(t, c.Confirm(Options{}))
}
