package testutil

import (
	"sync"
	"time"
)

// ScriptedPublisher answers publish calls from a fixed script of outcomes.
// Once the script is exhausted it keeps returning the last outcome, or false
// for an empty script.
type ScriptedPublisher struct {
	mu       sync.Mutex
	script   []bool
	calls    []string
	position int
}

// NewScriptedPublisher creates a publisher that returns outcomes in order.
func NewScriptedPublisher(outcomes ...bool) *ScriptedPublisher {
	return &ScriptedPublisher{script: outcomes}
}

// AlwaysFail returns a publisher that rejects every payload.
func AlwaysFail() *ScriptedPublisher {
	return NewScriptedPublisher(false)
}

// AlwaysSucceed returns a publisher that accepts every payload.
func AlwaysSucceed() *ScriptedPublisher {
	return NewScriptedPublisher(true)
}

// Publish records the payload and returns the next scripted outcome.
func (p *ScriptedPublisher) Publish(payload string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, payload)
	if len(p.script) == 0 {
		return false
	}
	idx := p.position
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	} else {
		p.position++
	}
	return p.script[idx]
}

// Calls returns the payloads seen so far.
func (p *ScriptedPublisher) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.calls))
	copy(out, p.calls)
	return out
}

// DeadLetters collects dead-lettered payloads.
type DeadLetters struct {
	mu       sync.Mutex
	payloads []string
}

// Record is a DeadLetterFunc.
func (d *DeadLetters) Record(payload string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payloads = append(d.payloads, payload)
}

// Payloads returns the recorded payloads.
func (d *DeadLetters) Payloads() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.payloads))
	copy(out, d.payloads)
	return out
}

// RecordingWaiter records the advisory delays it receives without sleeping.
type RecordingWaiter struct {
	mu     sync.Mutex
	delays []time.Duration
}

// Wait is a reliability.Waiter.
func (w *RecordingWaiter) Wait(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delays = append(w.delays, d)
}

// Delays returns the recorded delays.
func (w *RecordingWaiter) Delays() []time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]time.Duration, len(w.delays))
	copy(out, w.delays)
	return out
}
