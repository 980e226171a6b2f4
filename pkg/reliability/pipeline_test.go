package reliability

import (
	"reflect"
	"testing"
	"time"

	"scratchrobin-hq/advanced/internal/testutil"
	"scratchrobin-hq/advanced/pkg/reject"
)

type countingObserver struct {
	attempts, published, deadLettered int
}

func (c *countingObserver) Attempt()      { c.attempts++ }
func (c *countingObserver) Published()    { c.published++ }
func (c *countingObserver) DeadLettered() { c.deadLettered++ }

func TestRunEvent(t *testing.T) {
	tests := []struct {
		name         string
		script       []bool
		maxAttempts  int
		wantStatus   string
		wantCalls    int
		wantDead     int
		wantRejected bool
	}{
		{name: "first attempt", script: []bool{true}, maxAttempts: 3, wantStatus: StatusPublished, wantCalls: 1},
		{name: "third attempt", script: []bool{false, false, true}, maxAttempts: 3, wantStatus: StatusPublished, wantCalls: 3},
		{name: "exhausted", script: []bool{false}, maxAttempts: 3, wantCalls: 3, wantDead: 1, wantRejected: true},
		{name: "success after limit", script: []bool{false, false, true}, maxAttempts: 2, wantCalls: 2, wantDead: 1, wantRejected: true},
		{name: "zero attempts", script: []bool{true}, maxAttempts: 0, wantCalls: 0, wantDead: 1, wantRejected: true},
		{name: "negative attempts", script: []bool{true}, maxAttempts: -2, wantCalls: 0, wantDead: 1, wantRejected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := testutil.NewScriptedPublisher(tt.script...)
			dead := &testutil.DeadLetters{}

			status, err := RunEvent("evt-1", tt.maxAttempts, 10*time.Millisecond, pub.Publish, dead.Record)

			if tt.wantRejected {
				r := testutil.AssertReject(t, err, reject.CodeCdcExhausted)
				if !r.Retryable {
					t.Error("exhausted delivery should be retryable")
				}
				if status != "" {
					t.Errorf("expected empty status, got %q", status)
				}
			} else {
				testutil.AssertNoError(t, err)
				if status != tt.wantStatus {
					t.Errorf("status = %q, want %q", status, tt.wantStatus)
				}
			}
			if got := len(pub.Calls()); got != tt.wantCalls {
				t.Errorf("publish called %d times, want %d", got, tt.wantCalls)
			}
			if got := len(dead.Payloads()); got != tt.wantDead {
				t.Errorf("dead-letter called %d times, want %d", got, tt.wantDead)
			}
		})
	}
}

func TestRunEvent_WaiterReceivesConstantDelay(t *testing.T) {
	waiter := &testutil.RecordingWaiter{}
	pub := testutil.AlwaysFail()

	_, err := RunEvent("evt", 4, 25*time.Millisecond, pub.Publish, nil, WithWaiter(waiter.Wait))
	testutil.AssertReject(t, err, reject.CodeCdcExhausted)

	want := []time.Duration{25 * time.Millisecond, 25 * time.Millisecond, 25 * time.Millisecond}
	if got := waiter.Delays(); !reflect.DeepEqual(got, want) {
		t.Errorf("delays = %v, want %v", got, want)
	}
}

func TestRunEvent_NoWaitAfterSuccess(t *testing.T) {
	waiter := &testutil.RecordingWaiter{}
	pub := testutil.NewScriptedPublisher(false, true)

	if _, err := RunEvent("evt", 5, time.Second, pub.Publish, nil, WithWaiter(waiter.Wait)); err != nil {
		t.Fatalf("RunEvent() error = %v", err)
	}
	if got := len(waiter.Delays()); got != 1 {
		t.Errorf("expected one wait, got %d", got)
	}
}

func TestRunEvent_Observer(t *testing.T) {
	obs := &countingObserver{}
	pub := testutil.AlwaysFail()

	_, _ = RunEvent("evt", 3, 0, pub.Publish, nil, WithObserver(obs))

	if obs.attempts != 3 || obs.published != 0 || obs.deadLettered != 1 {
		t.Errorf("unexpected observer counts: %+v", *obs)
	}
}

func TestPipeline_RunEvent(t *testing.T) {
	p := NewPipeline(nil)
	dead := &testutil.DeadLetters{}

	_, err := p.RunEvent("evt-9", 2, 0, testutil.AlwaysFail().Publish, dead.Record)
	testutil.AssertReject(t, err, reject.CodeCdcExhausted)

	if got := p.Queue().Snapshot(); !reflect.DeepEqual(got, []string{"evt-9"}) {
		t.Errorf("queue = %v, want [evt-9]", got)
	}
	if got := dead.Payloads(); !reflect.DeepEqual(got, []string{"evt-9"}) {
		t.Errorf("dead letters = %v, want [evt-9]", got)
	}

	if _, err := p.RunEvent("evt-10", 2, 0, testutil.AlwaysSucceed().Publish, dead.Record); err != nil {
		t.Fatalf("RunEvent() error = %v", err)
	}
	if p.Queue().Len() != 1 {
		t.Errorf("successful delivery should not grow the queue, len = %d", p.Queue().Len())
	}
}

func TestPipeline_RunBatch(t *testing.T) {
	queue := NewQueue()
	p := NewPipeline(queue)

	events := []string{"ok-1", "bad-1", "ok-2", "bad-2"}
	publish := func(payload string) bool { return payload[:2] == "ok" }

	res := p.RunBatch(events, 3, time.Millisecond, publish)

	if res != (BatchResult{Published: 2, DeadLettered: 2}) {
		t.Errorf("RunBatch() = %+v", res)
	}
	if got := queue.Snapshot(); !reflect.DeepEqual(got, []string{"bad-1", "bad-2"}) {
		t.Errorf("queue = %v, want dead-lettered events in input order", got)
	}
}

func TestPipeline_RunBatchEmpty(t *testing.T) {
	p := NewPipeline(nil)
	if res := p.RunBatch(nil, 3, 0, testutil.AlwaysFail().Publish); res != (BatchResult{}) {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestQueue_SnapshotIsCopy(t *testing.T) {
	q := NewQueue()
	q.Append("a")
	snap := q.Snapshot()
	snap[0] = "mutated"
	q.Append("b")

	if got := q.Snapshot(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Snapshot() = %v", got)
	}
}
