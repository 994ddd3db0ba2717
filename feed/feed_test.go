package feed

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetysight/types"
)

func TestParseSeverity(t *testing.T) {
	cases := []struct {
		name     string
		insights []string
		want     string
	}{
		{"plain", []string{"Severity: Medium", "Zone: Zone B"}, "medium"},
		{"lowercase prefix", []string{"severity: HIGH"}, "high"},
		{"mixed case prefix", []string{"SeVeRiTy: critical"}, "critical"},
		{"whitespace", []string{"Severity:   low  "}, "low"},
		{"first match wins", []string{"Zone: Zone A", "Severity: High", "Severity: Low"}, "high"},
		{"no severity line", []string{"Zone: Zone A", "Source: camera"}, "low"},
		{"empty insights", nil, "low"},
		{"severity not a prefix", []string{"Overall Severity: High"}, "low"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParseSeverity(c.insights))
		})
	}
}

func TestParseSeverityIdempotent(t *testing.T) {
	insights := []string{"Severity: Medium"}
	first := ParseSeverity(insights)
	assert.Equal(t, first, ParseSeverity(insights))
}

func TestPushDeliversOnChangeOnly(t *testing.T) {
	f := New(nil, 0)

	var mu sync.Mutex
	var got []*types.AISummary
	unsubscribe := f.Subscribe(func(s *types.AISummary) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})
	defer unsubscribe()

	// Subscribe replays the current (absent) snapshot immediately.
	mu.Lock()
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
	mu.Unlock()

	snapshot := &types.AISummary{Summary: "calm", Insights: []string{"Severity: Low"}}
	f.Push(snapshot)

	// An equal snapshot must not fire again.
	f.Push(&types.AISummary{Summary: "calm", Insights: []string{"Severity: Low"}})

	changed := &types.AISummary{Summary: "surge", Insights: []string{"Severity: High"}}
	f.Push(changed)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, "calm", got[1].Summary)
	assert.Equal(t, "surge", got[2].Summary)
}

func TestPushNilClearsSnapshot(t *testing.T) {
	f := New(nil, 0)
	f.Push(&types.AISummary{Summary: "calm"})
	require.NotNil(t, f.Latest())

	f.Push(nil)
	assert.Nil(t, f.Latest(), "upstream deletion surfaces as an absent snapshot")
}

func TestLatestTracksLastDelivery(t *testing.T) {
	f := New(nil, 0)
	assert.Nil(t, f.Latest())

	f.Push(&types.AISummary{Summary: "calm"})
	require.NotNil(t, f.Latest())
	assert.Equal(t, "calm", f.Latest().Summary)
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	f := New(nil, 0)

	var mu sync.Mutex
	count := 0
	unsubscribe := f.Subscribe(func(*types.AISummary) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	f.Push(&types.AISummary{Summary: "one"})
	unsubscribe()
	unsubscribe() // second call is a no-op
	f.Push(&types.AISummary{Summary: "two"})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count, "replay plus one delivery, nothing after unsubscribe")
}

func TestSubscribeReplayNeverDeliversOutOfOrder(t *testing.T) {
	f := New(nil, time.Second)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 200; i++ {
			f.Push(&types.AISummary{Summary: fmt.Sprintf("s%03d", i)})
		}
	}()

	var mu sync.Mutex
	var got []string
	unsubscribe := f.Subscribe(func(s *types.AISummary) {
		mu.Lock()
		defer mu.Unlock()
		if s != nil {
			got = append(got, s.Summary)
		}
	})
	<-done
	unsubscribe()

	// The replay and every later delivery must arrive in publication order;
	// a replay racing a concurrent Push must not hand back an older snapshot
	// after a newer one was already delivered.
	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1], got[i], "delivery %d regressed from %s to %s", i, got[i-1], got[i])
	}
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	f := New(nil, 0)

	var mu sync.Mutex
	a, b := 0, 0
	ua := f.Subscribe(func(*types.AISummary) { mu.Lock(); a++; mu.Unlock() })
	defer ua()
	ub := f.Subscribe(func(*types.AISummary) { mu.Lock(); b++; mu.Unlock() })
	defer ub()

	f.Push(&types.AISummary{Summary: "update"})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)
}
