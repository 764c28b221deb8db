package sim

import "testing"

func TestBusFlushOrder(t *testing.T) {
	bus := NewBus()
	var seen []string
	bus.Subscribe(func(e Event) { seen = append(seen, "all:"+e.Kind.String()) })
	bus.SubscribeKind(EventStreakBroken, func(e Event) { seen = append(seen, "kind:"+e.Kind.String()) })

	bus.SetTick(9)
	bus.Push(Event{Kind: EventStreakChanged})
	bus.Push(Event{Kind: EventStreakBroken})

	if len(seen) != 0 {
		t.Fatal("handlers ran before Flush")
	}
	if bus.Pending() != 2 {
		t.Errorf("Pending() = %d, expected 2", bus.Pending())
	}

	out := bus.Flush()
	expected := []string{"all:streak_changed", "all:streak_broken", "kind:streak_broken"}
	if len(seen) != len(expected) {
		t.Fatalf("handler calls = %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Fatalf("handler calls = %v, expected %v", seen, expected)
		}
	}
	if len(out) != 2 || out[0].Tick != 9 {
		t.Errorf("Flush() = %+v, expected 2 events stamped with tick 9", out)
	}
	if bus.Flush() != nil {
		t.Error("second Flush() should return nil")
	}
}
