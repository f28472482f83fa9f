package game

import "testing"

func TestListenersFanOutInOrder(t *testing.T) {
	var order []string
	a := ListenerFunc(func(e Event) { order = append(order, "a:"+e.Kind.String()) })
	b := &recorder{}
	Listeners{a, b}.OnEvent(Event{Kind: EventLifeLost})

	if len(order) != 1 || order[0] != "a:life_lost" {
		t.Errorf("func listener saw %v", order)
	}
	if len(b.events) != 1 || b.events[0].Kind != EventLifeLost {
		t.Errorf("recorder saw %v", b.events)
	}
}

func TestEventKindNames(t *testing.T) {
	if got := EventKind(99).String(); got != "unknown" {
		t.Errorf("out of range kind = %q", got)
	}
	for k := EventDotCollected; k <= EventLevelStarted; k++ {
		if k.String() == "unknown" || k.String() == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
