package state

import "testing"

func TestNotifier_SubscribeKind(t *testing.T) {
	var n Notifier
	var counts, all int

	n.SubscribeKind(CountChanged, func(c Change) { counts++ })
	n.Subscribe(func(c Change) { all++ })

	n.emitAll(CountChanged)
	n.emitAll(Reset)
	n.emitRow(DataChanged, 2, 7, FieldIsUrgent)

	if counts != 1 {
		t.Errorf("kind subscriber called %d times, want 1", counts)
	}
	if all != 3 {
		t.Errorf("catch-all subscriber called %d times, want 3", all)
	}
}

func TestNotifier_Unsubscribe(t *testing.T) {
	var n Notifier
	calls := 0

	cancel := n.Subscribe(func(c Change) { calls++ })
	n.emitAll(Reset)
	cancel()
	n.emitAll(Reset)

	if calls != 1 {
		t.Errorf("called %d times, want 1", calls)
	}
}

func TestNotifier_UnsubscribeDuringEmit(t *testing.T) {
	var n Notifier
	first, second := 0, 0

	var cancel func()
	cancel = n.Subscribe(func(c Change) {
		first++
		cancel()
	})
	n.Subscribe(func(c Change) { second++ })

	n.emitAll(Reset)
	n.emitAll(Reset)

	if first != 1 {
		t.Errorf("first called %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("second called %d times, want 2", second)
	}
}

func TestChange_HasField(t *testing.T) {
	all := Change{Kind: DataChanged, Row: 0}
	if !all.HasField(FieldIsUrgent) {
		t.Error("nil Fields should match every field")
	}

	scoped := Change{Kind: DataChanged, Row: 0, Fields: []Field{FieldIsFocused}}
	if !scoped.HasField(FieldIsFocused) || scoped.HasField(FieldIsUrgent) {
		t.Error("scoped change matched the wrong fields")
	}
}

func TestChangeKind_String(t *testing.T) {
	if Reset.String() != "reset" || FocusedWindowChanged.String() != "focused" {
		t.Error("unexpected ChangeKind names")
	}
	if ChangeKind(99).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}
