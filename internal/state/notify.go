package state

// ChangeKind identifies what kind of change a list went through
type ChangeKind int

const (
	// Reset means the whole collection was replaced
	Reset ChangeKind = iota
	RowsInserted
	RowsRemoved
	// DataChanged means fields of one row changed in place
	DataChanged
	CountChanged
	FocusedWindowChanged
)

func (k ChangeKind) String() string {
	switch k {
	case Reset:
		return "reset"
	case RowsInserted:
		return "inserted"
	case RowsRemoved:
		return "removed"
	case DataChanged:
		return "changed"
	case CountChanged:
		return "count"
	case FocusedWindowChanged:
		return "focused"
	default:
		return "unknown"
	}
}

// Field names a row attribute a DataChanged notification is scoped to
type Field string

const (
	FieldIsFocused      Field = "isFocused"
	FieldIsUrgent       Field = "isUrgent"
	FieldIsActive       Field = "isActive"
	FieldActiveWindowID Field = "activeWindowId"
	FieldIconPath       Field = "iconPath"
)

// Change is a single notification. Row is -1 for collection-wide changes.
// ID is the id of the row's window or workspace; on RowsRemoved the row is
// already gone, so ID is the only way to tell which one it was.
// A nil Fields slice on DataChanged means every field may have changed.
type Change struct {
	Kind   ChangeKind
	Row    int
	ID     uint64
	Fields []Field
}

// HasField reports whether the change may affect field f
func (c Change) HasField(f Field) bool {
	if c.Fields == nil {
		return true
	}
	for _, field := range c.Fields {
		if field == f {
			return true
		}
	}
	return false
}

type subscription struct {
	id   int
	kind ChangeKind
	all  bool
	fn   func(Change)
}

// Notifier fans change notifications out to subscribers.
// Callbacks run synchronously on the goroutine that mutated the list.
type Notifier struct {
	subs   []subscription
	nextID int
}

// Subscribe registers fn for every change. The returned func unsubscribes.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	return n.add(subscription{all: true, fn: fn})
}

// SubscribeKind registers fn for changes of one kind only
func (n *Notifier) SubscribeKind(kind ChangeKind, fn func(Change)) func() {
	return n.add(subscription{kind: kind, fn: fn})
}

func (n *Notifier) add(s subscription) func() {
	n.nextID++
	s.id = n.nextID
	n.subs = append(n.subs, s)

	id := s.id
	return func() {
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *Notifier) emit(c Change) {
	if len(n.subs) == 0 {
		return
	}
	// Copy so callbacks may unsubscribe
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	for _, sub := range subs {
		if sub.all || sub.kind == c.Kind {
			sub.fn(c)
		}
	}
}

func (n *Notifier) emitRow(kind ChangeKind, row int, id uint64, fields ...Field) {
	n.emit(Change{Kind: kind, Row: row, ID: id, Fields: fields})
}

func (n *Notifier) emitAll(kind ChangeKind) {
	n.emit(Change{Kind: kind, Row: -1})
}
