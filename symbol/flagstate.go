package symbol

// FlagValue is the (polarity, value) pair stored for one flag key.
// Positive polarity means "this key is currently asserted to equal
// Value"; negative means "asserted to not equal Value".
type FlagValue struct {
	Positive bool
	Value    string
}

// flagNode is one link of the persistent association list backing
// FlagState. Flag-state cardinality is small in practice (a few dozen
// keys at most per the data model), so a linked list gives cheap
// insert-returning-a-new-handle semantics without the complexity of a
// hash-array-mapped trie, while keeping every branch's state immutable
// and independent of its siblings.
type flagNode struct {
	key   string
	value FlagValue
	next  *flagNode
}

// FlagState is an immutable mapping from flag key to (polarity, value).
// The zero value is the empty state. Every mutating operation returns a
// new FlagState; the receiver is left untouched, so many branches of a
// path search can share structure cheaply.
type FlagState struct {
	head *flagNode
}

// Get returns the value stored for key, if any.
func (f FlagState) Get(key string) (FlagValue, bool) {
	for n := f.head; n != nil; n = n.next {
		if n.key == key {
			return n.value, true
		}
	}
	return FlagValue{}, false
}

// Set returns a new FlagState with key bound to value, leaving f
// unchanged. If key was already bound, the old binding is shadowed by
// the new node rather than removed in place, so any other FlagState
// value still holding f's old head continues to see the old binding.
func (f FlagState) Set(key string, value FlagValue) FlagState {
	return FlagState{head: &flagNode{key: key, value: value, next: f.head}}
}

// Delete returns a new FlagState with key unbound, leaving f unchanged.
// If key was not bound, Delete returns f itself.
//
// A single chain can hold more than one node for the same key (an
// earlier Set shadowed by a later one), so Delete rebuilds the chain
// dropping every node for key rather than just the first — otherwise an
// older, shadowed binding would resurface once the newest one is
// unlinked.
func (f FlagState) Delete(key string) FlagState {
	if _, ok := f.Get(key); !ok {
		return f
	}

	var kept []flagNode
	for n := f.head; n != nil; n = n.next {
		if n.key != key {
			kept = append(kept, flagNode{key: n.key, value: n.value})
		}
	}

	out := FlagState{}
	for i := len(kept) - 1; i >= 0; i-- {
		node := kept[i]
		node.next = out.head
		out.head = &node
	}
	return out
}
