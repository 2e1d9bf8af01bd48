package symbol

// Apply evaluates a Flag diacritic symbol against a flag state,
// implementing the six flag operators of the data model. It returns the
// (possibly unchanged) resulting state and whether the flag's accept
// condition held; ok=false means the caller must discard this search
// branch without producing a new state.
//
// Apply panics if s is not a Flag symbol; callers are expected to guard
// with s.IsFlag() first, since in the path enumeration engine this is
// only ever called on symbols already known to be epsilon-class flags.
func Apply(s Symbol, state FlagState) (FlagState, bool) {
	fk, key, value, hasValue, ok := s.Flag()
	if !ok {
		panic("symbol: Apply called on a non-flag symbol")
	}

	switch fk {
	case FlagUnify:
		stored, present := state.Get(key)
		if !present || testFlag(stored, value) {
			return state.Set(key, FlagValue{Positive: true, Value: value}), true
		}
		return state, false

	case FlagRequire:
		stored, present := state.Get(key)
		if hasValue {
			if present && testFlag(stored, value) {
				return state, true
			}
			return state, false
		}
		return state, present

	case FlagDisallow:
		stored, present := state.Get(key)
		if hasValue {
			if present && testFlag(stored, value) {
				return state, false
			}
			return state, true
		}
		return state, !present

	case FlagClear:
		return state.Delete(key), true

	case FlagPositive:
		return state.Set(key, FlagValue{Positive: true, Value: value}), true

	case FlagNegative:
		return state.Set(key, FlagValue{Positive: false, Value: value}), true
	}

	return state, true
}

// testFlag reports whether a stored (polarity, value) pair satisfies a
// queried value: true if the stored assertion is "equals queried" and
// holds, or "not-equals queried" and holds.
func testFlag(stored FlagValue, queried string) bool {
	if stored.Positive {
		return stored.Value == queried
	}
	return stored.Value != queried
}
