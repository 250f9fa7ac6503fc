package arxml

// WalkAction tells Walk how to continue after visiting an element.
type WalkAction int

const (
	// Continue descends into the element's children.
	Continue WalkAction = iota
	// SkipChildren moves on to the next sibling without descending.
	SkipChildren
	// Stop ends the walk.
	Stop
)

// WalkFunc is called once per element. depth is 0 for the element Walk was
// started on.
type WalkFunc func(el *Element, depth int) WalkAction

// Walk visits e and its descendants depth-first, in pre-order (document
// order). It reports whether the walk ran to completion.
func Walk(e *Element, fn WalkFunc) bool {
	return walk(e, 0, fn)
}

func walk(e *Element, depth int, fn WalkFunc) bool {
	switch fn(e, depth) {
	case Stop:
		return false
	case SkipChildren:
		return true
	}
	for _, child := range e.Children {
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// FindAll returns every descendant of e (e itself excluded) matching the
// predicate, in document order. Matching elements are not searched further
// when prune is true.
func FindAll(e *Element, match func(*Element) bool, prune bool) []*Element {
	var found []*Element
	Walk(e, func(el *Element, depth int) WalkAction {
		if depth == 0 || !match(el) {
			return Continue
		}
		found = append(found, el)
		if prune {
			return SkipChildren
		}
		return Continue
	})
	return found
}

// ChildrenNamed returns the direct children of e with the given name.
func ChildrenNamed(e *Element, space, local string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		if child.Is(space, local) {
			out = append(out, child)
		}
	}
	return out
}
