package validate

import "sort"

// ErrorTree maps validation issues back to the inputs they belong to. It is
// an arbitrary-depth tree keyed by path segments, so no path shape is ever
// silently dropped; the two lookups forms actually render (a top-level
// field and a stops[i].field sub-form entry) have dedicated accessors.
//
// The zero shape comes from MapIssues. As the user edits an input the form
// clears exactly that input's entry with Clear, so the inline error
// disappears before the next submit.
type ErrorTree struct {
	message  string
	children map[Segment]*ErrorTree
}

// MapIssues builds an ErrorTree from one validation pass. When several
// issues land on the same path the first one wins, matching the one-issue-
// per-field contract of the schemas.
func MapIssues(issues Issues) *ErrorTree {
	t := &ErrorTree{}
	for _, issue := range issues {
		if t.At(issue.Path...) == "" {
			t.Add(issue.Path, issue.Message)
		}
	}
	return t
}

// Add records a message at the given path. An empty path is ignored.
func (t *ErrorTree) Add(path Path, message string) {
	if len(path) == 0 {
		return
	}
	node := t
	for _, seg := range path {
		if node.children == nil {
			node.children = make(map[Segment]*ErrorTree)
		}
		child, ok := node.children[seg]
		if !ok {
			child = &ErrorTree{}
			node.children[seg] = child
		}
		node = child
	}
	node.message = message
}

// At returns the message recorded at exactly the given path, or "".
func (t *ErrorTree) At(path ...Segment) string {
	node := t
	for _, seg := range path {
		child, ok := node.children[seg]
		if !ok {
			return ""
		}
		node = child
	}
	return node.message
}

// Field returns the message for a top-level field, e.g. Field("trainId").
func (t *ErrorTree) Field(name string) string {
	return t.At(Field(name))
}

// Stop returns the message for a field of the i-th stop sub-form.
func (t *ErrorTree) Stop(i int, field string) string {
	return t.At(Field("stops"), Index(i), Field(field))
}

// Clear removes the entry at exactly the given path and nothing else.
// Clearing a path with no entry is a no-op.
func (t *ErrorTree) Clear(path ...Segment) {
	if len(path) == 0 {
		return
	}
	node := t
	for _, seg := range path[:len(path)-1] {
		child, ok := node.children[seg]
		if !ok {
			return
		}
		node = child
	}
	last := path[len(path)-1]
	child, ok := node.children[last]
	if !ok {
		return
	}
	child.message = ""
	if len(child.children) == 0 {
		delete(node.children, last)
	}
}

// Empty reports whether no message is recorded anywhere in the tree.
func (t *ErrorTree) Empty() bool {
	if t.message != "" {
		return false
	}
	for _, child := range t.children {
		if !child.Empty() {
			return false
		}
	}
	return true
}

// Walk visits every recorded message in deterministic path order, for
// rendering all of a form's errors at once.
func (t *ErrorTree) Walk(fn func(path Path, message string)) {
	t.walk(nil, fn)
}

func (t *ErrorTree) walk(prefix Path, fn func(Path, string)) {
	if t.message != "" {
		path := make(Path, len(prefix))
		copy(path, prefix)
		fn(path, t.message)
	}
	segs := make([]Segment, 0, len(t.children))
	for seg := range t.children {
		segs = append(segs, seg)
	}
	sort.Slice(segs, func(i, j int) bool {
		a, b := segs[i], segs[j]
		if a.IsIndex() != b.IsIndex() {
			return !a.IsIndex()
		}
		if a.IsIndex() {
			return a.Index < b.Index
		}
		return a.Name < b.Name
	})
	for _, seg := range segs {
		t.children[seg].walk(append(prefix, seg), fn)
	}
}
