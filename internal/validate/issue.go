package validate

import "strings"

// Issue is one validation failure: a message and the path of the input it
// belongs to.
type Issue struct {
	Path    Path
	Message string
}

// Issues is the complete result of one validation pass. A nil or empty
// Issues means the value passed. Issues from one pass are never
// short-circuited: every failing field contributes its issue.
type Issues []Issue

// Empty reports whether the validation pass found no failures.
func (is Issues) Empty() bool {
	return len(is) == 0
}

// At returns the message of the first issue at exactly the given path,
// or "" when none is recorded there.
func (is Issues) At(path ...Segment) string {
	for _, issue := range is {
		if issue.Path.Equal(Path(path)) {
			return issue.Message
		}
	}
	return ""
}

// Summary joins all messages into one line for logging and error wrapping.
func (is Issues) Summary() string {
	msgs := make([]string, len(is))
	for i, issue := range is {
		msgs[i] = issue.Path.String() + ": " + issue.Message
	}
	return strings.Join(msgs, "; ")
}

// add appends an issue at the given path.
func (is *Issues) add(message string, path ...Segment) {
	*is = append(*is, Issue{Path: path, Message: message})
}
