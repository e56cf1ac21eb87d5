package domain

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new file appeared in the documents folder.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates an existing file was rewritten.
	ChangeUpdated

	// ChangeDeleted indicates a file was removed.
	ChangeDeleted
)

// String returns the string representation.
func (t ChangeType) String() string {
	switch t {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// DocumentChange is a change event from the documents folder watcher.
// Used to trigger incremental index runs.
type DocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the absolute path of the affected file.
	Path string
}
