package ledger

import "strings"

// SavedToMarker prefixes the goal name embedded in a saving transaction's note.
const SavedToMarker = "saved_to:"

// UncategorizedLabel is reported for rows with neither a goal tag nor a category.
const UncategorizedLabel = "Uncategorized"

// SavedTo extracts the goal name following the first saved_to: marker in note.
// The name runs to the end of the note and is trimmed.
func SavedTo(note string) (string, bool) {
	idx := strings.Index(note, SavedToMarker)
	if idx < 0 {
		return "", false
	}
	name := strings.TrimSpace(note[idx+len(SavedToMarker):])
	if name == "" {
		return "", false
	}
	return name, true
}

// TagSavedTo appends a saved_to marker for goalName to note.
func TagSavedTo(note, goalName string) string {
	if note == "" {
		return SavedToMarker + goalName
	}
	return note + " " + SavedToMarker + goalName
}

// DisplayCategory resolves the label a row is reported under: the goal tag
// wins over the linked category name, which wins over Uncategorized.
func DisplayCategory(note, categoryName string) string {
	if name, ok := SavedTo(note); ok {
		return name
	}
	if categoryName != "" {
		return categoryName
	}
	return UncategorizedLabel
}
