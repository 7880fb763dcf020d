package dashboard

// Selection is the ordered set of row ids checked in the list view.
// It is not safe for concurrent use; Dashboard guards it.
type Selection struct {
	ids []string
}

// Set replaces the selection with ids, dropping blanks and duplicates.
func (s *Selection) Set(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	s.ids = next
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// IDs returns a copy of the selected ids.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len is the number of selected rows.
func (s *Selection) Len() int {
	return len(s.ids)
}

// CanBulkAction reports whether a bulk action has anything to act on.
func (s *Selection) CanBulkAction() bool {
	return len(s.ids) > 0
}
