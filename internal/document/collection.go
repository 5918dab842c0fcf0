package document

// Entry is any record held in a Document collection.
type Entry interface {
	EntryID() string
}

// Add returns a new collection with e appended after the existing entries.
func Add[E Entry](collection []E, e E) []E {
	out := make([]E, len(collection), len(collection)+1)
	copy(out, collection)
	return append(out, e)
}

// Remove returns a new collection without the entry whose id matches.
// When no entry matches the result is equal to the input.
func Remove[E Entry](collection []E, id string) []E {
	out := make([]E, 0, len(collection))
	for _, e := range collection {
		if e.EntryID() != id {
			out = append(out, e)
		}
	}
	return out
}

// Update returns a new collection in which the entry whose id matches is replaced by set(entry).
// If set reports false the entry is kept as it was. Position and all other entries are unchanged.
func Update[E Entry](collection []E, id string, set func(E) (E, bool)) []E {
	out := make([]E, len(collection))
	copy(out, collection)
	for i := range out {
		if out[i].EntryID() != id {
			continue
		}
		if updated, ok := set(out[i]); ok {
			out[i] = updated
		}
	}
	return out
}

// Contains reports whether an entry with id is in collection.
func Contains[E Entry](collection []E, id string) bool {
	for _, e := range collection {
		if e.EntryID() == id {
			return true
		}
	}
	return false
}
