package tabular

// TableCounters records the last allocated ID per entity. Deleting rows
// from an entity table never touches this file, so ID sequences only
// move forward.
var TableCounters = Table{
	File:   "counters.csv",
	Header: []string{"entity", "last_id"},
}

// Counters is the per-entity ID high-water mark over a Store.
type Counters struct {
	store *Store
}

// NewCounters returns Counters backed by store.
func NewCounters(store *Store) *Counters {
	return &Counters{store: store}
}

// Last returns the last ID recorded for entity, or "" when none was.
func (c *Counters) Last(entity string) (string, error) {
	rows, err := c.store.ReadAll(TableCounters)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if row[0] == entity {
			return row[1], nil
		}
	}
	return "", nil
}

// Set records id as the last allocated ID for entity.
func (c *Counters) Set(entity, id string) error {
	rows, err := c.store.ReadAll(TableCounters)
	if err != nil {
		return err
	}
	updated := false
	for _, row := range rows {
		if row[0] == entity {
			row[1] = id
			updated = true
			break
		}
	}
	if !updated {
		rows = append(rows, []string{entity, id})
	}
	return c.store.WriteAll(TableCounters, rows)
}
