package settings

// Migration moves the value stored under an obsolete key into an entry.
// Migrations cover static keys; dynamically keyed settings migrate at
// the call sites that know their parts.
type Migration struct {
	// OldKey is the raw key the value used to live under.
	OldKey string
	// Entry receives the value.
	Entry Entry
	// RemoveOld deletes the obsolete key after a successful copy.
	RemoveOld bool
	// Description says what the migration is for.
	Description string
}

// MigrationResult reports the outcome of one migration.
type MigrationResult struct {
	Migration
	// Applied reports whether a value was found and copied.
	Applied bool
	// Err is set when the migration could not run.
	Err error
}

// Migrator applies registered key migrations in order.
type Migrator struct {
	migrations []Migration
}

// NewMigrator creates an empty migrator.
func NewMigrator() *Migrator {
	return &Migrator{}
}

// Register adds a migration to run on the next Apply.
func (m *Migrator) Register(mi Migration) {
	m.migrations = append(m.migrations, mi)
}

// Apply runs every registered migration and reports per-migration
// outcomes. A migration whose old key holds no value is skipped, and a
// failing migration does not stop the others. Entries that already hold
// a value are not overwritten.
func (m *Migrator) Apply() []MigrationResult {
	results := make([]MigrationResult, 0, len(m.migrations))
	for _, mi := range m.migrations {
		res := MigrationResult{Migration: mi}
		exists, err := mi.Entry.Exists()
		switch {
		case err != nil:
			res.Err = err
		case exists:
			// keep the value already written under the new key
		default:
			res.Applied, res.Err = mi.Entry.CopyValueFromKey(mi.OldKey, mi.RemoveOld)
		}
		results = append(results, res)
	}
	return results
}
