// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for calibrations and their cameras.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calibrations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		scene TEXT NOT NULL,
		baseline TEXT NOT NULL,
		gstreamer_pipeline TEXT NOT NULL,
		resolution TEXT NOT NULL,
		program_name TEXT NOT NULL,
		program_version TEXT NOT NULL,
		platform_recording TEXT NOT NULL,
		platform_calibration TEXT NOT NULL,
		notes TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cameras (
		calibration_id TEXT NOT NULL,
		position_index INTEGER NOT NULL,
		name TEXT NOT NULL,
		model TEXT NOT NULL,
		serial_number TEXT NOT NULL,
		position TEXT NOT NULL,
		distortion INTEGER NOT NULL,
		in_focus INTEGER NOT NULL,
		fov TEXT NOT NULL,
		PRIMARY KEY (calibration_id, position_index),
		FOREIGN KEY (calibration_id) REFERENCES calibrations(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_calibrations_date ON calibrations(date);
	`

	_, err := d.db.Exec(schema)
	return err
}
