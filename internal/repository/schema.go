package repository

var schema = []string{
	`CREATE TABLE IF NOT EXISTS resources (
		name              TEXT PRIMARY KEY,
		kind              TEXT NOT NULL,
		total_available   DOUBLE PRECISION NOT NULL,
		current_available DOUBLE PRECISION NOT NULL,
		renewable         BOOLEAN NOT NULL,
		emission_factor   DOUBLE PRECISION NOT NULL DEFAULT 0,
		position          INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS consumers (
		id   BIGINT PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS consumer_resources (
		consumer_id   BIGINT NOT NULL REFERENCES consumers(id),
		resource_name TEXT NOT NULL REFERENCES resources(name),
		PRIMARY KEY (consumer_id, resource_name)
	)`,
}
