package config

const (
	// Configuration file paths
	ConfigPathGame       = "configs/game.yaml"
	ConfigPathGameSchema = "configs/schemas/game.schema.json"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)
