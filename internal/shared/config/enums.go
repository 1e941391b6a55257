//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package config

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

// CachePolicy decides what a run does when the novelty cache file does not exist yet
// ENUM(strict,bootstrap)
type CachePolicy string

// SettingsBackend selects where per-guild settings are stored
// ENUM(file,sqlite,postgres)
type SettingsBackend string
