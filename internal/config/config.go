// Package config holds the service configuration, processed from the
// environment with envconfig.
package config

import (
	"time"

	"github.com/keyforge-games/keyforge/internal/database"
)

type Config struct {
	// Logging all requests at debug level
	Debug bool `envconfig:"KEYFORGE_DEBUG" default:"false"`

	// Number of items in the repository read caches
	CacheSize int `envconfig:"KEYFORGE_CACHE_SIZE" default:"1024"`

	// Port for the websocket gateway and health check
	Port string `envconfig:"KEYFORGE_PORT" default:"8080"`

	// profile port
	ProfPort string `envconfig:"KEYFORGE_PROF_PORT" default:"8888"`

	// Hard deadline for a single typing test
	TimeBudget time.Duration `envconfig:"KEYFORGE_TIME_BUDGET" default:"60s"`

	// Number of random words drawn for a stream-mode test
	StreamWordCount int `envconfig:"KEYFORGE_STREAM_WORD_COUNT" default:"80"`

	// Soft cap on typed tokens before a freeform test completes
	FreeformTokenCap int `envconfig:"KEYFORGE_FREEFORM_TOKEN_CAP" default:"50"`

	// Seconds counted down before a multiplayer race goes active
	CountdownTicks int `envconfig:"KEYFORGE_COUNTDOWN_TICKS" default:"5"`

	// Cadence of live stat snapshots while a test is running
	SnapshotInterval time.Duration `envconfig:"KEYFORGE_SNAPSHOT_INTERVAL" default:"100ms"`

	// Word list source and its cache lifetime
	DictionaryURL string        `envconfig:"KEYFORGE_DICTIONARY_URL" default:"https://raw.githubusercontent.com/dwyl/english-words/refs/heads/master/words_dictionary.json"`
	DictionaryTTL time.Duration `envconfig:"KEYFORGE_DICTIONARY_TTL" default:"168h"`

	Db database.Config
}
