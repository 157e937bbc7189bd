package constants

import "time"

const (
	// MaxUploadBytes caps the raw upload before the decoder ever runs.
	MaxUploadBytes = 32 << 20
	// MaxDecompressedBytes is the zip-bomb ceiling handed to the decoder.
	MaxDecompressedBytes = 256 << 20
)

const (
	GW2APITimeout   = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	RecentReportsLimit = 50
)
