package config

import "time"

// Embed colors
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31
)

// Database
const (
	DefaultQueryTimeout = 10 * time.Second
	ImportQueryTimeout  = 5 * time.Minute
)

// Commands
const (
	// CommandExecutionTimeout covers quick commands. /done runs the browser
	// check and uses the verifier timeout plus VerifyCommandSlack instead.
	CommandExecutionTimeout = 10 * time.Second
	VerifyCommandSlack      = 15 * time.Second
	SlowCommandThreshold    = 5 * time.Second

	DMSendTimeout = 5 * time.Second
	// MaxCookieUploadBytes caps admin cookie uploads.
	MaxCookieUploadBytes = 1 << 20
	CookieUploadFilename = "cookies.json"
)

// Verifier
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	LikedBySuffix    = "liked_by/"
)

const Version = "1.0.0"
