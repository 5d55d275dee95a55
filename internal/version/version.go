package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/andybarron/preferences-go/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/andybarron/preferences-go/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/andybarron/preferences-go/internal/version.Date={{.Date}}
)
