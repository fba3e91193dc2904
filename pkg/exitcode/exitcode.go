// Package exitcode provides standardized exit codes for iconcheck
package exitcode

// Exit codes for the iconcheck CLI
const (
	Success       = 0
	ChecksFailed  = 1
	ConfigError   = 2
	ManifestError = 3
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case ChecksFailed:
		return "Consistency checks failed"
	case ConfigError:
		return "Configuration error"
	case ManifestError:
		return "Manifest error"
	default:
		return "Unknown error"
	}
}
