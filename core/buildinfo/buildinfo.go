package buildinfo

// Set at build time via -ldflags:
//
//	-X 'github.com/jamshidbekman/rivojbot/core/buildinfo.Version=v1.0.0'
//	-X 'github.com/jamshidbekman/rivojbot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/jamshidbekman/rivojbot/core/buildinfo.Date=2025-08-30T12:00:00Z'
var (
	Version = "dev"
	Commit  = "local"
	Date    = ""
)

// String renders "version (commit, date)" for CLI output.
func String() string {
	s := Version + " (" + Commit
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
