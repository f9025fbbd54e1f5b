package httpx

// ScanProfile defines how much metadata httpx prints per live host.
type ScanProfile string

const (
	// ProfilePlain prints one URL per live host.
	ProfilePlain ScanProfile = "plain"

	// ProfileBasic adds status code, title and web server.
	ProfileBasic ScanProfile = "basic"

	// ProfileTech adds technology detection and network fingerprinting.
	ProfileTech ScanProfile = "tech"
)

// ProfileConfig defines the httpx flags and metadata for a scan profile.
type ProfileConfig struct {
	Flags       []string
	Description string
}

// Profiles maps each ScanProfile to its configuration.
var Profiles = map[ScanProfile]ProfileConfig{
	ProfilePlain: {
		Flags:       []string{},
		Description: "Live URLs only",
	},

	ProfileBasic: {
		Flags: []string{
			"-sc",     // Status code
			"-title",  // Page title
			"-server", // Web server
			"-ip",     // IP address
		},
		Description: "Live URLs with essential metadata",
	},

	ProfileTech: {
		Flags: []string{
			"-sc", "-title", "-server",
			"-td",     // Tech detection (Wappalyzer)
			"-ip", "-cname",
			"-cdn",
		},
		Description: "Live URLs with technology detection",
	},
}

// captureFlags are appended when visual captures are requested.
var captureFlags = []string{
	"-ss",  // Screenshot
	"-esb", // Exclude screenshot bytes from output
}

// GetProfile returns the ProfileConfig for a given ScanProfile.
// Returns ProfilePlain if the profile doesn't exist.
func GetProfile(profile ScanProfile) ProfileConfig {
	if cfg, exists := Profiles[profile]; exists {
		return cfg
	}
	return Profiles[ProfilePlain]
}
