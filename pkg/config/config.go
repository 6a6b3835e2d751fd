package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	Source            string // location of the results (directory or http(s) base url)
	WaitForServices   string // duration to wait for a remote source to be ready
	QuotedFields      bool   // if true, race files are split with quoted field support
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // text vs json
	LogConfig         string // path to log config file (zapfilter rules)
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry ("stdout" for console exporters)
	ServerAddr        string // listen addr for the web server
	Watch             bool   // reload manifest when the manifest file changes
	Race              string // race to open on start (browse)
	Search            string // search term (check manifest)
)

const (
	ManifestName = "manifest.json" // fixed relative path of the manifest
	RaceParam    = "race"          // query parameter holding the active race
)

// Config holds the values needed to set up the race data access
type Config struct {
	Source          string
	WaitForServices string
	QuotedFields    bool
}

// FromGlobals collects the processed config values
func FromGlobals() Config {
	return Config{
		Source:          Source,
		WaitForServices: WaitForServices,
		QuotedFields:    QuotedFields,
	}
}
