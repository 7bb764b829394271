package version

import (
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/NeuralTrust/GateFilters/pkg/version.Version=1.2.0"
var (
	Version   = "0.1.0"
	AppName   = "GateFilters"
	BuildDate = "unknown"
)

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Fields flattens Info for the startup log entry.
func (i Info) Fields() map[string]interface{} {
	return map[string]interface{}{
		"app":        i.AppName,
		"version":    i.Version,
		"build_date": i.BuildDate,
		"go_version": i.GoVersion,
		"platform":   i.Platform,
	}
}

// Via is the value the gateway appends to the Via header of proxied requests.
func Via() string {
	return "1.1 " + AppName + "/" + Version
}
