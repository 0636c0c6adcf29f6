package utils

import "runtime/debug"

// applicationVersion is overridden at build time via -ldflags.
var applicationVersion = ""

// developmentVersionLabel is reported when no version information is available.
const developmentVersionLabel = "dev"

// GetApplicationVersion returns the version embedded at build time, the module
// version recorded in build info, or a development placeholder.
func GetApplicationVersion() string {
	if applicationVersion != "" {
		return applicationVersion
	}
	if buildInformation, buildInfoAvailable := debug.ReadBuildInfo(); buildInfoAvailable {
		moduleVersion := buildInformation.Main.Version
		if moduleVersion != "" && moduleVersion != "(devel)" {
			return moduleVersion
		}
	}
	return developmentVersionLabel
}
