package main

import (
	"os"
	"runtime/debug"

	"github.com/gigurra/bapple/cmd/info"
	"github.com/gigurra/bapple/cmd/play"
)

func main() {
	if err := play.Cmd(appVersion(), info.Cmd()).Execute(); err != nil {
		os.Exit(1)
	}
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
