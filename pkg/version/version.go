package version

// Version 由构建时 -ldflags "-X evtc/pkg/version.Version=..." 覆盖
var Version = "0.3.0-dev"
