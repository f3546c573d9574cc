// Package version reports the build a railway binary came from.
//
// Version, commit and build time are set at link time, or read from the
// module's embedded VCS stamp when left empty:
//
//	go build -ldflags "-X github.com/kbukum/railway/version.Version=1.0.0"
package version
