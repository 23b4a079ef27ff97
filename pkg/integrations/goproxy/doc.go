// Package goproxy looks up the latest released version of a Go module on
// the Go Module Proxy (https://proxy.golang.org).
//
// # Usage
//
//	client := goproxy.NewClient(cache.NewNullCache(), time.Hour)
//	latest, err := client.LatestVersion(ctx, "github.com/kojioka/kojioka-go")
//
// The version comes from the @latest endpoint, which reports the highest
// tagged release (or a pseudo-version when the module has no tags).
//
// # Path Escaping
//
// Module paths with uppercase letters are escaped per the module proxy
// protocol (uppercase becomes !lowercase).
package goproxy
