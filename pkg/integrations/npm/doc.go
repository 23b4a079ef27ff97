// Package npm looks up the latest published version of a package on the
// npm registry (https://registry.npmjs.org).
//
// The version is the one tagged "latest" in the package document's
// dist-tags, which is what `npm install <pkg>` resolves to.
//
//	client := npm.NewClient(cache.NewNullCache(), time.Hour)
//	latest, err := client.LatestVersion(ctx, "kojioka")
package npm
