package update

import "fmt"

// ProductName is the name used in advisories.
const ProductName = "kojioka"

// Notice describes an available update.
type Notice struct {
	Package string // registry name that was looked up
	Current string // installed version
	Latest  string // version published on the registry
	Command string // how to upgrade
}

// String renders the one-line advisory.
func (n Notice) String() string {
	return fmt.Sprintf(
		"A new version (%s) of %s is available! You are currently using %s. "+
			"Update now to get the latest features and bug fixes: %s",
		n.Latest, ProductName, n.Current, n.Command)
}
