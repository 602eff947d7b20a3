package domain

// PackageName identifies a package in the package database's namespace.
type PackageName = InternedString

// NewPackageName interns a package name.
func NewPackageName(name string) PackageName {
	return NewInternedString(name)
}

// PackageNames interns a list of package names, preserving order.
func PackageNames(names ...string) []PackageName {
	res := make([]PackageName, len(names))
	for i, n := range names {
		res[i] = NewPackageName(n)
	}
	return res
}

// OrGroup is a dependency satisfied by any one of its alternatives.
// Alternatives are kept in the order the package declares them.
type OrGroup []PackageName

// First returns the first declared alternative, or false for an empty group.
func (g OrGroup) First() (PackageName, bool) {
	if len(g) == 0 {
		return PackageName{}, false
	}
	return g[0], true
}

// PackageRecord is the installed metadata of a single package.
type PackageRecord struct {
	// Name is the package's database name.
	Name PackageName

	// InstalledFiles lists the absolute host paths the package owns,
	// including directories.
	InstalledFiles []string

	// Dependencies is the ordered list of OR-groups the package depends on.
	Dependencies []OrGroup

	// Installed reports whether the package is unpacked on the host.
	Installed bool
}
