package models

// Unit is a named pair of optional header/source artifacts.
type Unit struct {
	// Name is the unit identifier (file name without extension, case-sensitive)
	Name string

	// HeaderPath is the header artifact path, empty when absent
	HeaderPath string

	// SourcePath is the source artifact path, empty when absent
	SourcePath string
}

// HasHeader reports whether the header artifact exists.
func (u *Unit) HasHeader() bool {
	return u.HeaderPath != ""
}

// HasSource reports whether the source artifact exists.
func (u *Unit) HasSource() bool {
	return u.SourcePath != ""
}

// Exists reports whether the unit is observable at all.
func (u *Unit) Exists() bool {
	return u.HasHeader() || u.HasSource()
}
