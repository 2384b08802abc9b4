package models

// Profile selects the compiler flags written to the makefile
type Profile string

const (
	ProfileDebug   Profile = "debug"
	ProfileRelease Profile = "release"
)

// IsValid checks if the profile is known
func (p Profile) IsValid() bool {
	switch p {
	case ProfileDebug, ProfileRelease:
		return true
	default:
		return false
	}
}

// String returns the string representation of Profile
func (p Profile) String() string {
	return string(p)
}
