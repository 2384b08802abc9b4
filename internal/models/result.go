package models

// CreateResult describes what CreateUnit changed.
type CreateResult struct {
	Name            string
	HeaderCreated   bool
	SourceCreated   bool
	Registered      bool
	ManifestMissing bool
}

// RenameResult describes what RenameUnit changed.
type RenameResult struct {
	OldName        string
	NewName        string
	HeaderRenamed  bool
	SourceRenamed  bool
	EntryRenamed   bool
	RewrittenFiles []string
}

// Touched reports whether the rename found anything to act on.
func (r *RenameResult) Touched() bool {
	return r.HeaderRenamed || r.SourceRenamed || r.EntryRenamed || len(r.RewrittenFiles) > 0
}

// DeleteResult describes what DeleteUnit changed.
type DeleteResult struct {
	Name           string
	HeaderDeleted  bool
	SourceDeleted  bool
	EntryRemoved   bool
	RewrittenFiles []string
}

// Touched reports whether the delete found anything to act on.
func (r *DeleteResult) Touched() bool {
	return r.HeaderDeleted || r.SourceDeleted || r.EntryRemoved || len(r.RewrittenFiles) > 0
}

// ImportResult lists the units newly registered in the makefile.
type ImportResult struct {
	Imported []string
	Skipped  []string
}
