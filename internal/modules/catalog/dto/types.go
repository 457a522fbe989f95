package dto

// CatalogOutput is the read projection of the option lists.
type CatalogOutput struct {
	Programs   []string
	Students   []string
	Therapists []string
	Degraded   bool
	// Empty flags a successful fetch whose lists are all blank, worth a
	// warning in the status bar and the catalog command.
	Empty bool
}

// ProgramSearchOutput is the add-program picker's view: the filtered catalog
// plus whether the typed term already names a known program.
type ProgramSearchOutput struct {
	Matches    []string
	ExactMatch bool
}
