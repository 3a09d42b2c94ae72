package domain

// ProjectNameMaxLen is the maximum project name length in runes.
const ProjectNameMaxLen = 100

// CharityProject is a fundraising target that absorbs donations until its
// full amount is reached.
type CharityProject struct {
	Funding
	Name        string
	Description string
}

// NewProject is the input for creating a charity project.
type NewProject struct {
	Name        string
	Description string
	FullAmount  int64
}

// ProjectPatch carries the editable project fields. Nil means unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
	FullAmount  *int64
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.FullAmount == nil
}
