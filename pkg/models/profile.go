package models

// RegionChoice is what the region picker records: the region section
// and the country row the user tapped inside it.
type RegionChoice struct {
	Region  string `json:"region"`
	Country string `json:"country"`
	Flag    string `json:"flag,omitempty"`
}

// UserProfile accumulates questionnaire answers. The With* methods
// return a copy so each flow step hands a new value to the next one.
type UserProfile struct {
	Gender     Gender       `json:"gender"`
	Region     RegionChoice `json:"region"`
	Occupation Occupation   `json:"occupation"`
}

func NewUserProfile() UserProfile {
	return UserProfile{
		Gender:     GenderUnspecified,
		Occupation: OccupationDeveloper,
	}
}

func (p UserProfile) WithRegion(r RegionChoice) UserProfile {
	p.Region = r
	return p
}

func (p UserProfile) WithGender(g Gender) UserProfile {
	p.Gender = g
	return p
}

func (p UserProfile) WithOccupation(o Occupation) UserProfile {
	p.Occupation = o
	return p
}
