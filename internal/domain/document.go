package domain

// Entity categories recognised by the extractor.
const (
	EntityPeople        = "people"
	EntityOrganizations = "organizations"
	EntityLocations     = "locations"
)

// KeyEntities groups notable names found in an article. Each list holds at most
// five unique entries in discovery order.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// NewKeyEntities returns entities with every category initialised to an empty list.
func NewKeyEntities() KeyEntities {
	return KeyEntities{
		People:        []string{},
		Organizations: []string{},
		Locations:     []string{},
	}
}

// Category returns a pointer to the list backing the named category, or nil.
func (k *KeyEntities) Category(name string) *[]string {
	switch name {
	case EntityPeople:
		return &k.People
	case EntityOrganizations:
		return &k.Organizations
	case EntityLocations:
		return &k.Locations
	default:
		return nil
	}
}

// Document is the normalized representation of a source article.
type Document struct {
	URL         string
	Title       string
	Summary     string
	Sections    []string
	KeyEntities KeyEntities
	FullText    string
	RawMarkup   string
}
