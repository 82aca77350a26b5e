package catalog

// Category is one of the six top-level classifications.
type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
	CategoryD Category = "D"
	CategoryE Category = "E"
	CategoryF Category = "F"

	// AllCategories is the filter sentinel that matches every category.
	AllCategories Category = "all"

	// FallbackCategory is the ID bucket for articles whose category is
	// missing or not one of A..F.
	FallbackCategory Category = "X"
)

// Categories returns the category keys in canonical order.
func Categories() []Category {
	return []Category{CategoryA, CategoryB, CategoryC, CategoryD, CategoryE, CategoryF}
}

// Valid reports whether c is one of A..F.
func (c Category) Valid() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// TagType classifies a tag.
type TagType string

const (
	TagOrg    TagType = "Org"
	TagTech   TagType = "Tech"
	TagDomain TagType = "Domain"
	TagTopic  TagType = "Topic"
	TagStatus TagType = "Status"
)

// TagTypes returns the tag types in canonical order.
func TagTypes() []TagType {
	return []TagType{TagOrg, TagTech, TagDomain, TagTopic, TagStatus}
}

func (t TagType) Valid() bool {
	for _, k := range TagTypes() {
		if t == k {
			return true
		}
	}
	return false
}

type Tag struct {
	Type  TagType `json:"type"`
	Value string  `json:"value"`
}

func (t Tag) String() string {
	return "[" + string(t.Type) + "] " + t.Value
}

// Article is a single catalog entry. ID is assigned at load time and never
// read from source data.
type Article struct {
	ID              string   `json:"-"`
	Category        Category `json:"category"`
	Subcategory     string   `json:"subcategory"`
	SubcategoryName string   `json:"subcategoryName"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	Body            string   `json:"body"`
	Tags            []Tag    `json:"tags"`
	Links           []string `json:"links"`
	ReleaseDate     string   `json:"releaseDate"`
	LastVerified    string   `json:"lastVerified"`
}

// HasTag reports whether any of the article's tags equals t.
func (a Article) HasTag(t Tag) bool {
	for _, at := range a.Tags {
		if at == t {
			return true
		}
	}
	return false
}
