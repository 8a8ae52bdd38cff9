package news

// Source identifies which site a record was collected from.
type Source string

const (
	SourceEnergyNews Source = "energy_news"
	SourceKNPNews    Source = "knpnews"
	SourceKAIF       Source = "kaif"
)

// Record represents a single news listing entry. Every descriptive field is
// optional and independently nullable: a missing title does not imply a
// missing URL, and consumers must tolerate nil in any of them. Date is kept
// raw, exactly as the site rendered it.
type Record struct {
	Title     *string `json:"title"`
	URL       *string `json:"url"`
	Thumbnail *string `json:"thumbnail"`
	Preview   *string `json:"preview"`
	Category  *string `json:"category"`
	Reporter  *string `json:"reporter"`
	Date      string  `json:"date"`
	Source    Source  `json:"source"`
}

// SectionLink is one entry inside a bulletin post's categorized link lists.
// Source is the outlet name split off the end of the bullet text, when the
// split produced one.
type SectionLink struct {
	Title  string  `json:"title"`
	Source *string `json:"source"`
	URL    string  `json:"url"`
}

// SectionMap holds the four fixed bulletin sections. All four are always
// present; a parse fault degrades to the all-empty map, never to missing
// keys.
type SectionMap struct {
	Domestic      []SectionLink `json:"domestic"`
	International []SectionLink `json:"international"`
	Editorial     []SectionLink `json:"editorial"`
	NuclearNews   []SectionLink `json:"nuclear_news"`
}

// EmptySectionMap returns a SectionMap with all four sections present and
// empty. The slices are non-nil so the map serializes as [] rather than
// null.
func EmptySectionMap() SectionMap {
	return SectionMap{
		Domestic:      []SectionLink{},
		International: []SectionLink{},
		Editorial:     []SectionLink{},
		NuclearNews:   []SectionLink{},
	}
}

// Attachment is one file attached to a bulletin post.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// BulletinPost is one accepted bulletin board entry together with its parsed
// detail page.
type BulletinPost struct {
	Title       string       `json:"title"`
	DetailTitle string       `json:"detail_title"`
	Content     *string      `json:"content"`
	Date        string       `json:"date"`
	ListURL     string       `json:"list_url"`
	NewsLinks   SectionMap   `json:"news_links"`
	Attachments []Attachment `json:"attachments"`
	Author      *string      `json:"author"`
	Views       *string      `json:"views"`
}

// SourceCounts holds per-source record counts for one digest.
type SourceCounts struct {
	EnergyNews int `json:"energy_news"`
	KNPNews    int `json:"knpnews"`
	KAIF       int `json:"kaif"`
}

// Digest is the filtered, merged, ordered record set for one calendar day,
// ready for delivery formatting. It is purely derived from its inputs and
// never mutated after construction.
type Digest struct {
	TargetDate string         `json:"date"`
	TotalCount int            `json:"total_count"`
	PostsCount int            `json:"kaif_posts_count"`
	Sources    SourceCounts   `json:"sources"`
	Records    []Record       `json:"news"`
	Posts      []BulletinPost `json:"kaif_posts"`
}

// Str returns a pointer to s. Optional record fields are pointers, so
// construction sites and tests need this constantly.
func Str(s string) *string {
	return &s
}
