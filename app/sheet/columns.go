package sheet

import (
	"strings"
)

const Absent = -1

// Columns maps the logical blog fields to header positions. Absent marks a
// field whose header could not be found.
type Columns struct {
	Title          int
	Content        int
	Image          int
	PostDate       int
	Approved       int
	Client         int
	PrimaryKeyword int
}

// Header fragments per field, most specific first.
var columnNeedles = struct {
	title, content, image, postDate, approved, client, primaryKeyword []string
}{
	title:          []string{"title"},
	content:        []string{"post url", "url", "content", "link"},
	image:          []string{"image", "photo", "thumbnail"},
	postDate:       []string{"publish date", "post date", "date"},
	approved:       []string{"approved", "approval"},
	client:         []string{"client", "author"},
	primaryKeyword: []string{"primary keyword", "keyword"},
}

func ResolveColumns(header RawRow) Columns {
	folded := make([]string, len(header))
	for i, name := range header {
		folded[i] = Fold(strings.TrimSpace(name))
	}

	return Columns{
		Title:          findColumn(folded, columnNeedles.title),
		Content:        findColumn(folded, columnNeedles.content),
		Image:          findColumn(folded, columnNeedles.image),
		PostDate:       findColumn(folded, columnNeedles.postDate),
		Approved:       findColumn(folded, columnNeedles.approved),
		Client:         findColumn(folded, columnNeedles.client),
		PrimaryKeyword: findColumn(folded, columnNeedles.primaryKeyword),
	}
}

func findColumn(header []string, needles []string) int {
	for _, needle := range needles {
		for i, name := range header {
			if strings.Contains(name, needle) {
				return i
			}
		}
	}
	return Absent
}

// Cell returns the trimmed value at index, or "" when the index is absent or
// past the end of a short row.
func (r RawRow) Cell(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[index])
}

func (r RawRow) IsEmpty() bool {
	for _, cell := range r {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
