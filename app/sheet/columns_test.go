package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColumns(t *testing.T) {
	header := RawRow{"Title", "Post URL", "Feature Image", "Publish Date", "Approved?", "Client", "Primary Keyword"}

	columns := ResolveColumns(header)

	assert.Equal(t, Columns{
		Title:          0,
		Content:        1,
		Image:          2,
		PostDate:       3,
		Approved:       4,
		Client:         5,
		PrimaryKeyword: 6,
	}, columns)
}

func TestResolveColumns_CaseInsensitiveAndReordered(t *testing.T) {
	header := RawRow{"APPROVED", "  blog TITLE ", "keyword", "date"}

	columns := ResolveColumns(header)

	assert.Equal(t, 1, columns.Title)
	assert.Equal(t, 0, columns.Approved)
	assert.Equal(t, 2, columns.PrimaryKeyword)
	assert.Equal(t, 3, columns.PostDate)
}

func TestResolveColumns_MissingColumnsAreAbsent(t *testing.T) {
	columns := ResolveColumns(RawRow{"Title"})

	assert.Equal(t, 0, columns.Title)
	assert.Equal(t, Absent, columns.Content)
	assert.Equal(t, Absent, columns.Image)
	assert.Equal(t, Absent, columns.PostDate)
	assert.Equal(t, Absent, columns.Approved)
	assert.Equal(t, Absent, columns.Client)
	assert.Equal(t, Absent, columns.PrimaryKeyword)
}

func TestResolveColumns_DuplicateHeadersPickFirst(t *testing.T) {
	columns := ResolveColumns(RawRow{"Title", "Title", "Approved?"})

	assert.Equal(t, 0, columns.Title)
	assert.Equal(t, 2, columns.Approved)
}

func TestResolveColumns_SpecificNeedleWins(t *testing.T) {
	// "Keyword Notes" appears first but "Primary Keyword" is the better match.
	columns := ResolveColumns(RawRow{"Title", "Keyword Notes", "Primary Keyword"})

	assert.Equal(t, 2, columns.PrimaryKeyword)
}
