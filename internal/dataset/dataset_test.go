package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsellor/internal/textnorm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuild_CanonicalizesKeywordsAndTraits(t *testing.T) {
	rows := []Row{{
		Interest:          " Tech ",
		Keywords:          "Coding, programming, machine learning",
		Careers:           "Software Developer, Data Scientist",
		PersonalityTraits: "analytical, Analytical",
	}}

	cats, err := Build(rows, textnorm.New())
	require.NoError(t, err)
	require.Len(t, cats, 1)

	c := cats[0]
	assert.Equal(t, "Tech", c.Interest)
	assert.Equal(t, []string{"Software Developer", "Data Scientist"}, c.Careers)
	assert.True(t, c.HasKeyword("code"))
	assert.True(t, c.HasKeyword("program"))
	assert.True(t, c.HasKeyword("machin"))
	assert.True(t, c.HasKeyword("learn"))
	assert.Len(t, c.PersonalityTraits, 1)
}

func TestBuild_MissingTraitsIsEmpty(t *testing.T) {
	cats, err := Build([]Row{{Interest: "Law", Keywords: "law", Careers: "Lawyer"}}, textnorm.New())
	require.NoError(t, err)
	assert.Empty(t, cats[0].PersonalityTraits)
}

func TestBuild_Validation(t *testing.T) {
	n := textnorm.New()

	_, err := Build(nil, n)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = Build([]Row{{Interest: "", Careers: "Lawyer"}}, n)
	assert.ErrorIs(t, err, ErrInvalidRow)

	_, err = Build([]Row{{Interest: "Law", Careers: " , "}}, n)
	assert.ErrorIs(t, err, ErrInvalidRow)

	_, err = Build([]Row{
		{Interest: "Law", Careers: "Lawyer"},
		{Interest: "Law", Careers: "Judge"},
	}, n)
	assert.ErrorIs(t, err, ErrDuplicateInterest)
}

func TestCSVSource_OptionalTraitColumn(t *testing.T) {
	path := writeFile(t, "careers.csv", "interest,keywords,careers\n"+
		"Tech,\"code, program\",\"Software Developer, Data Scientist\"\n"+
		"Art,\"draw, paint\",Graphic Designer\n")

	cats, err := Load(context.Background(), NewCSVFile(path), textnorm.New())
	require.NoError(t, err)
	require.Len(t, cats, 2)

	assert.Equal(t, "Tech", cats[0].Interest)
	assert.Equal(t, "Art", cats[1].Interest)
	assert.Equal(t, []string{"Graphic Designer"}, cats[1].Careers)
	assert.Empty(t, cats[0].PersonalityTraits)
}

func TestCSVSource_MissingColumn(t *testing.T) {
	path := writeFile(t, "bad.csv", "interest,careers\nTech,Software Developer\n")

	_, err := NewCSVFile(path).Rows(context.Background())
	assert.ErrorContains(t, err, `missing column "keywords"`)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVFile(filepath.Join(t.TempDir(), "nope.csv")).Rows(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmbedded_Loads(t *testing.T) {
	cats, err := Load(context.Background(), NewEmbedded(), textnorm.New())
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	assert.Equal(t, "Technology", cats[0].Interest)
	assert.Equal(t, "Software Developer", cats[0].Careers[0])
	traits := Traits(cats)
	assert.NotEmpty(t, traits)
	for _, c := range cats {
		assert.NotEmpty(t, c.Careers, c.Interest)
	}
}

func TestSQLSource_Rows(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "careers.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE careers (
		interest TEXT PRIMARY KEY,
		keywords TEXT NOT NULL,
		careers TEXT NOT NULL,
		personality_traits TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO careers (interest, keywords, careers, personality_traits) VALUES
		('Tech', 'code, program', 'Software Developer, Data Scientist', 'analytical'),
		('Law', 'law, justice', 'Lawyer', NULL)`)
	require.NoError(t, err)

	src, err := NewSQLSource(db, "")
	require.NoError(t, err)
	cats, err := Load(context.Background(), src, textnorm.New())
	require.NoError(t, err)
	require.Len(t, cats, 2)

	assert.Equal(t, "Tech", cats[0].Interest)
	assert.Equal(t, []string{"Software Developer", "Data Scientist"}, cats[0].Careers)
	assert.Equal(t, "Law", cats[1].Interest)
	assert.Empty(t, cats[1].PersonalityTraits)
}

func TestNewSQLSource_RejectsBadTable(t *testing.T) {
	_, err := NewSQLSource(nil, "careers; DROP TABLE x")
	assert.Error(t, err)
}
