package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticSource struct {
	name     string
	articles []Article
	err      error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Fetch(ctx context.Context) ([]Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Article, len(s.articles))
	copy(out, s.articles)
	return out, nil
}

func titles(articles []Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func TestNormalizeSortsNewestFirst(t *testing.T) {
	articles := []Article{
		{Title: "old", Category: CategoryA, ReleaseDate: "2023-05"},
		{Title: "new", Category: CategoryA, ReleaseDate: "2024-11"},
		{Title: "mid", Category: CategoryB, ReleaseDate: "2024-01"},
	}
	Normalize(articles)
	assert.Equal(t, []string{"new", "mid", "old"}, titles(articles))
}

func TestNormalizeMissingDatesSortLastAndStable(t *testing.T) {
	articles := []Article{
		{Title: "X", Category: CategoryA},
		{Title: "dated", Category: CategoryA, ReleaseDate: "2020-01"},
		{Title: "Y", Category: CategoryA},
		{Title: "tie1", Category: CategoryC, ReleaseDate: "2022-06"},
		{Title: "tie2", Category: CategoryC, ReleaseDate: "2022-06"},
	}
	Normalize(articles)
	assert.Equal(t, []string{"tie1", "tie2", "dated", "X", "Y"}, titles(articles))
}

func TestNormalizeAssignsPerCategoryIDs(t *testing.T) {
	articles := []Article{
		{Title: "a-old", Category: CategoryA, ReleaseDate: "2023-01"},
		{Title: "b", Category: CategoryB, ReleaseDate: "2024-02"},
		{Title: "a-new", Category: CategoryA, ReleaseDate: "2024-03"},
		{Title: "none", ReleaseDate: "2024-01"},
		{Title: "bogus", Category: "Z", ReleaseDate: "2021-01"},
	}
	Normalize(articles)

	ids := map[string]string{}
	for _, a := range articles {
		ids[a.Title] = a.ID
	}
	assert.Equal(t, "A001", ids["a-new"])
	assert.Equal(t, "A002", ids["a-old"])
	assert.Equal(t, "B001", ids["b"])
	assert.Equal(t, "X001", ids["none"])
	assert.Equal(t, "X002", ids["bogus"])
}

func TestIDsUniqueAndWellFormed(t *testing.T) {
	var articles []Article
	cats := []Category{CategoryA, CategoryB, CategoryC, CategoryD, CategoryE, CategoryF, "", "?"}
	for i := 0; i < 200; i++ {
		articles = append(articles, Article{
			Category:    cats[i%len(cats)],
			ReleaseDate: []string{"2024-01", "", "2023-12", "2024-06"}[i%4],
		})
	}
	c := New(articles)

	format := regexp.MustCompile(`^[A-FX]\d{3}$`)
	seen := map[string]bool{}
	for _, a := range c.Articles() {
		assert.Regexp(t, format, a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, 200)
}

func TestNewCountsCategoriesFromUnfilteredList(t *testing.T) {
	c := New([]Article{
		{Category: CategoryA},
		{Category: CategoryA},
		{Category: CategoryF},
		{Category: ""},
	})
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 2, c.Count(CategoryA))
	assert.Equal(t, 0, c.Count(CategoryB))
	assert.Equal(t, 1, c.Count(CategoryF))

	counts := c.CategoryCounts()
	assert.Len(t, counts, 6)
	counts[CategoryA] = 99
	assert.Equal(t, 2, c.Count(CategoryA), "CategoryCounts must return a copy")
}

func TestLookup(t *testing.T) {
	c := New([]Article{{Title: "only", Category: CategoryD, ReleaseDate: "2024-01"}})

	a, ok := c.Lookup("D001")
	require.True(t, ok)
	assert.Equal(t, "only", a.Title)

	_, ok = c.Lookup("D002")
	assert.False(t, ok)
}

func TestLoadSkipsFailingSources(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sources := []Source{
		staticSource{name: "broken", err: errors.New("connection refused")},
		staticSource{name: "good", articles: []Article{
			{Title: "one", Category: CategoryA, ReleaseDate: "2024-01"},
		}},
	}

	c := Load(context.Background(), sources, zap.New(core))
	require.NotNil(t, c)
	assert.Equal(t, 1, c.Len())

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "broken", warns[0].ContextMap()["source"])
}

func TestLoadAllFailingYieldsEmptyCatalog(t *testing.T) {
	c := Load(context.Background(), []Source{
		staticSource{name: "a", err: errors.New("boom")},
	}, nil)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Articles())
	assert.Equal(t, 0, c.Count(CategoryA))
}

func TestLoadConcatenatesSourcesBeforeSorting(t *testing.T) {
	c := Load(context.Background(), []Source{
		staticSource{name: "first", articles: []Article{{Title: "p", Category: CategoryB}}},
		staticSource{name: "second", articles: []Article{{Title: "q", Category: CategoryB}}},
	}, zap.NewNop())
	assert.Equal(t, []string{"p", "q"}, titles(c.Articles()))
	assert.Equal(t, "B001", c.Articles()[0].ID)
	assert.Equal(t, "B002", c.Articles()[1].ID)
}

func TestEnumerations(t *testing.T) {
	assert.Len(t, Categories(), 6)
	assert.Len(t, TagTypes(), 5)
	assert.True(t, CategoryC.Valid())
	assert.False(t, AllCategories.Valid())
	assert.False(t, FallbackCategory.Valid())
	assert.True(t, TagStatus.Valid())
	assert.False(t, TagType("Person").Valid())
}

func TestArticleHasTag(t *testing.T) {
	a := Article{Tags: []Tag{{TagTech, "LLM"}, {TagTech, "LLM"}, {TagOrg, "NII"}}}
	assert.True(t, a.HasTag(Tag{TagTech, "LLM"}))
	assert.False(t, a.HasTag(Tag{TagOrg, "LLM"}))
	assert.Equal(t, "[Org] NII", Tag{TagOrg, "NII"}.String())
}
