package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"findcourse/internal/model"
)

func browseFixture() []model.Center {
	return []model.Center{
		{ID: 1, Name: "Artel Academy", Address: "Chilonzor 5", Region: &model.Region{ID: 1, Name: "Toshkent"},
			Majors: []model.Major{{ID: 10, Name: "English"}}, UserID: 7},
		{ID: 2, Name: "Cambridge School", Address: "Yunusobod 12", Region: &model.Region{ID: 1, Name: "Toshkent"},
			Majors: []model.Major{{ID: 11, Name: "IT"}}, UserID: 8},
		{ID: 3, Name: "Everest", Address: "Art Street 3", Region: &model.Region{ID: 2, Name: "Andijon"},
			Majors: []model.Major{{ID: 10, Name: "English"}, {ID: 11, Name: "IT"}}, UserID: 7},
		{ID: 4, Name: "Smart Kids", Address: "Registon 1", RegionID: 2,
			Majors: []model.Major{{ID: 12, Name: "Math"}}, UserID: 9},
	}
}

func TestFilterCenters_Idempotent(t *testing.T) {
	centers := browseFixture()
	f := CenterFilter{Term: "a", RegionID: 1}

	first := FilterCenters(centers, f)
	second := FilterCenters(centers, f)
	assert.Equal(t, first, second, "same collection and filter state must yield identical results")
}

func TestFilterCenters_FacetsCommute(t *testing.T) {
	centers := browseFixture()

	// applying the major facet then the term must equal term then major
	byMajor := FilterCenters(centers, CenterFilter{MajorID: 10})
	majorThenTerm := FilterCenters(byMajor, CenterFilter{Term: "art"})

	byTerm := FilterCenters(centers, CenterFilter{Term: "art"})
	termThenMajor := FilterCenters(byTerm, CenterFilter{MajorID: 10})

	assert.Equal(t, majorThenTerm, termThenMajor)
	assert.Equal(t, FilterCenters(centers, CenterFilter{Term: "art", MajorID: 10}), majorThenTerm)
}

func TestFilterCenters_TermMatchesNameOrAddress(t *testing.T) {
	centers := browseFixture()
	got := FilterCenters(centers, CenterFilter{Term: "art"})

	// "Artel Academy" by name, "Everest" by address ("Art Street"),
	// "Smart Kids" by name substring; case-insensitive throughout
	assert.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, int64(4), got[2].ID)
}

func TestFilterCenters_OrderPreservedAndANDSemantics(t *testing.T) {
	centers := browseFixture()

	got := FilterCenters(centers, CenterFilter{RegionID: 2, MajorID: 11})
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	// flat regionId works the same as the joined region object
	got = FilterCenters(centers, CenterFilter{RegionID: 2})
	assert.Equal(t, []int64{3, 4}, []int64{got[0].ID, got[1].ID})
}

func TestFilterCenters_MineOnly(t *testing.T) {
	centers := browseFixture()
	got := FilterCenters(centers, CenterFilter{OwnerID: 7})
	assert.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, int64(7), c.UserID)
	}
}

func TestFilterCenters_EmptyFilterReturnsAll(t *testing.T) {
	centers := browseFixture()
	got := FilterCenters(centers, CenterFilter{})
	assert.Equal(t, centers, got)
}

func TestFilterResources_CategoryAndTerm(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Name: "Books", Resources: []model.Resource{
			{ID: 1, CategoryID: 1, Name: "Grammar Guide", Description: "english grammar"},
			{ID: 2, CategoryID: 1, Name: "Atlas", Description: "maps"},
		}},
		{ID: 2, Name: "Video", Resources: []model.Resource{
			{ID: 3, CategoryID: 2, Name: "Algebra Course", Description: "math lessons"},
		}},
	}

	all := FilterResources(cats, ResourceFilter{})
	assert.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].ID, "no category selected spans all categories in order")

	onlyBooks := FilterResources(cats, ResourceFilter{CategoryID: 1})
	assert.Len(t, onlyBooks, 2)

	grammar := FilterResources(cats, ResourceFilter{Term: "GRAMMAR"})
	assert.Len(t, grammar, 1)
	assert.Equal(t, int64(1), grammar[0].ID)

	math := FilterResources(cats, ResourceFilter{CategoryID: 2, Term: "math"})
	assert.Len(t, math, 1)
	assert.Equal(t, int64(3), math[0].ID)
}

func TestCommentsNewestFirst(t *testing.T) {
	in := []model.Comment{{ID: 1}, {ID: 2}, {ID: 3}}
	out := CommentsNewestFirst(in)
	assert.Equal(t, []int64{3, 2, 1}, []int64{out[0].ID, out[1].ID, out[2].ID})
	// input untouched
	assert.Equal(t, int64(1), in[0].ID)
}
