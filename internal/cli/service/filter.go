package service

import (
	"strings"

	"findcourse/internal/model"
)

// CenterFilter is the centers screen filter state. Zero values mean
// "facet not active"; active facets combine with logical AND.
type CenterFilter struct {
	Term     string
	RegionID int64
	MajorID  int64
	OwnerID  int64 // "mine only" when non-zero
}

// FilterCenters returns the subsequence of centers matching every
// active facet, preserving the original order. Pure: same inputs, same
// output. Text matching is case-insensitive substring against name and
// address.
func FilterCenters(centers []model.Center, f CenterFilter) []model.Center {
	out := make([]model.Center, 0, len(centers))
	for _, c := range centers {
		if !matchesTerm(f.Term, c.Name, c.Address) {
			continue
		}
		if f.RegionID != 0 && c.RegionRef() != f.RegionID {
			continue
		}
		if f.MajorID != 0 && !c.HasMajor(f.MajorID) {
			continue
		}
		if f.OwnerID != 0 && c.UserID != f.OwnerID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ResourceFilter is the categories/resources screen filter state.
type ResourceFilter struct {
	CategoryID int64
	Term       string
}

// FilterResources flattens the selected category's resources (or all
// categories' resources in category order when none is selected) and
// applies the term against name and description.
func FilterResources(categories []model.Category, f ResourceFilter) []model.Resource {
	var out []model.Resource
	for _, cat := range categories {
		if f.CategoryID != 0 && cat.ID != f.CategoryID {
			continue
		}
		for _, r := range cat.Resources {
			if matchesTerm(f.Term, r.Name, r.Description) {
				out = append(out, r)
			}
		}
	}
	return out
}

// CommentsNewestFirst returns a reversed copy of the fetched comment
// slice, matching the detail screen's display order.
func CommentsNewestFirst(items []model.Comment) []model.Comment {
	out := make([]model.Comment, len(items))
	for i, c := range items {
		out[len(items)-1-i] = c
	}
	return out
}

func matchesTerm(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
