package store

import "findcourse/internal/model"

// Catalog is the per-invocation entity cache: the last-fetched
// collections for the lifetime of one command, patched in place after
// mutations instead of refetched. Nothing here survives the process
// and nothing is shared across invocations.
type Catalog struct {
	Centers    []model.Center
	Regions    []model.Region
	Majors     []model.Major
	Categories []model.Category
	MyCenters  []model.Center
	Receptions []model.Reception

	likes *LikeIndex
}

// Likes returns the liked index, creating it on first use.
func (c *Catalog) Likes() *LikeIndex {
	if c.likes == nil {
		c.likes = NewLikeIndex(nil)
	}
	return c.likes
}

// SetLikes replaces the liked index from a freshly fetched collection.
func (c *Catalog) SetLikes(items []model.LikedItem) {
	c.likes = NewLikeIndex(items)
}

// CenterByID looks a center up in the cached collection.
func (c *Catalog) CenterByID(id int64) *model.Center {
	for i := range c.Centers {
		if c.Centers[i].ID == id {
			return &c.Centers[i]
		}
	}
	return nil
}

// AppendCenter records a server-returned center after a create.
func (c *Catalog) AppendCenter(center model.Center) {
	c.Centers = append(c.Centers, center)
}

// RemoveCenter drops exactly one center by id, keeping the relative
// order of the rest.
func (c *Catalog) RemoveCenter(id int64) bool {
	c.Centers, _ = removeByID(c.Centers, id, func(x model.Center) int64 { return x.ID })
	var ok bool
	c.MyCenters, ok = removeByID(c.MyCenters, id, func(x model.Center) int64 { return x.ID })
	return ok || c.CenterByID(id) == nil
}

// RemoveReception drops one booking by id.
func (c *Catalog) RemoveReception(id int64) bool {
	var ok bool
	c.Receptions, ok = removeByID(c.Receptions, id, func(x model.Reception) int64 { return x.ID })
	return ok
}

// AppendReception records a server-returned booking after a create.
func (c *Catalog) AppendReception(r model.Reception) {
	c.Receptions = append(c.Receptions, r)
}

// removeByID removes the first element whose id matches, preserving
// order. Ids are assumed unique within a collection.
func removeByID[T any](items []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

// Comments is the cached comment collection of one center detail view.
type Comments struct {
	Items []model.Comment
}

// Append records a server-returned comment.
func (cs *Comments) Append(c model.Comment) {
	cs.Items = append(cs.Items, c)
}

// Remove drops one comment by id, preserving order.
func (cs *Comments) Remove(id int64) bool {
	var ok bool
	cs.Items, ok = removeByID(cs.Items, id, func(x model.Comment) int64 { return x.ID })
	return ok
}

// Patch merges new text into an existing comment after an edit.
func (cs *Comments) Patch(id int64, text string) bool {
	for i := range cs.Items {
		if cs.Items[i].ID == id {
			cs.Items[i].Text = text
			return true
		}
	}
	return false
}
