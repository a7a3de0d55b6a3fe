package store

import "findcourse/internal/model"

// LikeIndex mirrors the server-side "at most one like per (user,
// center)" invariant: a centerID → likeRecordID map whose key set is
// the liked set.
type LikeIndex struct {
	byCenter map[int64]int64
}

// NewLikeIndex builds the index from a fetched likes collection.
func NewLikeIndex(items []model.LikedItem) *LikeIndex {
	idx := &LikeIndex{byCenter: make(map[int64]int64, len(items))}
	for _, it := range items {
		idx.byCenter[it.CenterID] = it.ID
	}
	return idx
}

// Liked reports whether the center is in the liked set.
func (idx *LikeIndex) Liked(centerID int64) bool {
	_, ok := idx.byCenter[centerID]
	return ok
}

// RecordID returns the like record id for a center, if liked.
func (idx *LikeIndex) RecordID(centerID int64) (int64, bool) {
	id, ok := idx.byCenter[centerID]
	return id, ok
}

// Add inserts a server-returned like record.
func (idx *LikeIndex) Add(item model.LikedItem) {
	idx.byCenter[item.CenterID] = item.ID
}

// Remove drops the entry for a center; both the set membership and the
// record id mapping go together, so no stale entries can remain.
func (idx *LikeIndex) Remove(centerID int64) {
	delete(idx.byCenter, centerID)
}

// Len returns the number of liked centers.
func (idx *LikeIndex) Len() int { return len(idx.byCenter) }
