package models

import "time"

// VersionSnapshot is one append-only history entry for a post: a copy of the
// post as it looked at that revision. Snapshots are created by the host on
// every commit and never mutated afterwards.
type VersionSnapshot struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	Revision  int       `json:"revision"`
	Post      Post      `json:"post"`
	CreatedAt time.Time `json:"createdAt"`
}
