package models

import "time"

// MusicVideo is a video link saved by a user. It is only ever visible to
// the user who added it.
type MusicVideo struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Title     string    `db:"title"`
	Artist    string    `db:"artist"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
