package model

import "time"

// BookingLock is an advisory lock document serializing the conflict check
// and commit for a single room. The unique _id makes a second concurrent
// insert fail with a duplicate key error.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
