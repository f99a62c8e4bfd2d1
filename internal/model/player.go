package model

import "time"

// Player is a member of the squad shown on the club site.
//
// Role here is the position label ("fwd", "goalkeeper", ...), not an
// account role. Players are created by admins only.
type Player struct {
	ID        string    `json:"_id"       bson:"-"`
	Name      string    `json:"name"      bson:"name"`
	Image     string    `json:"image"     bson:"image"`
	Role      string    `json:"role"      bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
