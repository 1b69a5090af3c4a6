package model

// Room is seed/admin data and read-only from the booking service's
// perspective. RoomNumber is the stable public identifier.
type Room struct {
	ID           string  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomNumber   string  `json:"room_number" bson:"room_number" validate:"required,min=1,max=20"`
	RoomType     string  `json:"room_type" bson:"room_type" validate:"required,min=2,max=50"`
	PricePerHour float64 `json:"price_per_hour" bson:"price_per_hour" validate:"gte=0"`
}
