package domain

type Reservation struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	VillaID      int64   `json:"villa_id"`
	CheckInDate  Date    `json:"check_in_date"`
	CheckOutDate Date    `json:"check_out_date"`
	PeopleCount  int     `json:"people_count"`
	TotalPrice   float64 `json:"total_price"`
}

// ReservationPrice computes the stay total: every night costs the base
// rate, and each occupant above the base capacity adds the extra-person
// rate per night. Occupants at or under base capacity never discount.
func ReservationPrice(v Villa, people, nights int) float64 {
	extra := people - v.BaseCapacity
	if extra < 0 {
		extra = 0
	}
	return v.BasePricePerNight*float64(nights) + float64(extra)*v.ExtraPersonPrice*float64(nights)
}
