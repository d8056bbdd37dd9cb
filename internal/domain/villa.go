package domain

// VillaAttributes is the full mutable attribute set of a villa. Updates
// replace every field by value; there is no partial merge.
type VillaAttributes struct {
	Title             string  `json:"title"`
	City              string  `json:"city"`
	Address           string  `json:"address"`
	BaseCapacity      int     `json:"base_capacity"`
	MaximumCapacity   int     `json:"maximum_capacity"`
	Area              float64 `json:"area"`
	BedCount          int     `json:"bed_count"`
	HasPool           bool    `json:"has_pool"`
	HasCoolingSystem  bool    `json:"has_cooling_system"`
	BasePricePerNight float64 `json:"base_price_per_night"`
	ExtraPersonPrice  float64 `json:"extra_person_price"`
	Rating            float64 `json:"rating"`
}

type Villa struct {
	ID int64 `json:"id"`
	VillaAttributes
	ImageURL string `json:"images"`
}

// VillasQuery holds the optional public-listing filters; nil means no
// constraint on that field, set fields combine with AND.
type VillasQuery struct {
	City        *string
	MinCapacity *int
	MaxPrice    *float64
}
