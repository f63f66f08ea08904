package domain

// Vertical is one of the portal's bookable categories.
type Vertical struct {
	ID       string
	Name     string
	Noun     string // what a booking is called in this vertical
	HexColor string
}

// Vertical IDs.
const (
	VerticalTourism       = "tourism"
	VerticalAccommodation = "accommodation"
	VerticalRestaurants   = "restaurants"
	VerticalEvents        = "events"
	VerticalTransport     = "transport"
)

// Verticals in menu order.
var Verticals = []Vertical{
	{ID: VerticalTourism, Name: "Tourism Info", Noun: "tour booking", HexColor: "#2ECC71"},
	{ID: VerticalAccommodation, Name: "Accommodation", Noun: "room booking", HexColor: "#3498DB"},
	{ID: VerticalRestaurants, Name: "Restaurants", Noun: "table reservation", HexColor: "#E67E22"},
	{ID: VerticalEvents, Name: "Events", Noun: "ticket booking", HexColor: "#9B59B6"},
	{ID: VerticalTransport, Name: "Transport", Noun: "ride booking", HexColor: "#1ABC9C"},
}

// LookupVertical returns the vertical with the given ID.
func LookupVertical(id string) (Vertical, bool) {
	for _, v := range Verticals {
		if v.ID == id {
			return v, true
		}
	}
	return Vertical{}, false
}
