package models

// Location is a geocoded point.
type Location struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Address          string  `json:"address"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	Level            string  `json:"level,omitempty"`
	Confidence       float64 `json:"confidence,omitempty"`
}

// ReverseGeocodeResult is the payload of a reverse-geocode call.
type ReverseGeocodeResult struct {
	FormattedAddress  string         `json:"formatted_address"`
	Location          Location       `json:"location"`
	AddressComponents map[string]any `json:"address_components,omitempty"`
}

// PlaceInfo describes a single place returned by place search.
type PlaceInfo struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	UID       string  `json:"uid,omitempty"`
	City      string  `json:"city,omitempty"`
	Province  string  `json:"province,omitempty"`
	Telephone string  `json:"telephone,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	Type      string  `json:"type,omitempty"`
}

// PlaceSearchRequest queries the place-search endpoint.
type PlaceSearchRequest struct {
	Query    string `json:"query"`
	Region   string `json:"region,omitempty"`
	Location string `json:"location,omitempty"`
	Radius   int    `json:"radius,omitempty"`
	Tag      string `json:"tag,omitempty"`
	PageNum  int    `json:"page_num"`
	PageSize int    `json:"page_size"`
}

// PlaceSearchResult is a page of matched places.
type PlaceSearchResult struct {
	Total    int         `json:"total"`
	Places   []PlaceInfo `json:"places"`
	PageNum  int         `json:"page_num"`
	PageSize int         `json:"page_size"`
}

// DirectionsRequest queries the directions endpoint.
type DirectionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"` // driving | riding | walking | transit
}

// DirectionsResult describes a planned route.
type DirectionsResult struct {
	Distance    float64          `json:"distance"`
	Duration    float64          `json:"duration"`
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Mode        string           `json:"mode"`
	Steps       []map[string]any `json:"steps,omitempty"`
	Polyline    string           `json:"polyline,omitempty"`
}

// DistanceMatrixElement is one origin/destination pairing in a matrix response.
type DistanceMatrixElement struct {
	Status   string         `json:"status"`
	Distance map[string]any `json:"distance,omitempty"`
	Duration map[string]any `json:"duration,omitempty"`
}

// DistanceMatrixRow groups the elements for a single origin.
type DistanceMatrixRow struct {
	Elements []DistanceMatrixElement `json:"elements"`
}

// DistanceMatrix is the batch routing payload.
type DistanceMatrix struct {
	Origins      []string            `json:"origins"`
	Destinations []string            `json:"destinations"`
	Rows         []DistanceMatrixRow `json:"rows"`
}

// WeatherInfo is the weather endpoint payload.
type WeatherInfo struct {
	Location string `json:"location"`
	Current  struct {
		Text        string `json:"text,omitempty"`
		Temperature string `json:"temperature,omitempty"`
	} `json:"current"`
	Forecast []struct {
		Date string `json:"date,omitempty"`
		Text string `json:"text,omitempty"`
		Low  string `json:"low,omitempty"`
		High string `json:"high,omitempty"`
	} `json:"forecast"`
	UpdateTime string `json:"update_time"`
}

// IPLocation is the IP geolocation payload.
type IPLocation struct {
	IP       string   `json:"ip"`
	Location Location `json:"location"`
	ISP      string   `json:"isp,omitempty"`
}

// DestinationCheck is the payload of destination validation.
type DestinationCheck struct {
	Valid       bool      `json:"valid"`
	Location    *Location `json:"location,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}
