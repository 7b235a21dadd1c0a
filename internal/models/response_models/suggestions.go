package response_models

import "yatra/pkg/utils"

// Recommendation is one validated outfit look bound to a hero image.
type Recommendation struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	StyleTags        []string `json:"style_tags"`
	ShoppingKeywords string   `json:"shopping_keywords"`
	ShoppingURL      string   `json:"shopping_url,omitempty"`
	PriceInINR       int      `json:"price_in_inr"`
	WeatherNote      string   `json:"weather_note"`
	ImageURL         string   `json:"image_url"`
	ImageThumbnail   string   `json:"image_thumbnail,omitempty"`
	ImageContext     string   `json:"image_context,omitempty"`
}

// RecommendationSet maps category to its looks.
type RecommendationSet map[string][]Recommendation

type FashionPayload struct {
	City        string            `json:"city"`
	SeasonHint  string            `json:"season_hint,omitempty"`
	Results     RecommendationSet `json:"results"`
	GeneratedAt string            `json:"generatedAt"`
	Budget      *int              `json:"budget"`
}

type HotelSuggestion struct {
	Name             string   `json:"name"`
	Neighbourhood    string   `json:"neighbourhood,omitempty"`
	ApproxPriceInINR *int     `json:"approx_price_in_inr"`
	Rating           *float64 `json:"rating,omitempty"`
	URL              string   `json:"url,omitempty"`
	Tags             []string `json:"tags"`
	Confidence       float64  `json:"confidence"`
	ImageURL         string   `json:"image_url,omitempty"`
	ImageThumbnail   string   `json:"image_thumbnail,omitempty"`
	ImageContext     string   `json:"image_context,omitempty"`
}

type HotelPayload struct {
	City        string            `json:"city"`
	Start       string            `json:"start"`
	End         string            `json:"end"`
	Travellers  int               `json:"travellers"`
	Budget      int               `json:"budget"`
	Results     []HotelSuggestion `json:"results"`
	GeneratedAt string            `json:"generatedAt"`
}

type FlightOption struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number,omitempty"`
	DepartTime   string `json:"depart_time"`
	ArrivalTime  string `json:"arrival_time"`
	Duration     string `json:"duration"`
	Stops        string `json:"stops,omitempty"`
	PriceInINR   *int   `json:"price_in_inr"`
	BookingURL   string `json:"booking_url,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type FlightPayload struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	Depart      string         `json:"depart"`
	Return      string         `json:"return,omitempty"`
	Travellers  int            `json:"travellers"`
	Budget      *int           `json:"budget"`
	Results     []FlightOption `json:"results"`
	GeneratedAt string         `json:"generatedAt"`
}

type ImageSearchResponse struct {
	Query  string           `json:"query"`
	Images []utils.ImageHit `json:"images"`
}
