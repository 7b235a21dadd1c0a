package request_models

type FashionSuggestionQuery struct {
	City        string `form:"city" binding:"required"`
	SeasonHint  string `form:"season_hint"`
	ItineraryID string `form:"itinerary_id"`
	Budget      *int   `form:"budget" binding:"omitempty,min=0"`
}

type HotelSuggestionQuery struct {
	City        string `form:"city" binding:"required"`
	StartDate   string `form:"start_date" binding:"required"`
	EndDate     string `form:"end_date" binding:"required"`
	Budget      int    `form:"budget" binding:"omitempty,min=0"`
	Travellers  int    `form:"travellers" binding:"omitempty,min=1,max=12"`
	ItineraryID string `form:"itinerary_id"`
}

type FlightSuggestionQuery struct {
	Origin      string `form:"origin" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Depart      string `form:"depart" binding:"required"`
	Return      string `form:"ret"`
	Travellers  int    `form:"travellers" binding:"omitempty,min=1,max=12"`
	ItineraryID string `form:"itinerary_id"`
	Budget      *int   `form:"budget" binding:"omitempty,min=0"`
}

type ImageSearchQuery struct {
	Query string `form:"query" binding:"required"`
	Num   int    `form:"num" binding:"omitempty,min=1,max=10"`
}
