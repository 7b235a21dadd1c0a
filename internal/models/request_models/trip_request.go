package request_models

type TripPreferences struct {
	Origin         string   `json:"origin" binding:"required"`
	Destination    string   `json:"destination" binding:"required"`
	StartDate      string   `json:"startDate" binding:"required"`
	EndDate        string   `json:"endDate" binding:"required"`
	Budget         int      `json:"budget" binding:"required,min=1000,max=500000"`
	Themes         []string `json:"themes" binding:"required,min=1,dive,required"`
	Travellers     int      `json:"travellers" binding:"required,min=1,max=6"`
	Language       string   `json:"language"`
	EnableLiveData *bool    `json:"enableLiveData"`
}

// ApplyDefaults fills optional fields the client may omit.
func (p *TripPreferences) ApplyDefaults() {
	if p.Language == "" {
		p.Language = "English"
	}
	if p.EnableLiveData == nil {
		enabled := true
		p.EnableLiveData = &enabled
	}
}

func (p TripPreferences) LiveData() bool {
	return p.EnableLiveData == nil || *p.EnableLiveData
}

type ItineraryRequest struct {
	Preferences TripPreferences `json:"preferences" binding:"required"`
}
