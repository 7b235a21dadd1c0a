package response_models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

const CostIncluded = "Included"

type Itinerary struct {
	ID                 string         `json:"id,omitempty"`
	Destination        string         `json:"destination"`
	Budget             int            `json:"budget"`
	Currency           string         `json:"currency"`
	TotalEstimatedCost int            `json:"totalEstimatedCost"`
	CostBreakdown      []CostItem     `json:"costBreakdown"`
	WeatherAdvisory    string         `json:"weatherAdvisory,omitempty"`
	Days               []Day          `json:"days"`
	CreatedAt          string         `json:"createdAt,omitempty"`
	Themes             []string       `json:"themes,omitempty"`
	Narrations         []Narration    `json:"narrations,omitempty"`
	Insights           *InsightReport `json:"insights,omitempty"`
	Meta               *Meta          `json:"meta,omitempty"`
}

type CostItem struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
	Notes    string `json:"notes,omitempty"`
}

type Day struct {
	DateLabel     string         `json:"dateLabel"`
	Date          string         `json:"date,omitempty"`
	Summary       string         `json:"summary"`
	Activities    []Activity     `json:"activities"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
}

type Activity struct {
	Time        string     `json:"time"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Cost        Cost       `json:"cost"`
	Source      string     `json:"source"`
	Images      []ImageRef `json:"images"`
}

type Accommodation struct {
	Name  string `json:"name"`
	Cost  *int   `json:"cost,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type ImageRef struct {
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ContextURL   string `json:"context_url,omitempty"`
	Title        string `json:"title,omitempty"`
}

type Meta struct {
	Source string `json:"source"`
	Mode   string `json:"mode"`
}

type Narration struct {
	Day           string `json:"day"`
	Script        string `json:"script"`
	Mood          string `json:"mood"`
	LengthSeconds int    `json:"lengthSeconds"`
}

// Cost is either an integer amount or a descriptive literal such as "Included".
type Cost struct {
	Amount int
	Label  string
}

func AmountCost(n int) Cost { return Cost{Amount: n} }
func LabelCost(label string) Cost { return Cost{Label: label} }
func (c Cost) IsAmount() bool { return c.Label == "" }

func (c Cost) MarshalJSON() ([]byte, error) {
	if c.Label != "" {
		return json.Marshal(c.Label)
	}
	return []byte(strconv.Itoa(c.Amount)), nil
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cost{Label: s}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = Cost{Amount: int(f)}
	return nil
}
