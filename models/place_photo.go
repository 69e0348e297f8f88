package models

// PlacePhoto is a photo reference exposed by the photos route. MediaURL points
// at this server so the upstream API key never reaches the client.
type PlacePhoto struct {
	Name         string   `json:"name"`
	WidthPx      int      `json:"widthPx"`
	HeightPx     int      `json:"heightPx"`
	MediaURL     string   `json:"mediaUrl"`
	Attributions []string `json:"attributions,omitempty"`
}
