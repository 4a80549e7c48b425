package models

// Team represents one of the 32 NFL franchises, synced from the ESPN teams API
type Team struct {
	ID           int    `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Abbreviation string `json:"abbreviation" bson:"abbreviation"`
	LogoURL      string `json:"logo_url" bson:"logo_url"`
}

// String returns a string representation of the team
func (t *Team) String() string {
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return t.Name
}
