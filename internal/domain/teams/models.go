package teams

import "strings"

// Team is the normalized team shape shared by schedules and analyses.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FullName     string `json:"fullName,omitempty"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city,omitempty"`
	Conference   string `json:"conference,omitempty"`
	Division     string `json:"division,omitempty"`
}

// Alias returns the short label used when naming picks (abbreviation, then name, then id).
func (t Team) Alias() string {
	if a := strings.TrimSpace(t.Abbreviation); a != "" {
		return strings.ToUpper(a)
	}
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}
