package balldontlie

const providerName = "balldontlie"

type gamesResponse struct {
	Data []gameResponse `json:"data"`
	Meta metaResponse   `json:"meta"`
}

type gameResponse struct {
	ID               int          `json:"id"`
	Date             string       `json:"date"`
	Status           string       `json:"status"`
	Time             string       `json:"time"`
	Period           int          `json:"period"`
	Postseason       bool         `json:"postseason"`
	HomeTeam         teamResponse `json:"home_team"`
	VisitorTeam      teamResponse `json:"visitor_team"`
	HomeTeamScore    int          `json:"home_team_score"`
	VisitorTeamScore int          `json:"visitor_team_score"`
	Season           int          `json:"season"`
}

type teamResponse struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

// metaResponse covers both page-numbered and cursor-based listings.
type metaResponse struct {
	TotalPages int  `json:"total_pages"`
	NextCursor *int `json:"next_cursor"`
}

type playersResponse struct {
	Data []playerResponse `json:"data"`
	Meta metaResponse     `json:"meta"`
}

type playerResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	TeamID    int    `json:"team_id"`
}

type seasonAveragesResponse struct {
	Data []seasonAverageResponse `json:"data"`
}

type seasonAverageResponse struct {
	PlayerID    int     `json:"player_id"`
	Season      int     `json:"season"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"pts"`
	Assists     float64 `json:"ast"`
	Rebounds    float64 `json:"reb"`
	Threes      float64 `json:"fg3m"`
	FGA         float64 `json:"fga"`
	FTA         float64 `json:"fta"`
	Turnovers   float64 `json:"turnover"`
}

type injuriesResponse struct {
	Data []injuryResponse `json:"data"`
	Meta metaResponse     `json:"meta"`
}

type injuryResponse struct {
	Player      playerResponse `json:"player"`
	ReturnDate  string         `json:"return_date"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
}
