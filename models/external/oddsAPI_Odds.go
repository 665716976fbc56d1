package external

type OddsAPI_Game struct {
	ID           string              `json:"id"`
	SportKey     string              `json:"sport_key"`
	CommenceTime string              `json:"commence_time"`
	HomeTeam     string              `json:"home_team"`
	AwayTeam     string              `json:"away_team"`
	Bookmakers   []OddsAPI_Bookmaker `json:"bookmakers"`
}

type OddsAPI_Bookmaker struct {
	Key        string           `json:"key"`
	Title      string           `json:"title"`
	LastUpdate string           `json:"last_update"`
	Markets    []OddsAPI_Market `json:"markets"`
}

type OddsAPI_Market struct {
	Key      string            `json:"key"`
	Outcomes []OddsAPI_Outcome `json:"outcomes"`
}

type OddsAPI_Outcome struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Point *float64 `json:"point,omitempty"`
}
