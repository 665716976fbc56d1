package external

// OddsPick is the best available price for one side of a game. Slices of
// these are what the odds cache persists per "{sport}_{market}" key.
type OddsPick struct {
	EventID    string `json:"event_id"`
	Team       string `json:"team"`
	Opponent   string `json:"opponent"`
	IsHome     bool   `json:"is_home"`
	Sport      string `json:"sport"`
	Market     string `json:"market"`
	Odds       int    `json:"odds"`
	Sportsbook string `json:"sportsbook"`
}
