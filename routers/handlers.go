package routers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"blackLedger/models"
	"blackLedger/scheduler/scheduler_jobs"
	"blackLedger/services/pickService"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

type Handler struct {
	jobs  JobRunner
	picks PickReader
}

func NewHandler(jobs JobRunner, picks PickReader) *Handler {
	return &Handler{jobs: jobs, picks: picks}
}

type batchResponse struct {
	BatchID        string         `json:"batch_id"`
	Picks          map[string]int `json:"picks"`
	Parlays        map[string]int `json:"parlays"`
	SkippedSports  []string       `json:"skipped_sports,omitempty"`
	ShortSports    []string       `json:"short_sports,omitempty"`
	MysterySummary string         `json:"mystery_summary,omitempty"`
	Error          string         `json:"error,omitempty"`
}

type parlayResponse struct {
	ID           uint               `json:"id"`
	BatchID      string             `json:"batch_id"`
	Sport        string             `json:"sport"`
	Tier         string             `json:"tier"`
	BetType      string             `json:"bet_type"`
	Legs         []models.ParlayLeg `json:"legs"`
	HitChance    string             `json:"hit_chance"`
	Confidence   string             `json:"confidence"`
	Summary      string             `json:"summary"`
	Result       string             `json:"result"`
	IsMystery    bool               `json:"is_mystery"`
	CombinedOdds int                `json:"combined_odds,omitempty"`
	ValueScore   *float64           `json:"value_score,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

type pickResponse struct {
	ID              uint   `json:"id"`
	Sport           string `json:"sport"`
	Tier            string `json:"tier"`
	Pick            string `json:"pick"`
	Summary         string `json:"summary"`
	Confidence      string `json:"confidence"`
	HitChance       string `json:"hit_chance"`
	Sportsbook      string `json:"sportsbook"`
	Odds            string `json:"odds"`
	SmartlineValue  string `json:"smartline_value,omitempty"`
	PublicFadeValue string `json:"public_fade_value,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "black-ledger",
	})
}

func (h *Handler) RunNow(w http.ResponseWriter, r *http.Request) {
	result, err := h.jobs.GeneratePicks(r.Context())
	if errors.Is(err, scheduler_jobs.ErrJobRunning) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	resp := batchResponse{}
	if result != nil {
		resp = toBatchResponse(result)
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, resp)
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	summary, err := h.jobs.GradePicks(r.Context())
	if errors.Is(err, scheduler_jobs.ErrJobRunning) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{
		"graded":        summary.Graded,
		"hits":          summary.Hits,
		"misses":        summary.Misses,
		"missing_users": summary.MissingUsers,
		"level_ups":     summary.LevelUps,
		"net_xp":        summary.NetXP,
	})
}

func (h *Handler) CleanupMocks(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.jobs.CleanupMocks(r.Context(), r.URL.Query().Get("marker"))
	if errors.Is(err, scheduler_jobs.ErrJobRunning) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *Handler) PicksBySport(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.picks.PicksBySport(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := map[string]map[string][]pickResponse{}
	for sport, tiers := range grouped {
		out[sport] = map[string][]pickResponse{}
		for tier, picks := range tiers {
			out[sport][tier] = toPickResponses(picks)
		}
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) LatestPicks(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	picks, err := h.picks.LatestPicks(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toPickResponses(picks))
}

func (h *Handler) LatestParlays(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	parlays, err := h.picks.LatestParlays(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]parlayResponse, 0, len(parlays))
	for i := range parlays {
		out = append(out, toParlayResponse(&parlays[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handler) Mystery(w http.ResponseWriter, r *http.Request) {
	mystery, err := h.picks.LatestMystery(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if mystery == nil {
		respondError(w, http.StatusNotFound, "no mystery pick yet")
		return
	}
	respondJSON(w, http.StatusOK, toParlayResponse(mystery))
}

func toBatchResponse(result *pickService.BatchResult) batchResponse {
	resp := batchResponse{
		BatchID:       result.BatchID,
		Picks:         result.PicksBySport,
		Parlays:       result.ParlaysBySport,
		SkippedSports: result.SkippedSports,
		ShortSports:   result.ShortSports,
	}
	if result.Mystery != nil {
		resp.MysterySummary = result.Mystery.Summary
	}
	return resp
}

func toPickResponses(picks []models.Pick) []pickResponse {
	out := make([]pickResponse, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickResponse{
			ID:              p.ID,
			Sport:           p.Sport,
			Tier:            p.Tier,
			Pick:            p.PickText,
			Summary:         p.Summary,
			Confidence:      p.Confidence,
			HitChance:       p.HitChance,
			Sportsbook:      p.Sportsbook,
			Odds:            p.Odds,
			SmartlineValue:  p.SmartlineValue,
			PublicFadeValue: p.PublicFadeValue,
			CreatedAt:       p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return out
}

func toParlayResponse(p *models.BlackLedgerPick) parlayResponse {
	resp := parlayResponse{
		ID:         p.ID,
		BatchID:    p.BatchID,
		Sport:      p.Sport,
		Tier:       p.Tier,
		BetType:    p.BetType,
		Legs:       p.Legs,
		HitChance:  p.HitChance,
		Confidence: p.Confidence,
		Summary:    p.Summary,
		Result:     p.Result,
		IsMystery:  p.IsMystery,
		CreatedAt:  p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if value, ok := pickService.GetCombinedParlayValue(pickService.ValueLegs(p)); ok {
		resp.CombinedOdds = value.CombinedAmerican
		score := value.ValueScore
		resp.ValueScore = &score
	}
	return resp
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
