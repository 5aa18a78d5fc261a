package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/xtding233/egg-hatchery/internal/hatch"
)

type rowResp struct {
	Label           string  `json:"label"`
	Count           int     `json:"count"`
	TrueProbability float64 `json:"true_probability"`
	Expected        float64 `json:"expected"`
	OriginalOdds    string  `json:"original_odds"`
}

type hatchResp struct {
	RunID        string    `json:"run_id,omitempty"`
	Eggs         int       `json:"eggs,omitempty"`
	LuckPercent  float64   `json:"luck_percent"`
	ShinyChance  float64   `json:"shiny_chance"`
	MythicChance float64   `json:"mythic_chance"`
	Rows         []rowResp `json:"rows"`
}

type paramsResp struct {
	LuckPercent  float64 `json:"luck_percent"`
	ShinyChance  float64 `json:"shiny_chance"`
	MythicChance float64 `json:"mythic_chance"`
}

type oddsResp struct {
	Label        string `json:"label"`
	OriginalOdds string `json:"original_odds"`
}

type weightResp struct {
	Name                  string  `json:"name"`
	Rarity                string  `json:"rarity"`
	BaseChance            float64 `json:"base_chance"`
	NormalizedProbability float64 `json:"normalized_probability"`
}

type errResp struct {
	Err string `json:"err"`
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseBool(r *http.Request, key string) (bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return false, ""
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, "invalid " + key
	}
	return v, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
}

func toParamsResp(p hatch.Params) paramsResp {
	return paramsResp{LuckPercent: p.LuckPercent(), ShinyChance: p.ShinyChance(), MythicChance: p.MythicChance()}
}

func toHatchResp(rep Report) hatchResp {
	rows := make([]rowResp, len(rep.Rows))
	for i, r := range rep.Rows {
		rows[i] = rowResp{
			Label:           r.Label,
			Count:           r.Count,
			TrueProbability: r.TrueProbability,
			Expected:        r.Expected,
			OriginalOdds:    r.OriginalOdds,
		}
	}
	return hatchResp{
		RunID:        rep.RunID,
		Eggs:         rep.Eggs,
		LuckPercent:  rep.LuckPercent,
		ShinyChance:  rep.ShinyChance,
		MythicChance: rep.MythicChance,
		Rows:         rows,
	}
}

// NewHandler routes the hatchery's HTTP API.
func NewHandler(h *Hatchery) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/hatch", h.handleHatch)
	mux.HandleFunc("/luck", h.handleSet(h.SetLuckPercent))
	mux.HandleFunc("/shiny", h.handleSet(h.SetShinyPercent))
	mux.HandleFunc("/mythic", h.handleSet(h.SetMythicPercent))
	mux.HandleFunc("/params", h.handleParams)
	mux.HandleFunc("/odds", h.handleOdds)
	mux.HandleFunc("/weights", h.handleWeights)
	return mux
}

func (h *Hatchery) handleHatch(w http.ResponseWriter, r *http.Request) {
	n, ok, msg := parseInt(r, "eggs")
	if msg != "" || (ok && (n < 1 || n > h.MaxEggs())) {
		badRequest(w, "please enter a valid number of eggs")
		return
	}
	if !ok {
		badRequest(w, "missing param eggs")
		return
	}
	rep, err := h.Hatch(n)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toHatchResp(rep))
}

func (h *Hatchery) handleSet(set func(float64) (hatch.Params, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok, msg := parseFloat(r, "percent")
		if msg != "" {
			badRequest(w, msg)
			return
		}
		if !ok {
			badRequest(w, "missing param percent")
			return
		}
		p, err := set(v)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toParamsResp(p))
	}
}

func (h *Hatchery) handleParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toParamsResp(h.Params()))
}

func (h *Hatchery) handleOdds(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		badRequest(w, "missing param name")
		return
	}
	shiny, msg := parseBool(r, "shiny")
	if msg != "" {
		badRequest(w, msg)
		return
	}
	mythic, msg := parseBool(r, "mythic")
	if msg != "" {
		badRequest(w, msg)
		return
	}
	label, odds, err := h.OriginalOdds(name, shiny, mythic)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, oddsResp{Label: label, OriginalOdds: odds})
}

func (h *Hatchery) handleWeights(w http.ResponseWriter, r *http.Request) {
	weighted, err := h.Weights()
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	out := make([]weightResp, len(weighted))
	for i, o := range weighted {
		out[i] = weightResp{
			Name:                  o.Name,
			Rarity:                o.Rarity.String(),
			BaseChance:            o.BaseChance,
			NormalizedProbability: o.NormalizedProbability,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
