// Package dashboard sequences the dependent fetches behind the prediction
// page: options once, weather on every location change, prediction on
// explicit submit gated by weather availability.
package dashboard

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/Shubham-2704/AgriNova/internal/backend"
	"github.com/Shubham-2704/AgriNova/internal/model"
)

// FallbackState is the only hardcoded selector value: when the options fetch
// fails, the state field alone falls back to it and the form stays
// unsubmittable.
const FallbackState = "Gujarat"

// Local validation errors surfaced before any network call.
var (
	// ErrWeatherNotLoaded is returned when submitting without a weather snapshot.
	ErrWeatherNotLoaded = errors.New("weather data is not loaded for the selected city")
	// ErrInvalidArea is returned when area is not a positive number.
	ErrInvalidArea = errors.New("land area must be a positive number")
	// ErrInvalidSelection is returned when a selector value is not in the option lists.
	ErrInvalidSelection = errors.New("selection is not one of the available options")
	// ErrOptionsNotLoaded is returned when the option lists are unavailable.
	ErrOptionsNotLoaded = errors.New("form options are not loaded")
)

// Phase is the orchestrator's position in the dashboard request sequence.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseOptionsLoading Phase = "options_loading"
	PhaseOptionsReady   Phase = "options_ready"
	PhaseWeatherLoading Phase = "weather_loading"
	PhaseWeatherReady   Phase = "weather_ready"
	PhasePredictLoading Phase = "predict_loading"
	PhaseResultsReady   Phase = "results_ready"
)

// API is the slice of the backend client the orchestrator depends on.
type API interface {
	Options(ctx context.Context) (*model.Options, error)
	Weather(ctx context.Context, state, city string) (*model.WeatherSnapshot, error)
	PredictAs(ctx context.Context, token string, query model.FarmQuery) ([]model.CropRecommendation, error)
}

// TokenSource yields the stored session token a prediction is made as.
type TokenSource interface {
	Token(ctx context.Context, clientID string) (string, error)
}

// collapsedLimit and expandedLimit bound how many recommendations are shown.
const (
	collapsedLimit = 3
	expandedLimit  = 6
)

type state struct {
	phase      Phase
	options    *model.Options
	pageErr    string
	selection  model.Location
	weather    *model.WeatherSnapshot
	weatherErr string
	weatherSeq uint64
	recs       []model.CropRecommendation
	predictErr string
	showAll    bool
}

// View is a read-only snapshot of one client's dashboard state.
type View struct {
	Phase          Phase                      `json:"phase"`
	Options        *model.Options             `json:"options,omitempty"`
	PageError      string                     `json:"page_error,omitempty"`
	Selection      model.Location             `json:"selection"`
	Weather        *model.WeatherSnapshot     `json:"weather,omitempty"`
	WeatherError   string                     `json:"weather_error,omitempty"`
	PredictError   string                     `json:"predict_error,omitempty"`
	CanSubmit      bool                       `json:"can_submit"`
	Visible        []model.CropRecommendation `json:"recommendations"`
	HasMore        bool                       `json:"has_more"`
	Expanded       bool                       `json:"expanded"`
	TotalReturned  int                        `json:"total_returned"`
	FallbackState  string                     `json:"fallback_state,omitempty"`
	DefaultStateOf string                     `json:"default_state,omitempty"`
}

// Orchestrator holds dashboard state per client.
type Orchestrator struct {
	api    API
	tokens TokenSource
	tr     func(key string) string

	mu     sync.Mutex
	states map[string]*state
}

// New creates a dashboard orchestrator. tr resolves inline error keys.
func New(api API, tokens TokenSource, tr func(string) string) *Orchestrator {
	return &Orchestrator{
		api:    api,
		tokens: tokens,
		tr:     tr,
		states: make(map[string]*state),
	}
}

func (o *Orchestrator) stateFor(clientID string) *state {
	st, ok := o.states[clientID]
	if !ok {
		st = &state{phase: PhaseIdle}
		o.states[clientID] = st
	}
	return st
}

// LoadOptions populates the selector value sets. It runs the fetch at most
// once per client; on failure only the state field has a fallback and the
// form stays invalid until a later load succeeds.
func (o *Orchestrator) LoadOptions(ctx context.Context, clientID string) View {
	o.mu.Lock()
	st := o.stateFor(clientID)
	if st.options != nil {
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v
	}
	st.phase = PhaseOptionsLoading
	o.mu.Unlock()

	opts, err := o.api.Options(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		st.pageErr = o.tr("dashboard.errorLoadOptions")
		st.phase = PhaseIdle
		return o.viewLocked(st)
	}
	st.options = opts
	st.pageErr = ""
	st.phase = PhaseOptionsReady
	if len(opts.States) > 0 && st.selection.State == "" {
		st.selection.State = opts.States[0]
	}
	return o.viewLocked(st)
}

// SetLocation records a new (state, city) pair and refetches weather for it.
// The previous snapshot is dropped immediately so submission is re-disabled
// until the new snapshot arrives, and a late response for a superseded pair
// is discarded by sequence tag.
func (o *Orchestrator) SetLocation(ctx context.Context, clientID, stateName, city string) View {
	loc := model.Location{State: stateName, City: city}

	o.mu.Lock()
	st := o.stateFor(clientID)
	st.selection = loc
	st.weather = nil
	st.weatherErr = ""
	if stateName == "" || city == "" {
		st.phase = PhaseOptionsReady
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v
	}
	st.weatherSeq++
	seq := st.weatherSeq
	st.phase = PhaseWeatherLoading
	o.mu.Unlock()

	snap, err := o.api.Weather(ctx, loc.State, loc.City)

	o.mu.Lock()
	defer o.mu.Unlock()
	if st.weatherSeq != seq || st.selection != loc {
		// Stale response for a superseded selection: never applied.
		return o.viewLocked(st)
	}
	if err != nil {
		st.weatherErr = backend.ErrorMessage(err, o.tr("dashboard.errorWeather"))
		st.phase = PhaseOptionsReady
		return o.viewLocked(st)
	}
	st.weather = snap
	st.phase = PhaseWeatherReady
	return o.viewLocked(st)
}

// SubmitInput is the raw prediction form. Area arrives as text and is parsed
// here.
type SubmitInput struct {
	Season            string
	SoilType          string
	WaterAvailability string
	Area              string
}

// Submit validates the form and requests a prediction. It refuses without a
// weather snapshot for the current selection, and replaces the
// recommendation list wholesale on success, collapsing the expansion.
func (o *Orchestrator) Submit(ctx context.Context, clientID string, in SubmitInput) (View, error) {
	o.mu.Lock()
	st := o.stateFor(clientID)
	if st.weather == nil {
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v, ErrWeatherNotLoaded
	}
	if st.options == nil {
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v, ErrOptionsNotLoaded
	}
	if !st.options.HasCity(st.selection.City) ||
		!st.options.HasSeason(in.Season) ||
		!st.options.HasSoilType(in.SoilType) ||
		!st.options.HasWaterAvailability(in.WaterAvailability) {
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v, ErrInvalidSelection
	}
	area, err := parseArea(in.Area)
	if err != nil {
		v := o.viewLocked(st)
		o.mu.Unlock()
		return v, err
	}

	query := model.FarmQuery{
		State:             st.selection.State,
		City:              st.selection.City,
		Season:            in.Season,
		SoilType:          in.SoilType,
		WaterAvailability: in.WaterAvailability,
		Area:              area,
	}
	priorPhase := st.phase
	st.phase = PhasePredictLoading
	st.predictErr = ""
	o.mu.Unlock()

	token, err := o.tokens.Token(ctx, clientID)
	if err != nil {
		token = ""
	}
	recs, err := o.api.PredictAs(ctx, token, query)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		st.predictErr = backend.ErrorMessage(err, o.tr("dashboard.errorRecommendations"))
		st.phase = priorPhase
		return o.viewLocked(st), err
	}
	st.recs = recs
	st.showAll = false
	st.predictErr = ""
	st.phase = PhaseResultsReady
	return o.viewLocked(st), nil
}

// ToggleExpand flips between the top 3 and the top 6 recommendations. It
// never refetches.
func (o *Orchestrator) ToggleExpand(clientID string) View {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := o.stateFor(clientID)
	if len(st.recs) > collapsedLimit {
		st.showAll = !st.showAll
	}
	return o.viewLocked(st)
}

// Reset drops a client's dashboard state, e.g. on logout.
func (o *Orchestrator) Reset(clientID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.states, clientID)
}

// View returns the current snapshot without triggering any fetch.
func (o *Orchestrator) View(clientID string) View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.viewLocked(o.stateFor(clientID))
}

func (o *Orchestrator) viewLocked(st *state) View {
	limit := collapsedLimit
	if st.showAll {
		limit = expandedLimit
	}
	visible := st.recs
	if len(visible) > limit {
		visible = visible[:limit]
	}
	out := make([]model.CropRecommendation, len(visible))
	copy(out, visible)

	v := View{
		Phase:         st.phase,
		Options:       st.options,
		PageError:     st.pageErr,
		Selection:     st.selection,
		Weather:       st.weather,
		WeatherError:  st.weatherErr,
		PredictError:  st.predictErr,
		CanSubmit:     st.weather != nil && st.options != nil,
		Visible:       out,
		HasMore:       len(st.recs) > collapsedLimit,
		Expanded:      st.showAll,
		TotalReturned: len(st.recs),
	}
	if st.options == nil {
		v.FallbackState = FallbackState
	} else if len(st.options.States) > 0 {
		v.DefaultStateOf = st.options.States[0]
	}
	return v
}

func parseArea(text string) (float64, error) {
	area, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(area) || math.IsInf(area, 0) || area <= 0 {
		return 0, ErrInvalidArea
	}
	return area, nil
}
