package model

// PitchNode is one player placed on the pitch diagram. X and Y are percentages;
// Y is measured from the attacking end.
type PitchNode struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
}

// Lineup is a rendered formation for one roster.
type Lineup struct {
	Formation string      `json:"formation"`
	Nodes     []PitchNode `json:"nodes"`
}

// Adjustment is a named signed correction supplied by the simulation table.
type Adjustment struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// EstimateSource names the input that determined the win probability.
type EstimateSource string

const (
	SourceHeuristic  EstimateSource = "heuristic"
	SourceSimulation EstimateSource = "simulation"
	SourceModel      EstimateSource = "model"
)

// OutcomeEstimate is the blended prediction for a hypothetical fixture.
type OutcomeEstimate struct {
	Opponent        string         `json:"opponent"`
	Venue           Venue          `json:"venue,omitempty"`
	WinProbability  float64        `json:"win_probability"`
	WinPercent      int            `json:"win_percent"`
	ExpectedFor     float64        `json:"expected_for"`
	ExpectedAgainst float64        `json:"expected_against"`
	ScoreFor        int            `json:"score_for"`
	ScoreAgainst    int            `json:"score_against"`
	Adjustments     []Adjustment   `json:"adjustments,omitempty"`
	Source          EstimateSource `json:"source"`
}
