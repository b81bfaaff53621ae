package models

import "time"

type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

type AnalysisSource string

const (
	SourceOracle   AnalysisSource = "oracle"
	SourceFallback AnalysisSource = "fallback"
	SourceCache    AnalysisSource = "cache"
)

// Analysis dimension keys, in report order.
const (
	DimensionLocation  = "locationIntelligence"
	DimensionCapacity  = "capacityOptimization"
	DimensionBudget    = "budgetEfficiency"
	DimensionTechnical = "technicalReadiness"
	DimensionService   = "serviceQuality"
	DimensionSeasonal  = "seasonalFactors"
	DimensionIndustry  = "industryAlignment"
	DimensionRisk      = "riskMitigation"
)

var Dimensions = []string{
	DimensionLocation,
	DimensionCapacity,
	DimensionBudget,
	DimensionTechnical,
	DimensionService,
	DimensionSeasonal,
	DimensionIndustry,
	DimensionRisk,
}

type DimensionScore struct {
	Score   int    `json:"score"`
	Insight string `json:"insight"`
}

type AlternativeOption struct {
	Suggestion       string `json:"suggestion"`
	Impact           string `json:"impact"`
	ScoreImprovement int    `json:"scoreImprovement"`
}

type AIAnalysisResult struct {
	OverallScore            int                       `json:"overallScore"`
	SuccessProbability      Level                     `json:"successProbability"`
	RiskLevel               Level                     `json:"riskLevel"`
	Analysis                map[string]DimensionScore `json:"analysis"`
	KeyStrengths            []string                  `json:"keyStrengths"`
	PotentialRisks          []string                  `json:"potentialRisks"`
	OptimizationSuggestions []string                  `json:"optimizationSuggestions"`
	AlternativeOptions      []AlternativeOption       `json:"alternativeOptions"`
	ConfidenceLevel         int                       `json:"confidenceLevel"`
	Source                  AnalysisSource            `json:"source,omitempty"`
	GeneratedAt             time.Time                 `json:"generatedAt,omitempty"`
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ProbabilityFor maps an overall score to a success probability.
func ProbabilityFor(score int) Level {
	switch {
	case score > 85:
		return LevelHigh
	case score > 70:
		return LevelMedium
	}
	return LevelLow
}

// RiskFor is the inverse of ProbabilityFor.
func RiskFor(score int) Level {
	switch {
	case score > 85:
		return LevelLow
	case score > 70:
		return LevelMedium
	}
	return LevelHigh
}

func validLevel(l Level) bool {
	return l == LevelLow || l == LevelMedium || l == LevelHigh
}

// Normalize clamps every score into [0,100], fills missing dimensions with the
// overall score and replaces unknown levels with ones derived from the score.
func (a *AIAnalysisResult) Normalize() {
	a.OverallScore = clampScore(a.OverallScore)
	a.ConfidenceLevel = clampScore(a.ConfidenceLevel)

	if a.Analysis == nil {
		a.Analysis = make(map[string]DimensionScore, len(Dimensions))
	}
	for key, dim := range a.Analysis {
		dim.Score = clampScore(dim.Score)
		a.Analysis[key] = dim
	}
	for _, key := range Dimensions {
		if _, ok := a.Analysis[key]; !ok {
			a.Analysis[key] = DimensionScore{Score: a.OverallScore}
		}
	}

	if !validLevel(a.SuccessProbability) {
		a.SuccessProbability = ProbabilityFor(a.OverallScore)
	}
	if !validLevel(a.RiskLevel) {
		a.RiskLevel = RiskFor(a.OverallScore)
	}
	if a.KeyStrengths == nil {
		a.KeyStrengths = []string{}
	}
	if a.PotentialRisks == nil {
		a.PotentialRisks = []string{}
	}
	if a.OptimizationSuggestions == nil {
		a.OptimizationSuggestions = []string{}
	}
	if a.AlternativeOptions == nil {
		a.AlternativeOptions = []AlternativeOption{}
	}
}

// Clone returns a copy that shares no map or slice with a.
func (a AIAnalysisResult) Clone() AIAnalysisResult {
	out := a
	if a.Analysis != nil {
		out.Analysis = make(map[string]DimensionScore, len(a.Analysis))
		for k, v := range a.Analysis {
			out.Analysis[k] = v
		}
	}
	out.KeyStrengths = cloneStrings(a.KeyStrengths)
	out.PotentialRisks = cloneStrings(a.PotentialRisks)
	out.OptimizationSuggestions = cloneStrings(a.OptimizationSuggestions)
	if a.AlternativeOptions != nil {
		out.AlternativeOptions = append(make([]AlternativeOption, 0, len(a.AlternativeOptions)), a.AlternativeOptions...)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
