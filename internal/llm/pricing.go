package llm

// ModelCost is USD per one million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns pricing for a model ID, or false when unknown.
func LookupCost(model string) (ModelCost, bool) {
	c, ok := modelCosts[model]
	return c, ok
}

// Pricing for the models the default configuration can resolve to.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":            {1, 5},
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-20250514":    {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.5-flash":            {0.3, 2.5},
	"google/gemini-2.0-flash-exp": {0, 0},
}
