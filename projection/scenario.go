package projection

// ScenarioKey identifies one of the five fixed projection scenarios. The keys
// double as ledger column prefixes and must stay stable across runs.
type ScenarioKey string

const (
	Optimistic         ScenarioKey = "optimistic_20pct_lower_withdrawal"
	SmallestWithdrawal ScenarioKey = "smallest_withdrawal"
	AverageWithdrawal  ScenarioKey = "average_withdrawal"
	LargestWithdrawal  ScenarioKey = "largest_withdrawal"
	Pessimistic        ScenarioKey = "pessimistic_20pct_higher_withdrawal"
)

// Scenario pairs a key with its display label (German, matching the source
// dataset's publication).
type Scenario struct {
	Key   ScenarioKey
	Label string
}

// Scenarios lists all five scenarios in their fixed reporting order, from
// most to least optimistic.
var Scenarios = []Scenario{
	{Optimistic, "Optimistisch (20% weniger Entnahme)"},
	{SmallestWithdrawal, "Kleinste Entnahme"},
	{AverageWithdrawal, "Durchschnittliche Entnahme"},
	{LargestWithdrawal, "Groesste Entnahme"},
	{Pessimistic, "Pessimistisch (20% mehr Entnahme)"},
}
