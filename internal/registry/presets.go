package registry

func init() {
	for _, p := range presets {
		Register(p)
	}
}

var presets = []Profile{
	{ID: "terminator", Name: "Terminator", Aggression: 0.95, RiskTolerance: 0.9, Accuracy: 0.85, PreferredRange: RangeFar},
	{ID: "sniper", Name: "Sniper", Aggression: 0.6, RiskTolerance: 0.3, Accuracy: 0.95, PreferredRange: RangeFar},
	{ID: "berserker", Name: "Berserker", Aggression: 1.0, RiskTolerance: 1.0, Accuracy: 0.5, PreferredRange: RangeClose},
	{ID: "tactician", Name: "Tactician", Aggression: 0.5, RiskTolerance: 0.4, Accuracy: 0.8, PreferredRange: RangeMedium},
	{ID: "coward", Name: "Coward", Aggression: 0.2, RiskTolerance: 0.1, Accuracy: 0.7, PreferredRange: RangeFar},
	{ID: "random-rick", Name: "Random Rick", Aggression: 0.5, RiskTolerance: 0.5, Accuracy: 0.4, PreferredRange: RangeMedium},
	{ID: "predator", Name: "Predator", Aggression: 0.9, RiskTolerance: 0.8, Accuracy: 0.75, PreferredRange: RangeClose},
	{ID: "ghost", Name: "Ghost", Aggression: 0.3, RiskTolerance: 0.2, Accuracy: 0.9, PreferredRange: RangeFar},
	{ID: "tank", Name: "Tank", Aggression: 0.85, RiskTolerance: 0.95, Accuracy: 0.6, PreferredRange: RangeClose},
	{ID: "ninja", Name: "Ninja", Aggression: 0.7, RiskTolerance: 0.6, Accuracy: 0.85, PreferredRange: RangeMedium},
	{ID: "veteran", Name: "Veteran", Aggression: 0.65, RiskTolerance: 0.5, Accuracy: 0.88, PreferredRange: RangeMedium},
	{ID: "chaos", Name: "Chaos", Aggression: 0.8, RiskTolerance: 0.9, Accuracy: 0.45, PreferredRange: RangeClose},
	{ID: "precision", Name: "Precision", Aggression: 0.4, RiskTolerance: 0.25, Accuracy: 0.92, PreferredRange: RangeFar},
	{ID: "rush", Name: "Rush", Aggression: 0.95, RiskTolerance: 0.85, Accuracy: 0.55, PreferredRange: RangeClose},
	{ID: "defender", Name: "Defender", Aggression: 0.35, RiskTolerance: 0.15, Accuracy: 0.75, PreferredRange: RangeFar},
	{ID: "balanced", Name: "Balanced", Aggression: 0.6, RiskTolerance: 0.5, Accuracy: 0.7, PreferredRange: RangeMedium},
}
