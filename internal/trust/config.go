package trust

// Config holds the tunable constants of the scoring engine. All values are
// configuration, not fixed constants; see DefaultConfig for the defaults the
// original deployment runs with.
type Config struct {
	// TimeDecayFactor controls how quickly old reviews lose weight (λ in
	// exp(-λ * age)). Must be non-negative.
	TimeDecayFactor float64
	// UnitSeconds is the age unit the decay exponent is expressed in.
	UnitSeconds int64
	// SentimentWeight bounds the influence of sentiment on the rating to
	// at most ± this many stars.
	SentimentWeight float64
	// VerifiedWeight and UnverifiedWeight are the credibility multipliers
	// per reviewer verification state.
	VerifiedWeight   float64
	UnverifiedWeight float64
}

const thirtyDaysSeconds = 60 * 60 * 24 * 30

func DefaultConfig() Config {
	return Config{
		TimeDecayFactor:  0.05,
		UnitSeconds:      thirtyDaysSeconds,
		SentimentWeight:  0.3,
		VerifiedWeight:   1.5,
		UnverifiedWeight: 0.8,
	}
}
