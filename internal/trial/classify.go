package trial

// Valid reaction-time range in milliseconds, inclusive on both ends.
const (
	MinValidRT = 100.0
	MaxValidRT = 500.0
)

// Classification is the derived category of a single reaction time.
type Classification int

const (
	// Valid is a reaction time inside [MinValidRT, MaxValidRT].
	Valid Classification = iota
	// Commission is a premature response, RT below MinValidRT.
	Commission
	// Lapse is a slow or missing response, RT above MaxValidRT.
	Lapse
)

// String returns the lowercase name of the classification.
func (c Classification) String() string {
	switch c {
	case Valid:
		return "valid"
	case Commission:
		return "commission"
	case Lapse:
		return "lapse"
	default:
		return "unknown"
	}
}

// Classify applies the three-way range rule to a reaction time.
// It is a pure function and deliberately ignores the Error, Commissions and
// Lapses columns of the source file: classification is recomputed from the
// RT alone so that sub-100ms responses are independently recounted as
// commissions.
func Classify(rt float64) Classification {
	switch {
	case rt < MinValidRT:
		return Commission
	case rt > MaxValidRT:
		return Lapse
	default:
		return Valid
	}
}
