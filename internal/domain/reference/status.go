package reference

// Status is the classification result for a single metric value.
type Status string

const (
	StatusOptimal      Status = "optimal"
	StatusAcceptable   Status = "acceptable"
	StatusConcerning   Status = "concerning"
	StatusOutsideRange Status = "outside_range"
	// StatusNoReference means a value exists but cannot be judged:
	// no band data resolves for the person, or the value is not numeric.
	// Never conflated with StatusOutsideRange, which means the value was
	// judged and fell outside every defined band.
	StatusNoReference Status = "no_reference"
	StatusNotEntered  Status = "not_entered"
)

// Entered reports whether the status represents an entered value.
func (s Status) Entered() bool { return s != StatusNotEntered }

// Sex selects sex-specific reference bands.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexAny    Sex = "any"
)

// AgeBand is the age bucket used for band lookup.
type AgeBand string

const (
	AgeBand18to39 AgeBand = "18-39"
	AgeBand40to59 AgeBand = "40-59"
	AgeBand60Plus AgeBand = "60+"
	AgeBandAll    AgeBand = "all"
)

// AgeBandFor maps an age to its band. A missing age deliberately falls
// back to the youngest band rather than being treated as an error.
func AgeBandFor(age *int) AgeBand {
	switch {
	case age == nil:
		return AgeBand18to39
	case *age < 40:
		return AgeBand18to39
	case *age < 60:
		return AgeBand40to59
	default:
		return AgeBand60Plus
	}
}

// Direction describes which way "better" points for a metric. It is
// display metadata only; classification is interval membership.
type Direction string

const (
	DirectionLowerBetter  Direction = "lower_better"
	DirectionHigherBetter Direction = "higher_better"
	DirectionInRange      Direction = "in_range"
	DirectionNeutral      Direction = "neutral"
	DirectionCategorical  Direction = "categorical"
)
