package fmu

//go:generate go tool stringer -type=Variability -output=variability_string.go
//go:generate go tool stringer -type=Causality -output=causality_string.go

// Variability is the FMI 2.0 variability attribute of a scalar variable.
type Variability int

const (
	VariabilityUnknown Variability = iota

	VariabilityConstant
	VariabilityFixed
	VariabilityTunable
	VariabilityDiscrete
	VariabilityContinuous
)

// Causality is the FMI 2.0 causality attribute of a scalar variable.
type Causality int

const (
	CausalityUnknown Causality = iota

	CausalityParameter
	CausalityCalculatedParameter
	CausalityInput
	CausalityOutput
	CausalityLocal
	CausalityIndependent
)

// ParseVariability maps a modelDescription.xml variability attribute value.
// An absent attribute defaults to continuous per the FMI 2.0 standard.
func ParseVariability(s string) Variability {
	switch s {
	case "constant":
		return VariabilityConstant
	case "fixed":
		return VariabilityFixed
	case "tunable":
		return VariabilityTunable
	case "discrete":
		return VariabilityDiscrete
	case "continuous", "":
		return VariabilityContinuous
	default:
		return VariabilityUnknown
	}
}

// ParseCausality maps a modelDescription.xml causality attribute value.
// An absent attribute defaults to local per the FMI 2.0 standard.
func ParseCausality(s string) Causality {
	switch s {
	case "parameter":
		return CausalityParameter
	case "calculatedParameter":
		return CausalityCalculatedParameter
	case "input":
		return CausalityInput
	case "output":
		return CausalityOutput
	case "local", "":
		return CausalityLocal
	case "independent":
		return CausalityIndependent
	default:
		return CausalityUnknown
	}
}
