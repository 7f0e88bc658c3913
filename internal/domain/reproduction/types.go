package reproduction

// Type distingue celo de inseminación. Es inmutable después de crear el
// registro: decide qué campos derivados aplican.
type Type string

const (
	TypeHeat         Type = "heat"
	TypeInsemination Type = "insemination"
)

// Intensity del celo observado (solo type=heat).
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
	IntensityUnset  Intensity = ""
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh, IntensityUnset:
		return true
	}
	return false
}

// Method de inseminación (solo type=insemination).
type Method string

const (
	MethodNatural    Method = "natural"
	MethodArtificial Method = "artificial"
	MethodUnset      Method = ""
)

func (m Method) Valid() bool {
	switch m {
	case MethodNatural, MethodArtificial, MethodUnset:
		return true
	}
	return false
}

// Result de una inseminación. Por defecto pending.
type Result string

const (
	ResultPending Result = "pending"
	ResultSuccess Result = "success"
	ResultFailed  Result = "failed"
)

func (r Result) Valid() bool {
	switch r {
	case ResultPending, ResultSuccess, ResultFailed:
		return true
	}
	return false
}
