package reproduction

import "time"

// Record es un evento reproductivo: un celo observado o una inseminación.
// Intensity aplica solo a celos; Method, SireCode, Result y Technician solo a
// inseminaciones. Las fechas derivadas (próximo celo, parto estimado) nunca
// se guardan: se calculan al leer, contra el "now" del caller.
type Record struct {
	ID       string
	Type     Type
	AnimalID string
	Date     time.Time

	Intensity Intensity

	Method     Method
	SireCode   string
	Result     Result
	Technician string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
