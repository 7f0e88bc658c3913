package vaccinations

import "time"

// Vaccination registra una dosis aplicada a un animal. NextDoseDate es
// opcional: sin ella el registro no participa del calendario ni de la
// clasificación pendiente/vencida.
type Vaccination struct {
	ID       string
	AnimalID string

	VaccineName     string
	ApplicationDate time.Time
	NextDoseDate    *time.Time

	Veterinarian string
	Batch        string
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
