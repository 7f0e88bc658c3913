package feedings

import "time"

// Unit de la cantidad suministrada.
// @Enum kg, lb, g, L
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitPound    Unit = "lb"
	UnitGram     Unit = "g"
	UnitLiter    Unit = "L"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitKilogram, UnitPound, UnitGram, UnitLiter:
		return true
	}
	return false
}

// Feeding registra una ración suministrada a un animal en una fecha.
type Feeding struct {
	ID       string
	AnimalID string

	FoodType string
	Quantity float64
	Unit     Unit
	Date     time.Time

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
