package species

import "time"

// AttributeType define los tipos soportados para atributos personalizados.
// @Enum text, number, date, select, boolean
type AttributeType string

const (
	AttributeText    AttributeType = "text"
	AttributeNumber  AttributeType = "number"
	AttributeDate    AttributeType = "date"
	AttributeSelect  AttributeType = "select"
	AttributeBoolean AttributeType = "boolean"
)

func (t AttributeType) Valid() bool {
	switch t {
	case AttributeText, AttributeNumber, AttributeDate, AttributeSelect, AttributeBoolean:
		return true
	}
	return false
}

// AttributeDefinition declara un atributo personalizado que los animales de
// esta especie pueden llevar. Options solo aplica a type=select.
type AttributeDefinition struct {
	ID       string
	Name     string
	Type     AttributeType
	Options  []string
	Required bool
}

// Species representa una especie con su esquema de atributos y sus parámetros
// reproductivos. HeatCycleDays/GestationDays en 0 significa "usar el default
// del predictor" (biología bovina: 21 y 114 días).
type Species struct {
	ID          string
	Name        string
	Description string
	Icon        string

	Attributes []AttributeDefinition

	HeatCycleDays int
	GestationDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}
