package species

import (
	"encoding/json"
	"fmt"
	"time"

	"livestock-registry/internal/platform/dates"
)

// AttributeValue es la unión etiquetada de valores de atributo: el campo
// activo depende de Type. Reemplaza al diccionario sin tipo del esquema
// original; la validación contra la especie ocurre al escribir.
type AttributeValue struct {
	Type AttributeType

	Text   string
	Number float64
	Date   *time.Time
	Bool   bool
}

type attributeValueJSON struct {
	Type  AttributeType   `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	var raw any
	switch v.Type {
	case AttributeText, AttributeSelect:
		raw = v.Text
	case AttributeNumber:
		raw = v.Number
	case AttributeDate:
		if v.Date == nil {
			raw = nil
		} else {
			raw = dates.Format(*v.Date)
		}
	case AttributeBoolean:
		raw = v.Bool
	default:
		return nil, fmt.Errorf("unknown attribute type %q", v.Type)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(attributeValueJSON{Type: v.Type, Value: b})
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	var aux attributeValueJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if !aux.Type.Valid() {
		return fmt.Errorf("unknown attribute type %q", aux.Type)
	}

	out := AttributeValue{Type: aux.Type}
	switch aux.Type {
	case AttributeText, AttributeSelect:
		if err := json.Unmarshal(aux.Value, &out.Text); err != nil {
			return fmt.Errorf("attribute %s: expected string value", aux.Type)
		}
	case AttributeNumber:
		if err := json.Unmarshal(aux.Value, &out.Number); err != nil {
			return fmt.Errorf("attribute %s: expected numeric value", aux.Type)
		}
	case AttributeDate:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err != nil {
			return fmt.Errorf("attribute %s: expected YYYY-MM-DD value", aux.Type)
		}
		if s != "" {
			t, err := dates.Parse(s)
			if err != nil {
				return fmt.Errorf("attribute %s: expected YYYY-MM-DD value", aux.Type)
			}
			out.Date = &t
		}
	case AttributeBoolean:
		if err := json.Unmarshal(aux.Value, &out.Bool); err != nil {
			return fmt.Errorf("attribute %s: expected boolean value", aux.Type)
		}
	}

	*v = out
	return nil
}

// ValidateAttributes valida values contra las definiciones de la especie:
// claves desconocidas se rechazan, los required deben estar presentes, el tipo
// del valor debe coincidir con el de la definición y un select debe caer en
// sus options.
func ValidateAttributes(defs []AttributeDefinition, values map[string]AttributeValue) error {
	byID := make(map[string]AttributeDefinition, len(defs))
	for _, d := range defs {
		byID[d.ID] = d
	}

	for id, val := range values {
		def, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown attribute %q", ErrInvalidInput, id)
		}
		if val.Type != def.Type {
			return fmt.Errorf("%w: attribute %q expects type %s, got %s",
				ErrInvalidInput, def.Name, def.Type, val.Type)
		}
		if def.Type == AttributeSelect && !contains(def.Options, val.Text) {
			return fmt.Errorf("%w: attribute %q: value %q is not an option",
				ErrInvalidInput, def.Name, val.Text)
		}
	}

	for _, def := range defs {
		if !def.Required {
			continue
		}
		if _, ok := values[def.ID]; !ok {
			return fmt.Errorf("%w: attribute %q is required", ErrInvalidInput, def.Name)
		}
	}
	return nil
}

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
