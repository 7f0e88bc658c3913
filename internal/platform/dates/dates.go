// Package dates centraliza el manejo de fechas-calendario (YYYY-MM-DD).
// Todas las comparaciones del dominio son a granularidad de día: se normaliza
// a medianoche UTC antes de comparar para evitar corrimientos por hora/zona.
package dates

import (
	"errors"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Day normaliza t al inicio de su día calendario (medianoche UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays suma días calendario sobre la fecha normalizada.
// AddDate respeta fin de mes, fin de año y años bisiestos.
func AddDays(t time.Time, days int) time.Time {
	return Day(t).AddDate(0, 0, days)
}

// SameDay indica si a y b caen en el mismo día calendario.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// Parse interpreta una fecha YYYY-MM-DD.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Format serializa una fecha como YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(Layout)
}

// FormatPtr tolera nil (campos opcionales en respuestas).
func FormatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Format(*t)
}

// InRange indica si t cae dentro de [from, to], ambos extremos inclusive,
// comparando a granularidad de día.
func InRange(t, from, to time.Time) bool {
	d := Day(t)
	return !d.Before(Day(from)) && !d.After(Day(to))
}
