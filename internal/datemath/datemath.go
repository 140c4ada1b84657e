package datemath

import (
	"fmt"
	"time"
)

// monthNames to stała tabela angielskich nazw miesięcy. Format dat jest
// częścią kontraktu z backendem i nie zależy od locale systemu.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// AddDays przesuwa datę o podaną liczbę dni kalendarzowych.
// Używa arytmetyki kalendarzowej (nie wielokrotności 24h), więc zmiana czasu
// letniego nie powoduje przesunięcia o dzień. Godzina w dacie bazowej jest
// zachowana w wyniku.
func AddDays(base time.Time, days int) time.Time {
	return base.AddDate(0, 0, days)
}

// FormatLongDate formatuje datę do wyświetlenia, np. "5 August 2025".
// Dzień bez zera wiodącego, pełna angielska nazwa miesiąca.
func FormatLongDate(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), monthNames[d.Month()-1], d.Year())
}

// DaysBetween zwraca liczbę dni kalendarzowych między dwiema datami.
// Składnik godzinowy jest ignorowany — liczą się tylko daty.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
