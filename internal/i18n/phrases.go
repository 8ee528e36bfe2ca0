// Package i18n holds the short user-facing phrases used for diet status
// messages, in English and Polish.
package i18n

import (
	"fmt"
	"strings"
)

// Phrases is a complete set of status and continuity messages for one language.
type Phrases struct {
	Ended        string
	EndsToday    string
	EndsTomorrow string
	EndsInDays   func(n int) string

	// Successor offsets, relative to the last day of the current diet.
	NextOverlaps string
	NextSameDay  string
	NextDayAfter string
	NextInDays   func(n int) string
	NoSuccessor  string
	DietsEnding  func(n int) string
}

// English returns the English phrase set.
func English() Phrases {
	return Phrases{
		Ended:        "Ended",
		EndsToday:    "Ends today",
		EndsTomorrow: "Ends tomorrow",
		EndsInDays: func(n int) string {
			return fmt.Sprintf("Ends in %d days", n)
		},
		NextOverlaps: "next diet starts one day before this one ends",
		NextSameDay:  "next diet starts on the last day",
		NextDayAfter: "next diet starts the day after",
		NextInDays: func(n int) string {
			return fmt.Sprintf("next diet starts %d days after", n)
		},
		NoSuccessor: "no next diet scheduled",
		DietsEnding: func(n int) string {
			if n == 1 {
				return "1 diet ending soon"
			}
			return fmt.Sprintf("%d diets ending soon", n)
		},
	}
}

// Polish returns the Polish phrase set.
func Polish() Phrases {
	return Phrases{
		Ended:        "Zakończona",
		EndsToday:    "Kończy się dzisiaj",
		EndsTomorrow: "Kończy się jutro",
		EndsInDays: func(n int) string {
			return fmt.Sprintf("Kończy się za %d %s", n, Days(n))
		},
		NextOverlaps: "następna dieta zaczyna się dzień przed końcem",
		NextSameDay:  "następna dieta zaczyna się w ostatnim dniu",
		NextDayAfter: "następna dieta zaczyna się następnego dnia",
		NextInDays: func(n int) string {
			return fmt.Sprintf("następna dieta zaczyna się %d %s później", n, Days(n))
		},
		NoSuccessor: "brak zaplanowanej następnej diety",
		DietsEnding: func(n int) string {
			return fmt.Sprintf("%d %s wkrótce się %s", n,
				Decline(n, "dieta", "diety", "diet"), Decline(n, "kończy", "kończą", "kończy"))
		},
	}
}

// ForLocale picks a phrase set by language tag ("pl", "pl-PL", "en", ...).
// Unknown tags fall back to English.
func ForLocale(tag string) Phrases {
	lang := strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "pl" {
		return Polish()
	}
	return English()
}
