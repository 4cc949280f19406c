// Package report renders a projection run for humans: a console summary and
// a patched block inside the repository README. Wording follows the original
// publication and is intentionally German.
package report

import (
	"fmt"
	"strings"

	"github.com/profvolz/gasspeicher/projection"
)

// Summary renders the console report for one run.
func Summary(rec *projection.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Projektion #Gasspeicher DE vom %s\n", rec.RunDateBerlin)
	fmt.Fprintf(&b, "Fuellstand %s%% am %s (Minimum %s%%)\n",
		trimFloat(rec.CurrentLevelPct, 4),
		rec.LatestDataDate.Format("2006-01-02"),
		trimFloat(rec.MinimumPct, 4))
	fmt.Fprintf(&b, "Datenquelle url_b wurde geladen aus: %s\n", rec.SourceMode)
	b.WriteString("\n")
	b.WriteString("Szenarien - Minimum wird erreicht am:\n")

	for _, sc := range rec.Scenarios {
		target := "nicht erreicht (nicht-negative Rate)"
		days := ""
		if sc.TargetDate != nil {
			target = sc.TargetDate.Format("2006-01-02")
		}
		if sc.DaysToMin != nil {
			days = trimFloat(*sc.DaysToMin, 3)
		}
		fmt.Fprintf(&b, "- %s: %s | Rate %s%%/Tag | Tage bis Minimum %s\n",
			sc.Label, target, trimFloat(sc.Rate, 6), days)
	}

	b.WriteString("\n")
	b.WriteString("Datenquelle: @bnetza\n")
	b.WriteString("Analyse: @ProfVolz\n")

	return b.String()
}

// trimFloat drops trailing zeros but keeps one decimal on whole numbers,
// so the threshold prints as "20.0" rather than "20".
func trimFloat(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
