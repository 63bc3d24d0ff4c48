package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6E6E6E"))

func useColor(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func tierStyle(tier domain.QualityTier) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tier.Color()))
}

func renderWeeks(w io.Writer, weeks []domain.WeekRecord, color bool) {
	if len(weeks) == 0 {
		fmt.Fprintln(w, "no sleep entries recorded")
		return
	}

	header := fmt.Sprintf("%-9s %-23s %7s %7s %5s %5s %5s  %s",
		"WEEK", "DATES", "NIGHTS", "HOURS", "DEEP", "REM", "LIGHT", "QUALITY")
	if color {
		header = headerStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	for _, week := range weeks {
		quality := fmt.Sprintf("%3d %s", week.Averages.AvgQuality, week.Tier)
		if color {
			quality = tierStyle(week.Tier).Render(quality)
		}
		fmt.Fprintf(w, "%-9s %-23s %7d %7s %5s %5s %5s  %s\n",
			week.Key,
			week.StartDate+" - "+week.EndDate,
			len(week.Entries),
			hours(week.Averages.AvgDuration),
			hours(week.Averages.AvgDeep),
			hours(week.Averages.AvgRem),
			hours(week.Averages.AvgLight),
			quality,
		)
	}
}

func renderPrediction(w io.Writer, p domain.Prediction, color bool) {
	score := strconv.Itoa(p.Score)
	if color {
		score = tierStyle(domain.QualityTierOf(p.Score)).Bold(true).Render(score)
	}
	fmt.Fprintf(w, "score:      %s\n", score)
	fmt.Fprintf(w, "confidence: %.2f (%s)\n", p.Confidence, p.ConfidenceLevel)
	fmt.Fprintf(w, "method:     %s\n", p.Method)
	fmt.Fprintf(w, "%s\n", p.Message)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
