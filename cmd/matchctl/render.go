package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

var tokenColors = map[string]*color.Color{
	services.TokenGreen:  color.New(color.FgGreen, color.Bold),
	services.TokenYellow: color.New(color.FgYellow, color.Bold),
	services.TokenRed:    color.New(color.FgRed, color.Bold),
}

var (
	headingColor = color.New(color.FgWhite, color.Bold, color.Underline)
	mutedColor   = color.New(color.FgHiBlack, color.Italic)
)

func paint(token string) *color.Color {
	if c, ok := tokenColors[token]; ok {
		return c
	}
	return color.New(color.Reset)
}

func renderReport(w io.Writer, view *models.ViewModel) {
	headingColor.Fprintln(w, "Match Summary")
	if view.JobTitle != "" {
		fmt.Fprintf(w, "  %s\n", view.JobTitle)
	}
	fmt.Fprintf(w, "  %d%%  ", view.DisplayPercentage)
	paint(services.BucketColor(view.Bucket)).Fprintln(w, view.MatchLabel)

	if len(view.KeySkills) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Key Skills")
		for _, skill := range view.KeySkills {
			line := "  • " + skill.Name
			if skill.Years != "" {
				line += fmt.Sprintf(" (%s years)", skill.Years)
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(view.StageAnalysis) > 0 {
		fmt.Fprintln(w)
		headingColor.Fprintln(w, "Match Analysis Overview")
		for _, stage := range view.StageAnalysis {
			fmt.Fprintf(w, "  %-24s ", stage.Category)
			paint(services.StageBadgeColor(stage.Match)).Fprintf(w, "[%s]", stage.Match)
			if stage.Projects != "" {
				fmt.Fprintf(w, "  %s Projects", stage.Projects)
			}
			if stage.Criticality != "" {
				fmt.Fprintf(w, "  %s", stage.Criticality)
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Detailed Analysis")
	if view.DetailsPlaceholder != "" {
		mutedColor.Fprintf(w, "  %s\n", view.DetailsPlaceholder)
		return
	}
	for _, section := range view.Sections {
		renderSection(w, section)
	}
}

func renderSection(w io.Writer, section models.SectionView) {
	fmt.Fprintf(w, "  %s  ", section.Name)
	paint(services.BucketColor(section.Bucket)).Fprintf(w, "%d%%", section.DisplayPercentage)
	if section.HasScore() {
		fmt.Fprintf(w, " (%s/%s)", formatScore(*section.Score), formatScore(*section.TotalPossible))
	}
	fmt.Fprintln(w)

	for _, result := range section.Results {
		marker := paint(services.MarkerColor(result.Marker))
		fmt.Fprintf(w, "    %s %s", services.MarkerGlyph(result.Marker), result.Field)
		if result.Status != "" {
			marker.Fprintf(w, "  %s", result.Status)
		}
		fmt.Fprintln(w)

		renderValue(w, "Job Description", result.JobDescription)
		renderValue(w, "Resume", result.Resume)
		if result.Comments != "" {
			fmt.Fprintf(w, "      Comments: %s\n", result.Comments)
		}
	}
}

func renderValue(w io.Writer, label string, value models.ValueView) {
	fmt.Fprintf(w, "      %s: ", label)
	if value.Placeholder != "" {
		mutedColor.Fprintln(w, value.Placeholder)
		return
	}
	if !value.Value.List {
		fmt.Fprintln(w, value.Value.Text())
		return
	}
	fmt.Fprintln(w)
	for _, item := range value.Value.Items {
		fmt.Fprintf(w, "        - %s\n", strings.TrimSpace(item))
	}
}

func formatScore(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
