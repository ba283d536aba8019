// Package report renders a human-readable summary of an analysis run.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"corrlens/app"
)

// Markdown builds the analysis summary as a markdown document.
func Markdown(result *app.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Correlation Analysis\n\n")
	fmt.Fprintf(&b, "- Method: **%s**\n", result.Method)
	fmt.Fprintf(&b, "- Variables analyzed: **%d**\n", len(result.Variables))
	fmt.Fprintf(&b, "- Variables displayed: **%d**\n", len(result.DisplayVariables))
	fmt.Fprintf(&b, "- Runtime: %dms\n\n", result.RuntimeMs)

	if result.StrongestPair != nil {
		p := result.StrongestPair
		fmt.Fprintf(&b, "Strongest relationship: **%s** and **%s** (r=%.3f)\n\n", p.Column1, p.Column2, p.Value)
	}

	if len(result.Profiles) > 0 {
		b.WriteString("## Variable profiles\n\n")
		b.WriteString("| Variable | Mean | Std Dev | Min | Max | Missing |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, p := range result.Profiles {
			fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f | %.3f | %.1f%% |\n",
				p.Name, p.Mean, p.StdDev, p.Min, p.Max, p.MissingRate*100)
		}
		b.WriteString("\n")
	}

	if len(result.Variables) > 1 {
		b.WriteString("## Correlation matrix\n\n")
		b.WriteString("| |")
		for _, v := range result.Matrix.Variables {
			fmt.Fprintf(&b, " %s |", v)
		}
		b.WriteString("\n|---|")
		for range result.Matrix.Variables {
			b.WriteString("---|")
		}
		b.WriteString("\n")
		for i, v := range result.Matrix.Variables {
			fmt.Fprintf(&b, "| **%s** |", v)
			for j := range result.Matrix.Variables {
				fmt.Fprintf(&b, " %.3f |", result.Matrix.At(i, j))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown summary to an HTML fragment for the UI layer.
func HTML(result *app.AnalysisResult) []byte {
	md := Markdown(result)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
