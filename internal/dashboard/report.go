package dashboard

import (
	"bytes"
	"fmt"
	"strings"

	"churnboard/domain/customer"
	"churnboard/internal/format"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ReportMarkdown writes the summary as a markdown narrative
func ReportMarkdown(sum *Summary) []byte {
	var b bytes.Buffer

	b.WriteString("# Customer churn report\n\n")
	fmt.Fprintf(&b, "Snapshot `%s`", sum.SnapshotID)
	if scope := filterScope(sum.Filter); scope != "" {
		fmt.Fprintf(&b, ", filtered to %s", scope)
	}
	b.WriteString(".\n\n")

	if sum.Empty {
		b.WriteString("> No customers match the selected filters.\n")
		return b.Bytes()
	}

	m := sum.Metrics
	b.WriteString("## Key figures\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Customers | %s |\n", format.Count(m.Total))
	fmt.Fprintf(&b, "| Canceled | %s |\n", format.Count(m.Canceled))
	fmt.Fprintf(&b, "| Churn rate | %s |\n", format.Percent(m.ChurnRate))
	fmt.Fprintf(&b, "| Lost revenue | %s |\n\n", format.Currency(m.LostRevenue))

	in := sum.Insights
	b.WriteString("## Insights\n\n")
	fmt.Fprintf(&b, "- Canceled customers were late on average **%s**; active customers **%s**.\n",
		format.Days(in.AvgDelayCanceled), format.Days(in.AvgDelayActive))
	if in.WorstContractType != "" {
		fmt.Fprintf(&b, "- The **%s** contract has the highest churn rate (%s).\n",
			mdText(in.WorstContractType), format.Percent(in.ChurnMap()[in.WorstContractType]))
	}
	b.WriteString("\n")

	if len(in.ChurnByContract) > 0 {
		b.WriteString("## Churn by contract\n\n| Contract | Customers | Canceled | Churn |\n|---|---|---|---|\n")
		for _, c := range in.ChurnByContract {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", mdText(c.Contract), format.Count(c.Customers), format.Count(c.Canceled), format.Percent(c.ChurnRate))
		}
		b.WriteString("\n")
	}

	writeGroups(&b, "Churn by subscription tier", sum.ByTier)
	writeGroups(&b, "Churn by gender", sum.ByGender)

	if len(sum.Delay) > 0 {
		b.WriteString("## Payment delay by status\n\n| Status | Customers | Mean | Median | P90 |\n|---|---|---|---|---|\n")
		for _, d := range sum.Delay {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", d.Status, format.Count(d.Count),
				format.Days(d.Mean), format.Days(d.Median), format.Days(d.P90))
		}
	}
	return b.Bytes()
}

// RenderReport renders the summary report to HTML. Raw HTML in the markdown
// is dropped.
func RenderReport(sum *Summary) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(ReportMarkdown(sum))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return markdown.Render(doc, renderer)
}

func writeGroups(b *bytes.Buffer, title string, groups []customer.GroupChurn) {
	if len(groups) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n| Value | Customers | Churn |\n|---|---|---|\n", title)
	for _, g := range groups {
		fmt.Fprintf(b, "| %s | %s | %s |\n", mdText(g.Value), format.Count(g.Customers), format.Percent(g.ChurnRate))
	}
	b.WriteString("\n")
}

func filterScope(f customer.Filter) string {
	var scope string
	if f.HasDateRange() {
		from, to := "…", "…"
		if !f.Start.IsZero() {
			from = f.Start.Format(customer.DateLayout)
		}
		if !f.End.IsZero() {
			to = f.End.Format(customer.DateLayout)
		}
		scope = fmt.Sprintf("registrations %s to %s", from, to)
	}
	if len(f.Contracts) > 0 {
		if scope != "" {
			scope += " and "
		}
		names := make([]string, len(f.Contracts))
		for i, c := range f.Contracts {
			names[i] = mdText(c)
		}
		scope += "contracts " + strings.Join(names, ", ")
	}
	return scope
}

var mdEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
	"|", "\\|",
	"<", "\\<",
	">", "\\>",
	"~", "\\~",
	"#", "\\#",
	"\r", " ",
	"\n", " ",
)

// mdText escapes data values so they render as literal text, including
// inside table cells.
func mdText(s string) string {
	return mdEscaper.Replace(s)
}
