package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("index.html.tmpl").
	Funcs(template.FuncMap{"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v) }}).
	ParseFS(templatesFS, "templates/index.html.tmpl"))

// pageData is what the HTML page renders.
type pageData struct {
	Report *schema.ChallengeReport
	State  string
	Result string
	Emoji  string
	Pace   string
	Start  string
	End    string
}

func newPageData(report *schema.ChallengeReport) pageData {
	return pageData{
		Report: report,
		State:  schema.DescribeState(report.Challenge.State),
		Result: contract.GetPlainLabel(report.Stats.Result),
		Emoji:  schema.ResultEmoji(report.Stats.Result),
		Pace:   schema.DescribePace(report.Stats.CommitDifference),
		Start:  report.Challenge.StartDate.Format(contract.DateFormat),
		End:    report.Challenge.EndDate.Format(contract.DateFormat),
	}
}
