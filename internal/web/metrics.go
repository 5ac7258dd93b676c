package web

import (
	"io"

	"github.com/huangsam/commitstreak/schema"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

const metricsContentType = "text/plain; version=0.0.4; charset=utf-8"

// writeMetrics renders the report as gauges in the Prometheus text format.
func writeMetrics(w io.Writer, report *schema.ChallengeReport) error {
	for _, mf := range reportFamilies(report) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func reportFamilies(report *schema.ChallengeReport) []*dto.MetricFamily {
	c, s := report.Challenge, report.Stats
	families := []*dto.MetricFamily{
		gaugeFamily("streak_required_commits", "Commits required to complete the challenge.", float64(c.RequiredCommitCount)),
		gaugeFamily("streak_commit_count", "Commits observed in the challenge window.", float64(s.CommitCount)),
		gaugeFamily("streak_expected_commits", "Commits expected by now at a linear pace.", float64(s.Expected.CommitsDone)),
		gaugeFamily("streak_commit_difference", "Observed minus expected commits.", float64(s.CommitDifference)),
		gaugeFamily("streak_percentage_done", "Observed commits as a percentage of the requirement.", s.Actual.PercentageDone),
		gaugeFamily("streak_days_from_start", "Days since the challenge started, negative while pending.", float64(c.DaysFromStart)),
		gaugeFamily("streak_days_to_end", "Days until the challenge ends, negative once finished.", float64(c.DaysToEnd)),
		gaugeFamily("streak_total_days", "Length of the challenge in days.", float64(c.TotalDays)),
	}

	state := &dto.MetricFamily{
		Name: proto.String("streak_state"),
		Help: proto.String("Current challenge state, 1 for the active state."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, st := range []schema.ChallengeState{schema.PendingState, schema.InProgressState, schema.FinishedState} {
		state.Metric = append(state.Metric, labeledGauge("state", string(st), boolValue(st == c.State)))
	}

	result := &dto.MetricFamily{
		Name: proto.String("streak_result"),
		Help: proto.String("Current challenge result, 1 for the active result."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, res := range []schema.ChallengeResult{schema.UnknownResult, schema.SucceededResult, schema.FailedResult} {
		result.Metric = append(result.Metric, labeledGauge("result", string(res), boolValue(res == s.Result)))
	}

	return append(families, state, result)
}

func gaugeFamily(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}

func labeledGauge(label, value string, v float64) *dto.Metric {
	return &dto.Metric{
		Label: []*dto.LabelPair{{Name: proto.String(label), Value: proto.String(value)}},
		Gauge: &dto.Gauge{Value: proto.Float64(v)},
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
