package stats

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartOptions controls the HTML progress chart.
type ChartOptions struct {
	Title  string
	Window int
	Top    int
}

// BuildChart returns a line chart of daily volume plus reps for the most
// trained exercises.
func BuildChart(report Report, opt ChartOptions) *charts.Line {
	line := charts.NewLine()
	title := opt.Title
	if title == "" {
		title = "Workout volume"
	}
	subtitle := "all days"
	if len(report.Days) > 0 {
		subtitle = fmt.Sprintf("%s to %s", report.Days[0].Date, report.Days[len(report.Days)-1].Date)
	}

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "macarons"}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "bottom",
		}),
	)

	dates := make([]string, len(report.Volume))
	sets := make([]float64, len(report.Volume))
	reps := make([]float64, len(report.Volume))
	for i, v := range report.Volume {
		dates[i] = v.Date
		sets[i] = float64(v.Sets)
		reps[i] = float64(v.Reps)
	}
	line.SetXAxis(dates)
	line.AddSeries("Sets", lineItems(MovingAverage(sets, opt.Window)))
	line.AddSeries("Reps", lineItems(MovingAverage(reps, opt.Window)))

	names := map[string]string{}
	for _, t := range report.Totals {
		names[t.ExerciseID] = t.Name
	}
	for _, id := range TopExercises(report.Totals, opt.Top) {
		values := make([]float64, len(report.Days))
		for i, rec := range report.Days {
			s, r := DayTotals(rec, id)
			if r == 0 {
				r = s
			}
			values[i] = float64(r)
		}
		line.AddSeries(names[id], lineItems(MovingAverage(values, opt.Window)))
	}

	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// WriteChart renders the chart as a standalone HTML page.
func WriteChart(w io.Writer, report Report, opt ChartOptions) error {
	if err := BuildChart(report, opt).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineItems(values []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(values))
	for _, v := range values {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}
