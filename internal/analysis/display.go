package analysis

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackeval/internal/bootstrap"
	"github.com/banshee-data/trackeval/internal/verify"
)

// columnWidth is the printed width of every score column.
const columnWidth = 11

// ForSimulation views a single-simulation table as a one-row MultiAnalysis.
func (t *SkillScoreTable) ForSimulation(name string) *MultiAnalysis {
	m := &MultiAnalysis{
		Sims:     []string{name},
		Skills:   t.Skills,
		Trackers: t.Trackers,
		scores:   make(map[verify.SkillName]*mat.Dense, len(t.Skills)),
	}
	for i, s := range t.Skills {
		m.scores[s] = mat.NewDense(1, len(t.Trackers), mat.Row(nil, i, t.scores))
	}
	return m
}

// columnHeader keeps the last columnWidth characters of a tracker name.
func columnHeader(name string) string {
	r := []rune(name)
	if len(r) > columnWidth {
		r = r[len(r)-columnWidth:]
	}
	return string(r)
}

// DisplaySkillScores prints the simulations × trackers scores for skill,
// followed by the bootstrap lower offset, mean and upper offset of every
// column.
func DisplaySkillScores(w io.Writer, m *MultiAnalysis, skill verify.SkillName, params BootstrapParams) error {
	scores, err := m.Scores(skill)
	if err != nil {
		return err
	}
	return WriteScores(w, m.Trackers, scores, params)
}

// WriteScores prints scores (rows × trackers) and their bootstrap summary.
// Column headers are the last 11 characters of each tracker name.
func WriteScores(w io.Writer, trackers []string, scores mat.Matrix, params BootstrapParams) error {
	rows, cols := scores.Dims()
	if cols != len(trackers) {
		return fmt.Errorf("scores have %d columns for %d trackers", cols, len(trackers))
	}

	var b strings.Builder
	headers := make([]string, cols)
	for j, name := range trackers {
		headers[j] = fmt.Sprintf("%11.11s", columnHeader(name))
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteByte('\n')

	for i := 0; i < rows; i++ {
		writeRow(&b, mat.Row(nil, i, scores))
	}
	b.WriteString(strings.Repeat("-", columnWidth*cols+2*(cols-1)))
	b.WriteByte('\n')

	resampler := bootstrap.NewResampler(params.Seed, params.Workers)
	lower := make([]float64, cols)
	mean := make([]float64, cols)
	upper := make([]float64, cols)
	for j := 0; j < cols; j++ {
		res, err := resampler.Bootstrap(mat.Col(nil, j, scores), params.Reps, params.Alpha)
		if err != nil {
			return fmt.Errorf("%s: %w", trackers[j], err)
		}
		lower[j] = res.Lower - res.Mean
		mean[j] = res.Mean
		upper[j] = res.Upper - res.Mean
	}
	writeRow(&b, lower)
	writeRow(&b, mean)
	writeRow(&b, upper)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, vals []float64) {
	for j, v := range vals {
		if j > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(b, "% 11.8f", v)
	}
	b.WriteByte('\n')
}

// DisplayRanking prints, for each tracker compared against the reference,
// the scenario where the reference did best and worst.
func DisplayRanking(w io.Writer, rankings []bootstrap.Ranking) error {
	against := make([]string, len(rankings))
	best := make([]string, len(rankings))
	worst := make([]string, len(rankings))
	for i, r := range rankings {
		against[i] = fmt.Sprintf("%7s", r.Tracker)
		best[i] = fmt.Sprintf("%7d", r.Best)
		worst[i] = fmt.Sprintf("%7d", r.Worst)
	}

	_, err := fmt.Fprintf(w, "\n Against:  %s\nBest Run:  %s\nWorst Run: %s\n",
		strings.Join(against, "  "), strings.Join(best, "  "), strings.Join(worst, "  "))
	return err
}

// DisplayScenarioAnalysis prints, for skill, the bootstrap mean of every
// tracker in each scenario with the offsets of the interval bounds below it.
func DisplayScenarioAnalysis(w io.Writer, s *ScenarioAnalysis, skill verify.SkillName) error {
	k := slices.Index(s.Skills, skill)
	if k < 0 {
		return fmt.Errorf("%w: %q", verify.ErrUnknownSkill, skill)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-11s", skill)
	for _, name := range s.Trackers {
		fmt.Fprintf(&b, "  %11.11s", columnHeader(name))
	}
	b.WriteByte('\n')

	for i, scenario := range s.Scenarios {
		lower := make([]float64, len(s.Trackers))
		mean := make([]float64, len(s.Trackers))
		upper := make([]float64, len(s.Trackers))
		for j, res := range s.results[i][k] {
			lower[j] = res.Lower - res.Mean
			mean[j] = res.Mean
			upper[j] = res.Upper - res.Mean
		}
		writeLabeledRow(&b, scenario, mean)
		writeLabeledRow(&b, "  lower", lower)
		writeLabeledRow(&b, "  upper", upper)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeLabeledRow(b *strings.Builder, label string, vals []float64) {
	fmt.Fprintf(b, "%-11.11s", label)
	for _, v := range vals {
		fmt.Fprintf(b, "  % 11.8f", v)
	}
	b.WriteByte('\n')
}
