package verify

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/banshee-data/trackeval/internal/tracks"
)

// ContingencyTable classifies predicted and true associations:
//
//	                       Observed
//	               |    True        |    False
//	Predicted True | AssocsCorrect  | AssocsWrong
//	Predicted False| FalarmsWrong   | FalarmsCorrect
//
// Every true segment lands in AssocsCorrect (via its matched prediction) or
// FalarmsWrong; every predicted segment lands in AssocsCorrect or
// AssocsWrong. False alarms either match (FalarmsCorrect) or are listed in
// the Unmatched* diagnostics, which do not contribute to the counts: the
// association they belong to is already scored through the segment buckets.
type ContingencyTable struct {
	AssocsCorrect  []tracks.Segment `json:"assocs_correct"`
	AssocsWrong    []tracks.Segment `json:"assocs_wrong"`
	FalarmsWrong   []tracks.Segment `json:"falarms_wrong"`
	FalarmsCorrect []tracks.Point   `json:"falarms_correct"`

	UnmatchedTrueFalarms []tracks.Point `json:"unmatched_true_falarms,omitempty"`
	UnmatchedPredFalarms []tracks.Point `json:"unmatched_pred_falarms,omitempty"`
}

// Counts holds the four cell totals of a contingency table.
type Counts struct {
	A int `json:"a"` // correct associations (hits)
	B int `json:"b"` // wrong associations (false positives)
	C int `json:"c"` // missed associations (false negatives)
	D int `json:"d"` // correct false alarms (true negatives)
}

// Counts returns the cell totals.
func (t *ContingencyTable) Counts() Counts {
	if t == nil {
		return Counts{}
	}
	return Counts{
		A: len(t.AssocsCorrect),
		B: len(t.AssocsWrong),
		C: len(t.FalarmsWrong),
		D: len(t.FalarmsCorrect),
	}
}

// Total returns a+b+c+d.
func (c Counts) Total() int { return c.A + c.B + c.C + c.D }

// Format renders the table with predicted rows and observed columns.
func (t *ContingencyTable) Format() string {
	c := t.Counts()

	tw := table.NewWriter()
	style := table.StyleDefault
	style.Options.SeparateColumns = false
	style.Options.DrawBorder = false
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	tw.AppendHeader(table.Row{"", "Observed True", "Observed False"})
	tw.AppendRow(table.Row{"Predicted True", c.A, c.B})
	tw.AppendRow(table.Row{"Predicted False", c.C, c.D})
	return tw.Render() + "\n"
}

// WriteTo writes the formatted table to w.
func (t *ContingencyTable) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Format())
	return int64(n), err
}
