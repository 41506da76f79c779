package deed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTruth() Deed {
	return Deed{
		Grantor:          "JOHN DOE",
		Grantee:          "JANE ROE",
		RecordingDate:    "09/24/2020",
		DatedDate:        "09/01/2020",
		RecordingBook:    "12",
		RecordingPage:    "34",
		InstrumentNumber: "2020-001",
	}
}

func matchingSubmission() Submission {
	return Submission{
		Grantor:          "john doe.",
		Grantee:          " jane  roe ",
		RecordingDate:    "2020-09-24",
		DatedDate:        "09/01/2020",
		RecordingBook:    "12",
		RecordingPage:    "34",
		InstrumentNumber: "2020-001",
	}
}

func TestScorePerfect(t *testing.T) {
	out := Score(fullTruth(), matchingSubmission())
	assert.Equal(t, 100, out.TotalScore)
	require.Len(t, out.Fields, 7)
	for _, f := range out.Fields {
		assert.True(t, f.Passed, "field %s", f.Label)
	}
}

func TestScoreEmptySubmission(t *testing.T) {
	out := Score(fullTruth(), Submission{})
	assert.Equal(t, 0, out.TotalScore)
	require.Len(t, out.Fields, 7)
	for _, f := range out.Fields {
		assert.False(t, f.Passed, "field %s", f.Label)
		assert.Equal(t, "(blank)", f.Got, "field %s", f.Label)
	}
}

func TestScoreEmptyTruth(t *testing.T) {
	out := Score(Deed{}, matchingSubmission())
	assert.Equal(t, 0, out.TotalScore)
	assert.Empty(t, out.Fields)
	assert.Equal(t, "Attempt saved.", out.Feedback)
}

func TestScoreSkipsUngradableBuckets(t *testing.T) {
	truth := Deed{Grantor: "JOHN DOE"} // only grantor gradable
	out := Score(truth, Submission{Grantor: "John Doe"})
	assert.Equal(t, 20, out.TotalScore)
	require.Len(t, out.Fields, 1)
	assert.Equal(t, "Grantor", out.Fields[0].Label)
}

func TestScoreRecordingReferencePartialCredit(t *testing.T) {
	truth := Deed{RecordingBook: "12", RecordingPage: "34"}
	sub := Submission{RecordingBook: "12", RecordingPage: "99"}
	out := Score(truth, sub)
	// Book matched (7), page mismatched (0), instrument ungradable: the
	// sub-weights are fixed, never redistributed.
	assert.Equal(t, 7, out.TotalScore)
	require.Len(t, out.Fields, 2)
	assert.True(t, out.Fields[0].Passed)
	assert.Equal(t, "Recording Book", out.Fields[0].Label)
	assert.False(t, out.Fields[1].Passed)
	assert.Equal(t, "Recording Page", out.Fields[1].Label)
	assert.Equal(t, "34", out.Fields[1].Expected)
	assert.Equal(t, "99", out.Fields[1].Got)
}

func TestScoreEndToEnd(t *testing.T) {
	truth := Deed{
		Grantor:       "JOHN DOE",
		Grantee:       "JANE ROE",
		RecordingDate: "2020-09-24",
		RecordingBook: "1",
	}
	sub := Submission{
		Grantor:       "john doe.",
		Grantee:       "JANE ROE",
		RecordingDate: "09/24/2020",
		RecordingBook: "1",
	}
	out := Score(truth, sub)
	// 20 grantor + 20 grantee + 20 recording date + 7 book; dated date and
	// page/instrument ungradable.
	assert.Equal(t, 67, out.TotalScore)
}

func TestScoreFieldOrder(t *testing.T) {
	out := Score(fullTruth(), Submission{})
	want := []string{"Grantor", "Grantee", "Recording Date", "Dated Date", "Recording Book", "Recording Page", "Instrument Number"}
	require.Len(t, out.Fields, len(want))
	for i, label := range want {
		assert.Equal(t, label, out.Fields[i].Label)
	}
}

func TestScoreBounds(t *testing.T) {
	truths := []Deed{{}, fullTruth(), {Grantor: "X"}, {InstrumentNumber: "9"}}
	subs := []Submission{{}, matchingSubmission(), {Grantor: "Y"}, {InstrumentNumber: "9"}}
	for _, tr := range truths {
		for _, sb := range subs {
			out := Score(tr, sb)
			assert.GreaterOrEqual(t, out.TotalScore, 0)
			assert.LessOrEqual(t, out.TotalScore, 100)
		}
	}
}

func TestScoreMismatchCarriesRawValues(t *testing.T) {
	truth := Deed{RecordingDate: "2020-09-24"}
	out := Score(truth, Submission{RecordingDate: "bogus"})
	require.Len(t, out.Fields, 1)
	f := out.Fields[0]
	assert.False(t, f.Passed)
	assert.Equal(t, "2020-09-24", f.Expected) // raw, not normalized
	assert.Equal(t, "bogus", f.Got)
}
