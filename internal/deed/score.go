package deed

// Rubric bucket weights. Five buckets of 20 sum to 100 when every bucket is
// gradable; the recording-reference bucket splits its 20 across book/page/
// instrument with fixed sub-weights that are not renormalized when some
// sub-fields are ungradable.
const (
	weightGrantor       = 20
	weightGrantee       = 20
	weightRecordingDate = 20
	weightDatedDate     = 20
	weightBook          = 7
	weightPage          = 7
	weightInstrument    = 6
)

// blankMarker substitutes for empty raw values in feedback display.
const blankMarker = "(blank)"

type normalizer func(string) string

// Score grades a submission against the deed's ground truth. Buckets whose
// ground-truth value is empty are skipped entirely: they contribute neither
// points nor a FieldResult. The total is clamped to [0,100]. Never errors:
// malformed or missing input degrades to a mismatch, not a failure.
func Score(truth Deed, sub Submission) ScoreOutcome {
	total := 0
	var fields []FieldResult

	buckets := []struct {
		label  string
		weight int
		truth  string
		got    string
		norm   normalizer
	}{
		{"Grantor", weightGrantor, truth.Grantor, sub.Grantor, NormalizeText},
		{"Grantee", weightGrantee, truth.Grantee, sub.Grantee, NormalizeText},
		{"Recording Date", weightRecordingDate, truth.RecordingDate, sub.RecordingDate, NormalizeDate},
		{"Dated Date", weightDatedDate, truth.DatedDate, sub.DatedDate, NormalizeDate},
		{"Recording Book", weightBook, truth.RecordingBook, sub.RecordingBook, NormalizeText},
		{"Recording Page", weightPage, truth.RecordingPage, sub.RecordingPage, NormalizeText},
		{"Instrument Number", weightInstrument, truth.InstrumentNumber, sub.InstrumentNumber, NormalizeText},
	}

	for _, b := range buckets {
		want := b.norm(b.truth)
		if want == "" {
			continue // not graded for this document
		}
		got := b.norm(b.got)
		if got != "" && got == want {
			total += b.weight
			fields = append(fields, FieldResult{Label: b.label, Passed: true, Expected: b.truth, Got: b.got})
			continue
		}
		fields = append(fields, FieldResult{
			Label:    b.label,
			Passed:   false,
			Expected: orBlank(b.truth),
			Got:      orBlank(b.got),
		})
	}

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return ScoreOutcome{
		TotalScore: total,
		Fields:     fields,
		Feedback:   ComposeFeedback(fields),
	}
}

func orBlank(raw string) string {
	if raw == "" {
		return blankMarker
	}
	return raw
}
