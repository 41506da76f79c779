package deed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeFeedbackEmpty(t *testing.T) {
	assert.Equal(t, "Attempt saved.", ComposeFeedback(nil))
	assert.Equal(t, "Attempt saved.", ComposeFeedback([]FieldResult{}))
}

func TestComposeFeedback(t *testing.T) {
	results := []FieldResult{
		{Label: "Grantor", Passed: true},
		{Label: "Grantee", Passed: false, Expected: "JANE ROE", Got: "(blank)"},
		{Label: "Recording Book", Passed: true},
	}
	got := ComposeFeedback(results)
	want := `Grantor correct. Grantee mismatch: expected "JANE ROE" but got "(blank)". Recording Book correct.`
	assert.Equal(t, want, got)
}

func TestComposeFeedbackLiteralQuoting(t *testing.T) {
	// Values carrying quotes or non-ASCII text are rendered verbatim, not escaped.
	got := ComposeFeedback([]FieldResult{{Label: "Grantor", Expected: `O'BRIEN "BUD" SMITH`, Got: "JOSÉ NÚÑEZ"}})
	assert.Equal(t, `Grantor mismatch: expected "O'BRIEN "BUD" SMITH" but got "JOSÉ NÚÑEZ".`, got)
}

func TestComposeFeedbackSingleMismatch(t *testing.T) {
	got := ComposeFeedback([]FieldResult{{Label: "Dated Date", Expected: "09/01/2020", Got: "09/02/2020"}})
	assert.Equal(t, `Dated Date mismatch: expected "09/01/2020" but got "09/02/2020".`, got)
}
