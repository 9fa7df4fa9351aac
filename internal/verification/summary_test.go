package verification

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSummary(t *testing.T) {
	t.Run("caps strengths and concerns at five each", func(t *testing.T) {
		var strengths, concerns []string
		for i := 0; i < 8; i++ {
			strengths = append(strengths, fmt.Sprintf("strength %d", i))
			concerns = append(concerns, fmt.Sprintf("concern %d", i))
		}
		phases := []PhaseResult{{Name: "description", Strengths: strengths, Concerns: concerns}}

		summary := buildSummary(90, true, phases)
		assert.Equal(t, 5, strings.Count(summary, "strength "))
		assert.Equal(t, 5, strings.Count(summary, "concern "))
	})

	t.Run("failed phase notes become concerns", func(t *testing.T) {
		phases := []PhaseResult{{Name: "image", Note: "missing visual proof"}}

		summary := buildSummary(10, false, phases)
		assert.Contains(t, summary, "did not pass")
		assert.Contains(t, summary, "10/100")
		assert.Contains(t, summary, "missing visual proof")
	})

	t.Run("passing phase notes stay out", func(t *testing.T) {
		phases := []PhaseResult{{Name: "cross_validation", Passed: true, Note: "reviewer confidence high: approve"}}

		summary := buildSummary(85, true, phases)
		assert.NotContains(t, summary, "approve")
	})
}
