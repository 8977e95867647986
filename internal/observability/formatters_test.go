package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
)

func TestPrintScoreReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoreReport(&types.ScoreResponse{
		ATSScore:  87.5,
		Breakdown: types.ScoreBreakdown{Experience: 71.25, Skills: 64.02, Education: 12, Bonus: 25},
		Keywords: types.KeywordMatch{
			Matched: []string{"go", "python"},
			Missing: []string{},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "ATS Score Report")
	assert.Contains(t, output, "ATS Score:   87.50 / 100")
	assert.Contains(t, output, "Experience:   71.25%")
	assert.Contains(t, output, "Bonus:       +25")
	assert.Contains(t, output, "Matched (2):")
	assert.Contains(t, output, "• python")
	assert.Contains(t, output, "Missing (0):")
	assert.Contains(t, output, "(none)")
}

func TestPrintScoreReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreReport(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreReport_LongList(t *testing.T) {
	var buf bytes.Buffer
	missing := make([]string, 15)
	for i := range missing {
		missing[i] = fmt.Sprintf("kw%02d", i)
	}

	NewPrinter(&buf).PrintScoreReport(&types.ScoreResponse{Keywords: types.KeywordMatch{Missing: missing}})
	output := buf.String()

	assert.Contains(t, output, "• kw09")
	assert.NotContains(t, output, "• kw10")
	assert.Contains(t, output, "... and 5 more")
}

func TestPrintKeyphrases(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintKeyphrases([]string{"kubernetes", "distributed systems"})
	output := buf.String()

	assert.Contains(t, output, "JD Keyphrases")
	assert.Contains(t, output, "1. kubernetes")
	assert.Contains(t, output, "2. distributed systems")

	buf.Reset()
	NewPrinter(&buf).PrintKeyphrases(nil)
	assert.Contains(t, buf.String(), "(none)")
}

func TestPrintStage(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintStage(pipeline.ProgressEvent{
		Stage:    pipeline.StageBonus,
		Message:  "20 points from [impact prestige scale]",
		Duration: 1500 * time.Microsecond,
	})

	assert.Equal(t, "[bonus     ] 20 points from [impact prestige scale] (1.5ms)\n", buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("Title", strings.Repeat("x", 200))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
