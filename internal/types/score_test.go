package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       ScoreRequest
		wantField string
	}{
		{name: "valid", req: ScoreRequest{JD: "Go engineer", Resume: "Go, Kubernetes"}},
		{name: "missing jd", req: ScoreRequest{Resume: "Go"}, wantField: "jd"},
		{name: "blank jd", req: ScoreRequest{JD: "  \n\t", Resume: "Go"}, wantField: "jd"},
		{name: "missing resume", req: ScoreRequest{JD: "Go engineer"}, wantField: "resume"},
		{name: "blank resume", req: ScoreRequest{JD: "Go engineer", Resume: "   "}, wantField: "resume"},
		{name: "both missing reports jd first", req: ScoreRequest{}, wantField: "jd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, fieldMessages[tt.wantField], verr.Message)
		})
	}
}

func TestKeyphraseRequest_Validate(t *testing.T) {
	req := KeyphraseRequest{JD: "Senior Go engineer"}
	assert.NoError(t, req.Validate())

	req = KeyphraseRequest{JD: " "}
	var verr *ValidationError
	require.ErrorAs(t, req.Validate(), &verr)
	assert.Equal(t, "jd", verr.Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "jd", Message: "Job description (jd) is required"}
	assert.Equal(t, "validation error: jd - Job description (jd) is required", err.Error())
}

func TestScoreResponse_JSONShape(t *testing.T) {
	resp := ScoreResponse{
		ATSScore:  87.5,
		Breakdown: ScoreBreakdown{Experience: 71.2, Skills: 80, Education: 40.13, Bonus: 15},
		Keywords:  KeywordMatch{Matched: []string{"go"}, Missing: []string{}},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ats_score": 87.5,
		"breakdown": {"experience": 71.2, "skills": 80, "education": 40.13, "bonus": 15},
		"keywords": {"matched": ["go"], "missing": []}
	}`, string(data))
}

func TestScoreErrorResponse_IncludesZeroScore(t *testing.T) {
	data, err := json.Marshal(ScoreErrorResponse{Error: "Resume text (resume) is required"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Resume text (resume) is required", "ats_score": 0}`, string(data))
}
