package analysis

import (
	"testing"

	"tinyviewers/proj/internal/domain/fields"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReplyJSON = `{
	"overall_scary_score": {"24m": 4, "36m": 3, "48m": 2, "60m": 1},
	"scenes": [
		{
			"start_time": "00:05:10",
			"end_time": "00:06:02",
			"description": "The lights go out in the forest.",
			"tags": ["darkness"],
			"intensity": 3,
			"age_flags": {"24m": "not_recommended", "36m": "caution", "48m": "safe", "60m": "safe"}
		},
		{
			"start_time": "00:41:00",
			"end_time": "00:42:30",
			"description": "The fox loses sight of its mother.",
			"tags": ["separation", "sadness"],
			"intensity": 4
		}
	]
}`

func TestNormalizeFencedReply(t *testing.T) {
	reply := "Here is my analysis.\n```json\n" + validReplyJSON + "\n```\nLet me know if you need more."
	norm, err := normalizeReply(reply)
	require.NoError(t, err)
	assert.Len(t, norm.Scenes, 2)
	assert.Equal(t, fields.AgeScores{"24m": 4, "36m": 3, "48m": 2, "60m": 1}, norm.Scores)
}

func TestNormalizeBareReply(t *testing.T) {
	reply := "Analysis below.\n" + validReplyJSON
	norm, err := normalizeReply(reply)
	require.NoError(t, err)
	assert.Len(t, norm.Scenes, 2)
}

func TestNormalizeDefaultsMissingAgeFlagsToCaution(t *testing.T) {
	norm, err := normalizeReply(validReplyJSON)
	require.NoError(t, err)
	want := fields.AgeFlags{"24m": "caution", "36m": "caution", "48m": "caution", "60m": "caution"}
	assert.Equal(t, want, norm.Scenes[1].AgeFlags)
	// the scene that did carry flags keeps them
	assert.Equal(t, fields.FlagNotRecommended, norm.Scenes[0].AgeFlags["24m"])
}

func TestNormalizeFillsPartialAgeFlags(t *testing.T) {
	reply := `{
		"overall_scary_score": {"24m": 2, "36m": 2, "48m": 1, "60m": 1},
		"scenes": [{"start_time": "00:01:00", "end_time": "00:01:30", "description": "x",
			"intensity": 1, "age_flags": {"24m": "safe"}}]
	}`
	norm, err := normalizeReply(reply)
	require.NoError(t, err)
	flags := norm.Scenes[0].AgeFlags
	assert.Equal(t, fields.FlagSafe, flags["24m"])
	assert.Equal(t, fields.FlagCaution, flags["36m"])
	assert.Equal(t, fields.FlagCaution, flags["48m"])
	assert.Equal(t, fields.FlagCaution, flags["60m"])
}

func TestNormalizeNoJSONSpan(t *testing.T) {
	_, err := normalizeReply("I could not produce an analysis for this movie, sorry.")
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestNormalizeBrokenJSON(t *testing.T) {
	_, err := normalizeReply("```json\n{\"overall_scary_score\": {\n```")
	assert.ErrorIs(t, err, ErrUnparsableResponse)
}

func TestNormalizeMissingOverallScore(t *testing.T) {
	_, err := normalizeReply(`{"scenes": []}`)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestNormalizeMissingScenes(t *testing.T) {
	_, err := normalizeReply(`{"overall_scary_score": {"24m": 1, "36m": 1, "48m": 1, "60m": 1}}`)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestNormalizeEmptyOverallScore(t *testing.T) {
	_, err := normalizeReply(`{"overall_scary_score": {}, "scenes": []}`)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestNormalizeScoreOutOfRange(t *testing.T) {
	_, err := normalizeReply(`{"overall_scary_score": {"24m": 9, "36m": 1, "48m": 1, "60m": 1}, "scenes": []}`)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestNormalizeUnknownFlagSymbol(t *testing.T) {
	reply := `{
		"overall_scary_score": {"24m": 2, "36m": 2, "48m": 1, "60m": 1},
		"scenes": [{"start_time": "00:01:00", "end_time": "00:01:30", "description": "x",
			"intensity": 1, "age_flags": {"24m": "totally-fine"}}]
	}`
	_, err := normalizeReply(reply)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestNormalizeNullScenes(t *testing.T) {
	_, err := normalizeReply(`{"overall_scary_score": {"24m": 1}, "scenes": null}`)
	assert.ErrorIs(t, err, ErrInvalidResponseShape)
}

func TestExtractJSONPrefersFencedBlock(t *testing.T) {
	text := `The example was {"example": true} but my answer is:` + "\n```json\n{\"answer\": 1}\n```"
	span, ok := extractJSON(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"answer": 1}`, span)
}

func TestBalancedSpanIgnoresBracesInStrings(t *testing.T) {
	text := `prefix {"description": "a {spooky} cave", "n": 1} suffix`
	span, ok := balancedSpan(text)
	require.True(t, ok)
	assert.JSONEq(t, `{"description": "a {spooky} cave", "n": 1}`, span)
}

func TestBalancedSpanUnclosed(t *testing.T) {
	_, ok := balancedSpan(`{"open": {`)
	assert.False(t, ok)
}
