package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptContainsRubricAndSubtitle(t *testing.T) {
	subtitle := strings.Repeat("Once upon a time there was a small brave fox. ", 20)
	prompt := BuildPrompt(subtitle)
	assert.True(t, strings.Contains(prompt, Rubric))
	assert.True(t, strings.HasSuffix(prompt, subtitle))
}

func TestBuildPromptDoesNotTransformSubtitle(t *testing.T) {
	subtitle := "  lines with\n\nweird   spacing\tand \"quotes\" stay untouched  "
	prompt := BuildPrompt(subtitle)
	assert.Equal(t, Rubric+subtitle, prompt)
}

func TestRubricNamesEveryBucketAndFlag(t *testing.T) {
	for _, want := range []string{`"24m"`, `"36m"`, `"48m"`, `"60m"`, `"safe"`, `"caution"`, `"not_recommended"`} {
		assert.Contains(t, Rubric, want)
	}
}
