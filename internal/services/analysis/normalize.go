package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"tinyviewers/proj/internal/domain/fields"
	"tinyviewers/proj/internal/domain/models"
)

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

// normalized is the validated output of one model reply.
type normalized struct {
	Scores fields.AgeScores
	Scenes []models.Scene
}

type replyShape struct {
	OverallScaryScore json.RawMessage `json:"overall_scary_score"`
	Scenes            json.RawMessage `json:"scenes"`
}

type sceneEntry struct {
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Intensity   int32             `json:"intensity"`
	AgeFlags    map[string]string `json:"age_flags"`
}

// normalizeReply turns the model's free-text reply into validated domain
// objects: extract a JSON span, check the top-level shape, and fill missing
// per-scene age flags with the conservative caution default.
func normalizeReply(reply string) (*normalized, error) {
	span, ok := extractJSON(reply)
	if !ok {
		return nil, ErrUnparsableResponse
	}
	var shape replyShape
	if err := json.Unmarshal([]byte(span), &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableResponse, err)
	}
	if isAbsent(shape.OverallScaryScore) {
		return nil, fmt.Errorf("%w: overall_scary_score is missing", ErrInvalidResponseShape)
	}
	if isAbsent(shape.Scenes) {
		return nil, fmt.Errorf("%w: scenes is missing", ErrInvalidResponseShape)
	}
	var scores fields.AgeScores
	if err := json.Unmarshal(shape.OverallScaryScore, &scores); err != nil {
		return nil, fmt.Errorf("%w: overall_scary_score: %v", ErrInvalidResponseShape, err)
	}
	if err := scores.Validate(); err != nil {
		return nil, fmt.Errorf("%w: overall_scary_score: %v", ErrInvalidResponseShape, err)
	}
	var entries []sceneEntry
	if err := json.Unmarshal(shape.Scenes, &entries); err != nil {
		return nil, fmt.Errorf("%w: scenes: %v", ErrInvalidResponseShape, err)
	}
	scenes := make([]models.Scene, 0, len(entries))
	for _, entry := range entries {
		flags := fields.AgeFlags(entry.AgeFlags)
		if len(flags) == 0 {
			flags = fields.DefaultCautionFlags()
		} else {
			flags = flags.FillMissingWithCaution()
		}
		for bucket, flag := range flags {
			if !fields.IsValidFlag(flag) {
				return nil, fmt.Errorf("%w: age_flags[%s]: unknown flag %q", ErrInvalidResponseShape, bucket, flag)
			}
		}
		scenes = append(scenes, models.Scene{
			StartTime:   entry.StartTime,
			EndTime:     entry.EndTime,
			Description: entry.Description,
			Tags:        entry.Tags,
			Intensity:   entry.Intensity,
			AgeFlags:    flags,
		})
	}
	return &normalized{Scores: scores, Scenes: scenes}, nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// extractJSON locates a JSON object in free-form model text: a fenced ```json
// block wins, otherwise the first balanced {...} span. A fence is an explicit
// signal from the model, so an example object echoed earlier in plain text
// cannot shadow it.
func extractJSON(text string) (string, bool) {
	if match := fencedJSONRe.FindStringSubmatch(text); match != nil {
		return match[1], true
	}
	return balancedSpan(text)
}

// balancedSpan returns the first top-level {...} span, tracking strings so
// braces inside quoted values do not skew the depth count.
func balancedSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
