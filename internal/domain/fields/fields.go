package fields

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// The four developmental stages every safety rating in the system is keyed by.
const (
	Bucket24m = "24m"
	Bucket36m = "36m"
	Bucket48m = "48m"
	Bucket60m = "60m"
)

var AgeBuckets = []string{Bucket24m, Bucket36m, Bucket48m, Bucket60m}

const (
	FlagSafe           = "safe"
	FlagCaution        = "caution"
	FlagNotRecommended = "not_recommended"
)

const (
	MinScore = 1
	MaxScore = 5
)

// AgeScores maps an age bucket to a 1-5 scariness score. Stored as jsonb.
type AgeScores map[string]int

func (s AgeScores) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *AgeScores) Scan(src any) error {
	return scanJSON(src, s)
}

func (s AgeScores) Validate() error {
	for _, bucket := range AgeBuckets {
		score, ok := s[bucket]
		if !ok {
			return fmt.Errorf("missing age bucket %q", bucket)
		}
		if score < MinScore || score > MaxScore {
			return fmt.Errorf("score for bucket %q must be between %d and %d, got %d", bucket, MinScore, MaxScore, score)
		}
	}
	return nil
}

// AgeFlags maps an age bucket to one of the three appropriateness flags. Stored as jsonb.
type AgeFlags map[string]string

func (f AgeFlags) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

func (f *AgeFlags) Scan(src any) error {
	return scanJSON(src, f)
}

// DefaultCautionFlags is the conservative substitute for a scene the model
// returned without age flags: every bucket is flagged caution, never safe.
func DefaultCautionFlags() AgeFlags {
	flags := make(AgeFlags, len(AgeBuckets))
	for _, bucket := range AgeBuckets {
		flags[bucket] = FlagCaution
	}
	return flags
}

// FillMissingWithCaution returns a copy of f covering all four age buckets,
// defaulting absent ones to caution.
func (f AgeFlags) FillMissingWithCaution() AgeFlags {
	filled := make(AgeFlags, len(AgeBuckets))
	for _, bucket := range AgeBuckets {
		if flag, ok := f[bucket]; ok {
			filled[bucket] = flag
		} else {
			filled[bucket] = FlagCaution
		}
	}
	return filled
}

func IsValidFlag(flag string) bool {
	return flag == FlagSafe || flag == FlagCaution || flag == FlagNotRecommended
}

func scanJSON(src any, dst any) error {
	switch src := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(src, dst)
	case string:
		return json.Unmarshal([]byte(src), dst)
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}
