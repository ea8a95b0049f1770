package analysis

// Rubric is the fixed instruction block sent ahead of the subtitle text. The
// age buckets, flag vocabulary and score scale here must stay in sync with the
// constants in internal/domain/fields.
const Rubric = `You are a children's media specialist reviewing a movie for toddlers and preschoolers.
You will receive the full subtitles of the movie. Analyze them and rate how frightening or
emotionally intense the movie is for four developmental stages: 24 months, 36 months,
48 months and 60 months.

Scoring scale (1-5):
1 = completely gentle, nothing startling
2 = very mild tension, instantly resolved
3 = noticeable suspense or conflict, brief scary moments
4 = sustained scary or sad sequences, menacing characters
5 = intense peril, frightening imagery, themes of loss or death

Instructions:
- Identify every scene a young child could find scary, sad, loud or confusing.
  Report at least 5 scenes; if the movie is entirely gentle, pick its most intense moments.
- For each scene give start_time and end_time as "HH:MM:SS", a one or two sentence
  description, and an intensity score from 1 to 5.
- Tag each scene with short lowercase tags such as "darkness", "loud-noise", "separation",
  "villain", "chase", "sadness", "injury".
- For each scene set age_flags for the buckets "24m", "36m", "48m", "60m" to one of
  "safe", "caution" or "not_recommended".
- Finish with overall_scary_score: one 1-5 score per age bucket for the movie as a whole.
  Weigh the worst scenes, do not average them away.

Checklist before you answer:
- every scene has start_time, end_time, description, tags, intensity, age_flags
- all four age buckets appear in every age_flags object and in overall_scary_score
- timestamps use the "HH:MM:SS" form

Reply with a single JSON object in a fenced code block, shaped like:
` + "```json" + `
{
  "overall_scary_score": {"24m": 3, "36m": 2, "48m": 1, "60m": 1},
  "scenes": [
    {
      "start_time": "00:12:03",
      "end_time": "00:13:40",
      "description": "...",
      "tags": ["darkness"],
      "intensity": 3,
      "age_flags": {"24m": "not_recommended", "36m": "caution", "48m": "safe", "60m": "safe"}
    }
  ]
}
` + "```" + `

The subtitles follow. Analyze them in full, do not truncate.

`

// BuildPrompt appends the subtitle text verbatim to the rubric. The text is
// not transformed in any way; callers reject too-short subtitles beforehand.
func BuildPrompt(subtitleText string) string {
	return Rubric + subtitleText
}
