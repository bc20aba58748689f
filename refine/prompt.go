package refine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const promptTemplate = `You are a strict JSON normalization engine for resume data.

INPUTS:
1. raw_json: a first-pass extracted JSON produced by a resume parsing pipeline.
2. raw_text: (optional) the full raw text of the resume.

GOAL:
- Produce a NEW JSON object that:
  - Is WELL-FORMED and VALID JSON.
  - Is PROPERLY NESTED according to the required schema.
  - Uses ONLY the allowed keys.
  - Does NOT hallucinate information that is not supported by raw_json or raw_text.
  - Fixes obvious structural issues (e.g., wrong nesting, flattened fields).

REQUIRED TOP-LEVEL SCHEMA:
{
  "contact": {
    "name": string (optional),
    "email": string (optional),
    "phone": string (optional),
    "website": string (optional),
    "location": string (optional),
    "raw": string (optional)
  },
  "education": [
    {
      "institution": string,
      "degree": string (optional),
      "field_of_study": string (optional),
      "start_date": string (YYYY or YYYY-MM, optional),
      "end_date": string (YYYY or YYYY-MM or "Present", optional),
      "grade": string (optional),
      "location": string (optional)
    }
  ],
  "work_experience": [
    {
      "company": string,
      "position": string (optional),
      "start_date": string (YYYY or YYYY-MM, optional),
      "end_date": string (YYYY or YYYY-MM or "Present", optional),
      "duration_months": integer (optional),
      "location": string (optional),
      "description": [string]
    }
  ],
  "skills": [
    {
      "name": string,
      "category": string (optional),
      "proficiency": string (optional)
    }
  ],
  "certifications": [
    {
      "name": string,
      "issuer": string (optional),
      "date": string (YYYY or YYYY-MM, optional)
    }
  ],
  "projects": [
    {
      "name": string,
      "role": string (optional),
      "start_date": string (YYYY or YYYY-MM, optional),
      "end_date": string (YYYY or YYYY-MM or "Present", optional),
      "description": string (optional),
      "technologies": [string] (optional)
    }
  ],
  "publications": [
    {
      "title": string,
      "venue": string (optional),
      "date": string (YYYY or YYYY-MM, optional),
      "description": string (optional)
    }
  ],
  "languages": [
    {
      "name": string,
      "proficiency": string (optional)
    }
  ],
  "other_sections": [
    {
      "label": string,
      "content": string
    }
  ],
  "meta": {
    "source": string (optional),
    "notes": string (optional)
  }
}

KEY RULES (STRICT):
1. DO NOT add any new top-level keys beyond:
   - "contact", "education", "work_experience", "skills",
     "certifications", "projects", "publications",
     "languages", "other_sections", "meta".
2. All arrays MUST be present, even if empty.
3. If a field is unknown or not confidently supported, either:
   - omit that field, or
   - use an empty string "" (for strings) or empty list [] (for arrays).
4. DO NOT fabricate entities (companies, degrees, dates, skills, projects, etc.)
   that do NOT appear in either raw_json or raw_text.
5. You MAY fix structure:
   - Example: move wrongly-placed education info from "skills" into "education".
   - Example: split a combined string into structured fields.
6. You MUST ensure that every scalar value in the final JSON is:
   - directly present in raw_json/raw_text, OR
   - a normalization/cleaning/trimming/joining of such values (e.g., normalized dates, split names).
7. NEVER invent model IDs, embeddings, scores, or unrelated metadata.

VALIDATION REQUIREMENTS:
- Ensure:
  - "education", "work_experience", "skills",
    "certifications", "projects", "publications",
    "languages", "other_sections"
    are ALWAYS arrays (use [] if nothing).
  - "contact" and "meta" are ALWAYS objects (use {} if nothing).
  - Ensure all keys are spelled exactly as in the schema.
  - Ensure JSON is syntactically valid (double quotes, commas, etc.).

OUTPUT:
- Return ONLY the final JSON object.
- No markdown.
- No comments.
- No explanations.

Provided raw_json:
{raw_json}

Provided raw_text (may be empty):
"""{raw_text}"""
`

// BuildPrompt renders the refinement prompt. The tree is embedded as
// indented JSON with sorted keys; triple quotes in the raw text are escaped
// so they cannot close the text block early.
func BuildPrompt(raw map[string]any, rawText string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return "", fmt.Errorf("encode raw json: %w", err)
	}

	text := strings.ReplaceAll(rawText, `"""`, `\"\"\"`)
	r := strings.NewReplacer(
		"{raw_json}", strings.TrimRight(buf.String(), "\n"),
		"{raw_text}", text,
	)
	return r.Replace(promptTemplate), nil
}

// StripCodeFences removes a surrounding Markdown code fence and its
// language tag.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSpace(strings.Trim(s, "`"))
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = s[4:]
	}
	return strings.TrimSpace(s)
}
