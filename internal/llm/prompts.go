package llm

import (
	"fmt"
	"strings"
)

// maxPromptChars caps how much resume text is embedded in a prompt.
const maxPromptChars = 30000

const resumePromptTemplate = `You are an expert resume parser. Extract structured information from the resume text below.

Return ONLY a JSON object with exactly this shape:
{
  "personalInfo": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": ""},
  "summary": "",
  "skills": {"technical": [], "soft": [], "tools": []},
  "experience": [{"title": "", "company": "", "duration": "", "description": "", "responsibilities": []}],
  "education": [{"degree": "", "institution": "", "year": "", "gpa": "", "details": ""}],
  "certifications": [],
  "projects": [{"name": "", "description": "", "technologies": []}]
}

Rules:
- Use empty strings or empty arrays for anything not present.
- Do not invent information.
- Do not wrap the JSON in markdown.

Resume text:
%s`

// BuildResumePrompt embeds the resume text, truncated, into the extraction prompt.
func BuildResumePrompt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	return fmt.Sprintf(resumePromptTemplate, text)
}

// StripFences removes a surrounding markdown code fence from a model reply.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
