package careerai

import (
	"fmt"
	"strings"
)

const probePrompt = "Return the word OK"

func interviewPrompt(jobTitle, experience string, skills []string) string {
	if experience == "" {
		experience = "Not specified"
	}
	skillList := "Not specified"
	if len(skills) > 0 {
		skillList = strings.Join(skills, ", ")
	}
	return fmt.Sprintf(`Generate interview questions for the following role:

Job Title: %s
Experience Level: %s
Key Skills: %s

Provide 10-15 interview questions in JSON format:
{
  "questions": [
    {
      "category": "Technical/Behavioral/Situational",
      "question": "Question text",
      "difficulty": "Easy/Medium/Hard",
      "keyPoints": ["point 1", "point 2"],
      "sampleAnswer": "Brief sample answer guidance"
    }
  ]
}

Only return the JSON object.`, jobTitle, experience, skillList)
}

func coverLetterPrompt(resumeJSON, jobDescription, companyName, jobTitle string) string {
	if companyName == "" {
		companyName = "the company"
	}
	if jobTitle == "" {
		jobTitle = "the position"
	}
	return fmt.Sprintf(`Generate a professional cover letter based on:

Resume Data: %s
Job Description: %s
Company Name: %s
Job Title: %s

Create a compelling cover letter that:
1. Highlights relevant experience from the resume
2. Matches skills to job requirements
3. Shows enthusiasm for the role and company
4. Maintains professional tone
5. Is concise and impactful

Return the cover letter as plain text, ready to use.`, resumeJSON, jobDescription, companyName, jobTitle)
}

func marketTrendsPrompt(field string) string {
	return fmt.Sprintf(`Analyze current job market trends for: %s

Provide insights in JSON format:
{
  "trends": {
    "growingSkills": ["skill1", "skill2"],
    "decliningSkills": ["skill1", "skill2"],
    "emergingRoles": ["role1", "role2"],
    "salaryTrends": {
      "direction": "increasing/stable/decreasing",
      "percentage": "change percentage",
      "factors": ["factor1", "factor2"]
    },
    "remoteWorkTrends": "analysis of remote work trends",
    "industryOutlook": "overall industry outlook"
  },
  "recommendations": [
    {
      "action": "what to do",
      "reason": "why it's important",
      "timeline": "when to act"
    }
  ]
}

Only return the JSON object.`, field)
}

func recommendationsPrompt(resumeJSON, preferencesJSON string) string {
	return fmt.Sprintf(`Analyze this resume and suggest career paths.

Resume Data: %s
Preferences: %s

Provide recommendations in JSON format:
{
  "recommendations": [
    {
      "title": "role title",
      "matchScore": 0-100,
      "reasoning": "why this role fits",
      "requiredSkills": ["skill1", "skill2"],
      "skillsToLearn": ["skill1", "skill2"],
      "salaryRange": "typical range",
      "growthOutlook": "growth outlook"
    }
  ],
  "overallAnalysis": {
    "strengths": ["strength1", "strength2"],
    "areasForImprovement": ["area1", "area2"],
    "careerLevel": "Entry/Junior/Mid-level/Senior"
  }
}

Only return the JSON object.`, resumeJSON, preferencesJSON)
}

func resumeAnalysisPrompt(text string) string {
	return fmt.Sprintf(`Review the following resume text:

%s

Provide an analysis in JSON format:
{
  "overallScore": 0-100,
  "strengths": ["strength1", "strength2"],
  "weaknesses": ["weakness1", "weakness2"],
  "suggestions": ["suggestion1", "suggestion2"],
  "keywords": ["keyword1", "keyword2"],
  "atsCompatibility": "assessment of ATS readability"
}

Only return the JSON object.`, text)
}
