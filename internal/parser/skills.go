package parser

import (
	"strings"

	"careergenie-backend/internal/resume"
)

// Category is a named keyword list in the skills catalog.
type Category struct {
	Name     string
	Keywords []string
}

// TechnicalCatalog feeds Skills.Technical. Categories are scanned in order.
var TechnicalCatalog = []Category{
	{Name: "Software Development", Keywords: []string{
		"javascript", "python", "java", "react", "node.js", "sql", "mongodb", "git", "docker",
		"kubernetes", "aws", "azure", "typescript", "angular", "vue.js", "spring boot", "django",
		"flask", "express.js", "rest api", "graphql", "microservices", "agile", "scrum", "ci/cd",
		"jenkins", "terraform", "ansible", "redis", "elasticsearch", "kafka",
	}},
	{Name: "Data Science", Keywords: []string{
		"python", "r", "sql", "machine learning", "deep learning", "pandas", "numpy", "scikit-learn",
		"tensorflow", "pytorch", "jupyter", "matplotlib", "seaborn", "statistics",
		"data visualization", "big data", "hadoop", "spark", "tableau", "power bi", "excel",
	}},
	{Name: "Cybersecurity", Keywords: []string{
		"network security", "penetration testing", "vulnerability assessment", "firewall", "ids/ips",
		"siem", "incident response", "cryptography", "ethical hacking", "risk assessment",
		"compliance", "iso 27001", "cissp", "ceh", "wireshark", "nmap", "metasploit", "burp suite",
	}},
	{Name: "Marketing", Keywords: []string{
		"digital marketing", "seo", "sem", "social media marketing", "content marketing",
		"email marketing", "google analytics", "google ads", "facebook ads", "marketing automation",
		"brand management", "market research", "copywriting", "conversion optimization",
		"a/b testing", "crm",
	}},
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem solving", "project management",
	"time management", "critical thinking", "adaptability", "creativity", "negotiation",
	"presentation", "conflict resolution", "mentoring", "strategic thinking",
}

var programmingLanguages = []string{
	"javascript", "python", "java", "c++", "c#", "php", "ruby", "go", "rust",
	"swift", "kotlin", "typescript", "scala", "perl", "r", "matlab",
}

var frameworkKeywords = []string{
	"react", "angular", "vue.js", "node.js", "express.js", "spring boot", "django", "flask",
	"tensorflow", "pytorch", "scikit-learn", ".net", "rails", "laravel", "next.js",
}

var toolKeywords = []string{
	"git", "docker", "kubernetes", "jenkins", "terraform", "ansible", "jira", "jupyter",
	"tableau", "power bi", "excel", "wireshark", "nmap", "metasploit", "burp suite",
	"google analytics", "postman", "figma",
}

// ExtractSkills matches the lowercased text against the catalog by substring
// containment. Each list keeps first-match order and holds a term once.
func ExtractSkills(text string) resume.Skills {
	lower := strings.ToLower(text)
	var technical []string
	for _, cat := range TechnicalCatalog {
		technical = appendMatches(technical, lower, cat.Keywords)
	}
	return resume.Skills{
		Technical:  orEmpty(technical),
		Soft:       orEmpty(appendMatches(nil, lower, softSkills)),
		Languages:  orEmpty(appendMatches(nil, lower, programmingLanguages)),
		Frameworks: orEmpty(appendMatches(nil, lower, frameworkKeywords)),
		Tools:      orEmpty(appendMatches(nil, lower, toolKeywords)),
	}
}

func appendMatches(dst []string, lower string, keywords []string) []string {
	for _, kw := range keywords {
		if !strings.Contains(lower, kw) || contains(dst, kw) {
			continue
		}
		dst = append(dst, kw)
	}
	return dst
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
