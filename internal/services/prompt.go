package services

import (
	"encoding/json"
	"fmt"

	"alfredoptarigan/resume-matcher/internal/models"
)

// resumePromptLimit is the number of leading resume characters sent to the model.
const resumePromptLimit = 3000

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildJobProfilePrompt creates prompt for job description extraction
func (pb *PromptBuilder) BuildJobProfilePrompt(jobText string) string {
	return fmt.Sprintf(`Analyze this job description and extract key information in JSON format.

JOB DESCRIPTION:
%s

Extract:
1. Job title
2. Must-have skills (list of 5-10 specific technical skills)
3. Good-to-have skills (list of 3-7 additional skills)
4. Experience required
5. Education requirements

Return only valid JSON in the following format:
{
  "job_title": "Software Developer",
  "must_have_skills": ["Python", "JavaScript", "React", "SQL", "Git"],
  "good_to_have_skills": ["AWS", "Docker", "MongoDB"],
  "experience_required": "2-5 years",
  "education_required": "Bachelor's degree in Computer Science"
}`, jobText)
}

// BuildResumeAnalysisPrompt creates prompt for scoring one resume against a job profile
func (pb *PromptBuilder) BuildResumeAnalysisPrompt(resumeText string, profile models.JobProfile) string {
	return fmt.Sprintf(`You are an expert HR professional evaluating a resume against job requirements.

RESUME CONTENT (first %d chars):
%s

JOB REQUIREMENTS:
- Position: %s
- Must-have skills: %s
- Nice-to-have skills: %s
- Experience: %s
- Education: %s

ANALYSIS FRAMEWORK:
1. Technical Skills Match (0-40 points) - How well do the candidate's technical skills align?
2. Experience Relevance (0-25 points) - Does their experience match the requirements?
3. Educational Background (0-15 points) - Does their education fit?
4. Overall Profile Quality (0-20 points) - Resume quality, achievements, certifications

Analyze this candidate thoroughly and provide detailed feedback.

Return ONLY valid JSON:
{
  "technical_skills_score": <0-40>,
  "experience_score": <0-25>,
  "education_score": <0-15>,
  "profile_quality_score": <0-20>,
  "experience_match": "Excellent Match" | "Good Match" | "Partial Match" | "Poor Match",
  "education_match": "Excellent Match" | "Good Match" | "Partial Match" | "Poor Match",
  "strengths": ["strength1", "strength2", "strength3"],
  "recommendations": ["improvement1", "improvement2", "improvement3"],
  "key_achievements": ["achievement1", "achievement2"],
  "years_of_experience": <estimated years as a number>
}`,
		resumePromptLimit,
		truncateRunes(resumeText, resumePromptLimit),
		profile.Title,
		formatSkillList(profile.MustHaveSkills),
		formatSkillList(profile.GoodToHaveSkills),
		profile.ExperienceRequired,
		profile.EducationRequired,
	)
}

func formatSkillList(skills []string) string {
	if skills == nil {
		skills = []string{}
	}
	bytes, err := json.Marshal(skills)
	if err != nil {
		return "[]"
	}
	return string(bytes)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
