// Package scoring implements the stages of the ATS score: resume
// segmentation, embedding similarity, heuristic bonus, keyword matching and
// weighted aggregation. Stages are independent and side-effect free; the
// pipeline package composes them.
package scoring

import "strings"

// Section names a resume bucket.
type Section string

const (
	SectionExperience Section = "experience"
	SectionSkills     Section = "skills"
	SectionEducation  Section = "education"
)

// defaultSection receives text that precedes any recognized header.
const defaultSection = SectionSkills

// SectionSet holds the accumulated text of each resume section.
// Every resume line lands in exactly one section, followed by a single space.
type SectionSet struct {
	Experience string
	Skills     string
	Education  string
}

// Text returns the text of the named section.
func (s SectionSet) Text(section Section) string {
	switch section {
	case SectionExperience:
		return s.Experience
	case SectionSkills:
		return s.Skills
	case SectionEducation:
		return s.Education
	}
	return ""
}

// headerGroups are checked in order; the first group with a keyword
// contained in the upper-cased line wins.
var headerGroups = []struct {
	section  Section
	keywords []string
}{
	{SectionExperience, []string{"EXPERIENCE", "WORK", "PROJECTS"}},
	{SectionEducation, []string{"EDUCATION", "COLLEGE", "ACADEMIC"}},
	{SectionSkills, []string{"SKILLS", "TECHNOLOGIES", "TECH STACK"}},
}

// classifyHeader reports which section a line opens, if any.
// Matching is substring containment, so "WORK HISTORY" and "TEAMWORK" both
// open experience.
func classifyHeader(line string) (Section, bool) {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, g := range headerGroups {
		for _, kw := range g.keywords {
			if strings.Contains(upper, kw) {
				return g.section, true
			}
		}
	}
	return "", false
}

// Segment splits a resume into sections with a single pass over its lines.
// Header lines are kept in the section they open.
func Segment(resume string) SectionSet {
	if resume == "" {
		return SectionSet{}
	}

	var exp, skills, edu strings.Builder
	buckets := map[Section]*strings.Builder{
		SectionExperience: &exp,
		SectionSkills:     &skills,
		SectionEducation:  &edu,
	}

	current := defaultSection
	for _, line := range strings.Split(resume, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if section, ok := classifyHeader(line); ok {
			current = section
		}
		b := buckets[current]
		b.WriteString(line)
		b.WriteByte(' ')
	}

	return SectionSet{
		Experience: exp.String(),
		Skills:     skills.String(),
		Education:  edu.String(),
	}
}
