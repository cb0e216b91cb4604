package catalog

import "strings"

// Filter returns the projects whose title, description, skills or tags
// contain query (case-insensitive) and whose difficulty equals level.
// LevelAll (or the zero Level) and an empty query match everything.
// Catalog order is preserved.
func Filter(query string, level Level, projects []Project) []Project {
	q := strings.ToLower(query)
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if matchesQuery(p, q) && matchesLevel(p, level) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Project, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesLevel(p Project, level Level) bool {
	return level == LevelAll || level == "" || strings.ToLower(p.Difficulty) == string(level)
}
