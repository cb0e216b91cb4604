// Package catalog holds the static learning content: projects, learning
// paths, pricing plans and feature highlights.
package catalog

import (
	"fmt"
	"strings"
)

// Level is a difficulty selector. LevelAll matches every project.
type Level string

const (
	LevelAll          Level = "all"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the selectors in display order.
var Levels = []Level{LevelAll, LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel normalizes a selector. The empty string means LevelAll.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelAll, nil
	}
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level: %q (all|beginner|intermediate|advanced)", s)
}

// Next cycles to the following selector, wrapping around.
func (l Level) Next() Level {
	for i, lvl := range Levels {
		if lvl == l {
			return Levels[(i+1)%len(Levels)]
		}
	}
	return LevelAll
}

// Project is a hands-on exercise in the catalog.
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Skills      []string `json:"skills"`
	Tags        []string `json:"tags"`
	Icon        string   `json:"icon"`
}

// LearningPath is an ordered sequence of projects with milestones.
type LearningPath struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	ProjectIDs  []int    `json:"projects"`
	Milestones  []string `json:"milestones"`
	Skills      []string `json:"skills"`
	Icon        string   `json:"icon"`
}

// Plan is a pricing tier.
type Plan struct {
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthly_price"`
	Features     []string `json:"features"`
	CallToAction string   `json:"call_to_action"`
	Highlighted  bool     `json:"highlighted"`
}

// Feature is a marketing highlight on the overview tab.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Catalog bundles every static table the front ends render.
type Catalog struct {
	Projects      []Project      `json:"projects"`
	LearningPaths []LearningPath `json:"learning_paths"`
	Plans         []Plan         `json:"plans"`
	Features      []Feature      `json:"features"`
}

// Project looks a project up by id.
func (c *Catalog) Project(id int) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// LearningPath looks a learning path up by id.
func (c *Catalog) LearningPath(id int) (LearningPath, bool) {
	for _, lp := range c.LearningPaths {
		if lp.ID == id {
			return lp, true
		}
	}
	return LearningPath{}, false
}

// PathProjects resolves a path's project ids in path order, skipping unknown ids.
func (c *Catalog) PathProjects(lp LearningPath) []Project {
	out := make([]Project, 0, len(lp.ProjectIDs))
	for _, id := range lp.ProjectIDs {
		if p, ok := c.Project(id); ok {
			out = append(out, p)
		}
	}
	return out
}
