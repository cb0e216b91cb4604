package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"TraceTutor/internal/catalog"
)

var (
	projectsQuery string
	projectsLevel string
	projectsJSON  bool
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and filter catalog projects",
	Long: `List catalog projects, filtered the same way as the projects tab.

Examples:
  tracetutor projects                    # every project
  tracetutor projects -q led             # search titles, descriptions, skills and tags
  tracetutor projects --level advanced   # only advanced projects
  tracetutor projects -q power --json    # output as JSON`,
	RunE: runProjects,
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsQuery, "query", "q", "", "search text")
	projectsCmd.Flags().StringVar(&projectsLevel, "level", "all", "difficulty: all|beginner|intermediate|advanced")
	projectsCmd.Flags().BoolVar(&projectsJSON, "json", false, "Output as JSON")
}

func runProjects(cmd *cobra.Command, args []string) error {
	level, err := catalog.ParseLevel(projectsLevel)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	projects := catalog.Filter(projectsQuery, level, cat.Projects)
	fmt.Fprint(cmd.OutOrStdout(), formatProjectsOutput(projects, projectsJSON))
	return nil
}

func formatProjectsOutput(projects []catalog.Project, asJSON bool) string {
	if asJSON {
		output := struct {
			Projects []catalog.Project `json:"projects"`
			Count    int               `json:"count"`
		}{
			Projects: projects,
			Count:    len(projects),
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Sprintf("{\"error\": %q}\n", err.Error())
		}
		return string(data) + "\n"
	}

	if len(projects) == 0 {
		return "No projects match your search.\n"
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDIFFICULTY\tDURATION\tTAGS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Difficulty, p.Duration, strings.Join(p.Tags, ", "))
	}
	tw.Flush()
	return sb.String()
}
