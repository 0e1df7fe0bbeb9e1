package courses

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/course-api/cmd/cli/client"
	"github.com/crucial707/course-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type course struct {
	ID              int     `json:"id"`
	UserID          int     `json:"userId"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// ==========================
// Init Courses
// ==========================
func InitCourses(rootCmd *cobra.Command) {
	coursesCmd := &cobra.Command{
		Use:   "courses",
		Short: "Manage courses",
	}

	coursesCmd.AddCommand(
		listCoursesCmd(),
		getCourseCmd(),
		createCourseCmd(),
		updateCourseCmd(),
		deleteCourseCmd(),
	)

	rootCmd.AddCommand(coursesCmd)
}

func coursePath(arg string) (string, error) {
	if _, err := strconv.Atoi(arg); err != nil {
		return "", fmt.Errorf("invalid course id %q", arg)
	}
	return "/api/courses/" + arg, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func renderCourses(cmd *cobra.Command, list []course) {
	rows := make([][]interface{}, 0, len(list))
	for _, c := range list {
		rows = append(rows, []interface{}{c.ID, c.UserID, c.Title, deref(c.EstimatedTime), deref(c.MaterialsNeeded)})
	}
	output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Owner", "Title", "Estimated time", "Materials"}, rows)
}

// ==========================
// LIST
// ==========================
func listCoursesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []course
			if _, err := client.FromCommand(cmd).Do(http.MethodGet, "/api/courses", nil, &list); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), list)
			}
			renderCourses(cmd, list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// GET
// ==========================
func getCourseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := coursePath(args[0])
			if err != nil {
				return err
			}
			var c course
			if _, err := client.FromCommand(cmd).Do(http.MethodGet, path, nil, &c); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), c)
			}
			renderCourses(cmd, []course{c})
			fmt.Fprintln(cmd.OutOrStdout(), c.Description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course (requires --email/--password)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := coursePayload(cmd)
			if _, err := client.FromCommand(cmd).Do(http.MethodPost, "/api/courses", payload, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Course created.")
			return nil
		},
	}
	addCourseFlags(cmd)
	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateCourseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given attributes of a course you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := coursePath(args[0])
			if err != nil {
				return err
			}
			payload := coursePayload(cmd)
			if len(payload) == 0 {
				return fmt.Errorf("nothing to update: pass at least one of --user-id, --title, --description, --estimated-time, --materials-needed")
			}
			if _, err := client.FromCommand(cmd).Do(http.MethodPut, path, payload, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Course %s updated.\n", args[0])
			return nil
		},
	}
	addCourseFlags(cmd)
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCourseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a course you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := coursePath(args[0])
			if err != nil {
				return err
			}
			if _, err := client.FromCommand(cmd).Do(http.MethodDelete, path, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Course %s deleted.\n", args[0])
			return nil
		},
	}
}

func addCourseFlags(cmd *cobra.Command) {
	cmd.Flags().Int("user-id", 0, "Owning user id")
	cmd.Flags().String("title", "", "Course title")
	cmd.Flags().String("description", "", "Course description")
	cmd.Flags().String("estimated-time", "", "Estimated time")
	cmd.Flags().String("materials-needed", "", "Materials needed")
}

// coursePayload includes only the flags that were set on the command line.
func coursePayload(cmd *cobra.Command) map[string]any {
	payload := map[string]any{}
	flags := cmd.Flags()
	if flags.Changed("user-id") {
		v, _ := flags.GetInt("user-id")
		payload["userId"] = v
	}
	for flag, attr := range map[string]string{
		"title":            "title",
		"description":      "description",
		"estimated-time":   "estimatedTime",
		"materials-needed": "materialsNeeded",
	} {
		if flags.Changed(flag) {
			v, _ := flags.GetString(flag)
			payload[attr] = v
		}
	}
	return payload
}
