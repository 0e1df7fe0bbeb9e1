package main

import (
	"fmt"
	"os"

	"github.com/crucial707/course-api/cmd/cli/courses"
	"github.com/crucial707/course-api/cmd/cli/root"
	"github.com/crucial707/course-api/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	users.InitUsers(rootCmd)
	courses.InitCourses(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
