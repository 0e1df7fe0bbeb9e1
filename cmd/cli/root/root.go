package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "courses",
	Short:         "Course catalog CLI",
	Long:          "Command line interface for the course catalog REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("api-url", "", "API base URL (default $COURSE_API_URL or http://localhost:5000)")
	RootCmd.PersistentFlags().String("email", "", "Basic-auth email (default $COURSE_API_EMAIL)")
	RootCmd.PersistentFlags().String("password", "", "Basic-auth password (default $COURSE_API_PASSWORD)")
}

func GetRoot() *cobra.Command {
	return RootCmd
}
