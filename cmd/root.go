package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyplan",
	Short: "Academic planning backend",
	Long:  "Studyplan — backend for an academic planner that turns classes, tasks, and exams into a personalized study schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("addr", "", "HTTP listen address (overrides STUDYPLAN_ADDR)")
	rootCmd.PersistentFlags().String("mongo-uri", "", "MongoDB connection URI (overrides STUDYPLAN_MONGO_URI; empty runs in-memory)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
