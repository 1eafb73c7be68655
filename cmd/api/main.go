package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/24kewang/schedule-manager/cmd/api/commands"
)

// @title Schedule Manager API
// @version 1.0
// @description Personal course and task tracker with due-date scheduling and drag-and-drop course ordering.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "schedule-manager",
		Short: "Schedule Manager API Server",
		Long:  `Schedule Manager tracks courses and their assignments and assessments, with due-date scheduling and reorderable course lists.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
