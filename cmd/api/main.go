package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewboard/core/cmd/api/commands"
)

// @title Crewboard API
// @version 1.0
// @description Collaborative project and task management backend

// @contact.name Crewboard Support
// @contact.url https://github.com/crewboard/core

// @license.name MIT
// @license.url https://github.com/crewboard/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewboard",
		Short: "Crewboard API Server",
		Long:  `Crewboard is a collaborative project and task management backend with shared projects, ordered task lists and collaboration invitations.`,
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
