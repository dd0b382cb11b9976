// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/scriptforge/pkg/logging"
)

var version = "0.1.0"

// --- Global Command Variables ---
var (
	configPath   string
	backendType  string
	reviewerType string
	outputDir    string
	maxScripts   int
	maxIter      int
	logLevel     string
	logJSON      bool
	servePort    int

	rootCmd = &cobra.Command{
		Use:   "scriptforge",
		Short: "Generate Godot prototype scripts from a game concept",
		Long: `ScriptForge plans the GDScript files a game prototype needs,
generates each one through an LLM backend with bounded review loops,
and follows the dependencies the generated code introduces.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_, _, err := logging.Setup(logging.Config{
				Level: logging.ParseLevel(logLevel),
				JSON:  logJSON,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
			}
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [concept]",
		Short: "Run the generation pipeline once for a game concept",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runForge, // Defined in run.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		RunE:  runServe, // Defined in serve.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the scriptforge version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scriptforge %s\n", version)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false,
		"Emit logs as JSON")

	runCmd.Flags().StringVar(&backendType, "backend", "",
		"Generation backend (ollama, anthropic, openai)")
	runCmd.Flags().StringVar(&reviewerType, "reviewer", "",
		"Reviewer strategy (heuristic, delegated)")
	runCmd.Flags().StringVar(&outputDir, "output", "",
		"Directory for generated runs")
	runCmd.Flags().IntVar(&maxScripts, "max-scripts", 0,
		"Cap on total scripts processed per run")
	runCmd.Flags().IntVar(&maxIter, "max-iterations", 0,
		"Cap on generate+review passes per script")

	serveCmd.Flags().IntVar(&servePort, "port", 8080,
		"Port to listen on")
	serveCmd.Flags().StringVar(&backendType, "backend", "",
		"Default generation backend for requests")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
