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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vidyasetu/VidyaSetu/services/router/intent"
	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
)

// --- Global Command Variables ---
var (
	knowledgeFile string

	rootCmd = &cobra.Command{
		Use:   "vidyactl",
		Short: "A cli to inspect the VidyaSetu query router",
		Long: `vidyactl runs the router's deterministic pipeline locally:
spelling correction, synonym expansion, and priority resolution.
No services are contacted.`,
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve [query]",
		Short: "Resolve a query to ranked portal destinations",
		Args:  cobra.MinimumNArgs(1),
		Run:   runResolve,
	}

	correctCmd = &cobra.Command{
		Use:   "correct [query]",
		Short: "Show the spelling-corrected form of a query",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCorrect,
	}

	expandCmd = &cobra.Command{
		Use:   "expand [query]",
		Short: "Show the synonym-expanded variants of a query",
		Args:  cobra.MinimumNArgs(1),
		Run:   runExpand,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&knowledgeFile, "knowledge", "",
		"path to a knowledge YAML file (default: built-in knowledge base)")
	rootCmd.AddCommand(resolveCmd, correctCmd, expandCmd)
}

// newEngine builds an engine over the selected knowledge snapshot.
func newEngine() *intent.Engine {
	snap := knowledge.Default()
	if knowledgeFile != "" {
		loaded, err := knowledge.Load(knowledgeFile)
		if err != nil {
			log.Fatalf("Error loading knowledge file: %v", err)
		}
		snap = loaded
	}
	return intent.NewEngine(knowledge.NewStore(snap), intent.DefaultEngineConfig())
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding output: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

func runResolve(cmd *cobra.Command, args []string) {
	engine := newEngine()
	query := strings.Join(args, " ")
	corrected := engine.CorrectSpelling(query)
	printJSON(map[string]any{
		"query":     query,
		"corrected": corrected,
		"results":   engine.Resolve(context.Background(), corrected),
	})
}

func runCorrect(cmd *cobra.Command, args []string) {
	engine := newEngine()
	query := strings.Join(args, " ")
	printJSON(map[string]string{
		"query":     query,
		"corrected": engine.CorrectSpelling(query),
	})
}

func runExpand(cmd *cobra.Command, args []string) {
	engine := newEngine()
	query := strings.Join(args, " ")
	printJSON(map[string]any{
		"query":    query,
		"variants": engine.ExpandWithSynonyms(query),
	})
}
