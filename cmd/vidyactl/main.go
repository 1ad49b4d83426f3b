// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// vidyactl exercises the deterministic pipeline from the command line.
// It makes no network calls; everything runs against the built-in or a
// local knowledge file, which makes it the fastest way to debug why a
// query routed where it did.
package main

import (
	"log"

	"github.com/vidyasetu/VidyaSetu/pkg/logging"
)

func main() {
	logger := logging.New(logging.Config{Service: "vidyactl", Quiet: true})
	logger.SetAsDefault()
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
