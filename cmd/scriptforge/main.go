// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command scriptforge generates Godot prototype scripts from a game
// concept, either as a one-shot CLI run or as an HTTP service.
//
// Usage:
//
//	scriptforge run "tower defense with resource automation"
//	scriptforge run --backend anthropic --reviewer delegated "..."
//	scriptforge serve --port 8080
//
// Example requests in serve mode:
//
//	# Health check
//	curl http://localhost:8080/v1/forge/health
//
//	# Run the pipeline
//	curl -X POST http://localhost:8080/v1/forge/run \
//	  -H "Content-Type: application/json" \
//	  -d '{"concept": "a tower defense prototype"}'
package main

func main() {
	Execute()
}
