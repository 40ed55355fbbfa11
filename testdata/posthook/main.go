// Package main provides a post-generation hook fixture for tests. It reads
// the hook payload from stdin and writes a status file into the output dir.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type payload struct {
	OutputDir string `json:"output_dir"`
	Answers   any    `json:"answers"`
}

func main() {
	var p payload
	if err := json.NewDecoder(os.Stdin).Decode(&p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if p.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "payload missing output_dir")
		os.Exit(1)
	}
	dest := filepath.Join(p.OutputDir, "post-hook.txt")
	if err := os.WriteFile(dest, []byte("post hook executed via go runner\n"), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
