package main

import "testing"

func TestRootCmd(t *testing.T) {
	cmd := newRootCmd()
	if cmd == nil {
		t.Fatal("newRootCmd() returned nil")
	}

	if cmd.Use != "stencil" {
		t.Errorf("expected use 'stencil', got '%s'", cmd.Use)
	}

	found := false
	for _, c := range cmd.Commands() {
		if c.Name() == "gen" {
			found = true
			break
		}
	}
	if !found {
		t.Error("gen subcommand not found")
	}
}

func TestParseSkipConfirms(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		overwrite bool
		hooks     bool
		wantErr   bool
	}{
		{name: "empty"},
		{name: "all", values: []string{"all"}, overwrite: true, hooks: true},
		{name: "overwrite", values: []string{"overwrite"}, overwrite: true},
		{name: "hooks", values: []string{"hooks"}, hooks: true},
		{name: "combined", values: []string{"overwrite", "hooks"}, overwrite: true, hooks: true},
		{name: "unknown", values: []string{"bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSkipConfirms(tt.values)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got.overwrite != tt.overwrite || got.hooks != tt.hooks {
				t.Errorf("got %+v", got)
			}
		})
	}
}
