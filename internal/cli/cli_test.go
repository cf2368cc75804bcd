// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"
)

// =============================================================================
// ARGUMENT PARSING TESTS
// =============================================================================

func TestParse_DefaultIsTUI(t *testing.T) {
	cmd, args, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd != CmdTUI {
		t.Errorf("Command: got %v, want CmdTUI", cmd)
	}
	if args.ServerURL != "" {
		t.Errorf("Unexpected server override: %q", args.ServerURL)
	}
}

func TestParse_Ask(t *testing.T) {
	cmd, args, err := Parse([]string{"ask", "what", "is", "go"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd != CmdAsk {
		t.Errorf("Command: got %v, want CmdAsk", cmd)
	}
	if args.Query != "what is go" {
		t.Errorf("Query: got %q", args.Query)
	}
}

func TestParse_AskWithoutQuestion(t *testing.T) {
	if _, _, err := Parse([]string{"ask"}); err == nil {
		t.Error("Bare ask should be an error")
	}
}

func TestParse_Flags(t *testing.T) {
	cmd, args, err := Parse([]string{"--server", "http://h:9000", "--timeout", "5", "--plain", "chat"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd != CmdChat {
		t.Errorf("Command: got %v, want CmdChat", cmd)
	}
	if args.ServerURL != "http://h:9000" {
		t.Errorf("ServerURL: got %q", args.ServerURL)
	}
	if args.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs: got %d", args.TimeoutSecs)
	}
	if !args.Plain {
		t.Error("Plain flag not set")
	}
}

func TestParse_ServerEqualsForm(t *testing.T) {
	_, args, err := Parse([]string{"--server=http://h:9000"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.ServerURL != "http://h:9000" {
		t.Errorf("ServerURL: got %q", args.ServerURL)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := [][]string{
		{"--server"},
		{"--timeout"},
		{"--timeout", "zero"},
		{"--timeout", "-3"},
		{"--bogus"},
		{"frobnicate"},
	}
	for _, argv := range cases {
		if _, _, err := Parse(argv); err == nil {
			t.Errorf("Parse(%v) should fail", argv)
		}
	}
}

func TestParse_VersionAndHelp(t *testing.T) {
	if cmd, _, _ := Parse([]string{"version"}); cmd != CmdVersion {
		t.Error("version not recognized")
	}
	if cmd, _, _ := Parse([]string{"help"}); cmd != CmdHelp {
		t.Error("help not recognized")
	}
	if cmd, _, err := Parse([]string{"--help"}); cmd != CmdHelp || err != nil {
		t.Error("--help not recognized")
	}
}
