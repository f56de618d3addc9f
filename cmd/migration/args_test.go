package main

import (
	"errors"
	"testing"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "up", args: []string{"UP"}, want: command{name: "up"}},
		{name: "down default", args: []string{"down"}, want: command{name: "down", steps: 1}},
		{name: "down steps", args: []string{"down", "2"}, want: command{name: "down", steps: 2}},
		{name: "down zero", args: []string{"down", "0"}, wantErr: true},
		{name: "force", args: []string{"force", "2"}, want: command{name: "force", version: 2}},
		{name: "force missing", args: []string{"force"}, wantErr: true},
		{name: "migrate alias", args: []string{"migrate", "1"}, want: command{name: "goto", target: 1}},
		{name: "goto negative", args: []string{"goto", "-1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseCommand(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCommand(%v): %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("unexpected command: got=%+v want=%+v", got, tt.want)
			}
		})
	}
}

func TestParseCommand_UsageErrors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"seed"}} {
		if _, err := parseCommand(args); !errors.Is(err, errUsage) {
			t.Fatalf("parseCommand(%v) got=%v want=%v", args, err, errUsage)
		}
	}
}
