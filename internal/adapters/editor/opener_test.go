package editor

import (
	"context"
	"errors"
	"testing"
)

func noEditors(string) (string, error) { return "", errors.New("not found") }

func TestFindEditor(t *testing.T) {
	tests := []struct {
		name      string
		preferred string
		editor    string
		visual    string
		want      string
	}{
		{"preferred wins", "code --wait", "vim", "", "code --wait"},
		{"editor env", "", "vim", "emacs", "vim"},
		{"visual env", "", "", "emacs", "emacs"},
		{"nothing available", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			o := NewOpener(tt.preferred)
			o.lookPath = noEditors

			if got := o.findEditor(); got != tt.want {
				t.Errorf("findEditor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandSplitsArguments(t *testing.T) {
	o := NewOpener("code --wait")
	cmd, err := o.Command(context.Background(), "/tmp/rules.txt")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	want := []string{"code", "--wait", "/tmp/rules.txt"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %q, want %q", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestCommandWithoutEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	o := NewOpener("")
	o.lookPath = noEditors

	if _, err := o.Command(context.Background(), "rules.txt"); err == nil {
		t.Error("Command() error = nil, want missing editor error")
	}
}
