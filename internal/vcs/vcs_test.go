package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "two tags",
			output: "aaaa\trefs/tags/v1.7.0\n" +
				"bbbb\trefs/tags/v2.0.0\n",
			want: []string{"v1.7.0", "v2.0.0"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
		{
			name:   "malformed line skipped",
			output: "garbage\naaaa\trefs/tags/v1.0.0",
			want:   []string{"v1.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTags(tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("parseTags() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseTags()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGitVCS_CloneAndCheckout(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	ctx := context.Background()

	// Build a local origin with one commit and one tag.
	origin := filepath.Join(t.TempDir(), "origin")
	mustGit(t, "", "init", "-b", "main", origin)
	if err := os.WriteFile(filepath.Join(origin, "README"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, origin, "add", "README")
	mustGit(t, origin, "-c", "user.name=t", "-c", "user.email=t@t", "commit", "-m", "initial")
	mustGit(t, origin, "tag", "v1.0.0")

	vcs := NewGitVCS()

	dir := filepath.Join(t.TempDir(), "clone")
	if err := vcs.CloneRecursive(ctx, origin, dir); err != nil {
		t.Fatalf("CloneRecursive failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "README")); err != nil {
		t.Fatalf("clone missing README: %v", err)
	}

	if err := vcs.Checkout(ctx, dir, "v1.0.0"); err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	tags, err := vcs.Tags(ctx, origin)
	if err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	if len(tags) != 1 || tags[0] != "v1.0.0" {
		t.Errorf("Tags = %v, want [v1.0.0]", tags)
	}

	hash, err := vcs.Latest(ctx, origin)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(hash) != 40 {
		t.Errorf("expected 40-char hash, got %d chars: %s", len(hash), hash)
	}
}

func TestGitVCS_CloneBadRemote(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	vcs := NewGitVCS()
	dir := filepath.Join(t.TempDir(), "clone")
	err := vcs.CloneRecursive(context.Background(), filepath.Join(t.TempDir(), "no-such-repo"), dir)
	if err == nil {
		t.Fatal("expected error for nonexistent remote")
	}
	if !strings.Contains(err.Error(), "clone") {
		t.Errorf("error %q does not mention clone", err)
	}
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}
