package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/tasklist-go/internal/remote/remotetest"
)

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("regular file reported as TTY")
	}
}

func TestRunTUICanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := RunTUI(ctx, remotetest.NewScripted(), WithIO(strings.NewReader(""), &out))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
