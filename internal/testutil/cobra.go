package testutil

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// Execute runs c with args and returns everything written to stdout, by the
// command itself or through the default logger.
func Execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	c.SetOut(w)

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	c.SetArgs(args)
	err = c.Execute()

	w.Close()
	os.Stdout = old
	c.SetOut(nil)
	out := <-outC

	return strings.TrimSpace(out), err
}
