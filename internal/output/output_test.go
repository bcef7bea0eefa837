package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Println("hello")
	w.Successf("loaded %d records", 3)
	w.Warning("careful")
	w.Errorf("failed: %s", "boom")
	w.Dim("no results")

	got := buf.String()
	assert.Equal(t, "hello\nloaded 3 records\ncareful\nfailed: boom\nno results\n", got)
	assert.NotContains(t, got, "\033[")
}

func TestWriter_Printf(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.Printf("%d. %s\n", 1, "DAVID SMITH")
	assert.Equal(t, "1. DAVID SMITH\n", buf.String())
}

func TestWriter_ColoredOutput(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{out: &buf, useColor: true}

	w.Success("done")
	assert.Equal(t, colorGreen+"done"+colorReset+"\n", buf.String())

	buf.Reset()
	w.Dim("no results")
	assert.Equal(t, colorDim+"no results"+colorReset+"\n", buf.String())
}
