package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("applied %s", "dnd")
	p.Errorf("failed at %s", "presence")
	p.Printf("plain")

	out := buf.String()
	assert.Contains(t, out, "applied dnd")
	assert.Contains(t, out, "failed at presence")
	assert.Contains(t, out, "plain\n")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
