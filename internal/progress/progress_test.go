package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_TTY(t *testing.T) {
	var buf bytes.Buffer
	p := &Progress{w: &buf, label: "Uploading", total: 5, isTTY: true}

	p.Increment()
	p.Print()
	assert.Equal(t, "\rUploading... 1/5 (20%)", buf.String())

	buf.Reset()
	p.Done()
	assert.Equal(t, "\r"+strings.Repeat(" ", 22)+"\r", buf.String())
}

func TestProgress_Quiet(t *testing.T) {
	var buf bytes.Buffer

	small := &Progress{w: &buf, label: "Exporting", total: 2, isTTY: true}
	small.Increment()
	small.Print()
	small.Done()

	pipe := &Progress{w: &buf, label: "Exporting", total: 10}
	pipe.Increment()
	pipe.Print()
	pipe.Done()

	assert.Empty(t, buf.String())
}
