package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var buf syncBuffer
	p := NewProgress(&buf, 2, "Detecting")

	p.Step("a.csv")
	p.Step("")
	p.Finish()

	assert.Contains(t, buf.String(), "2/2")
}

func TestProgress_Nil(t *testing.T) {
	var p *Progress
	assert.NotPanics(t, func() {
		p.Step("a.csv")
		p.Finish()
	})
}
