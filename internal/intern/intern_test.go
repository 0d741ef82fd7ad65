package intern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veficos/occ/internal/intern"
)

func TestInternReturnsSameHandleForSameString(t *testing.T) {
	var p intern.Pool
	a := p.Intern("foo.c")
	b := p.Intern("foo.c")
	assert.Equal(t, a, b)
}

func TestInternDistinctStringsGetDistinctHandles(t *testing.T) {
	var p intern.Pool
	a := p.Intern("foo.c")
	b := p.Intern("bar.c")
	assert.NotEqual(t, a, b)
}

func TestStringRoundTrips(t *testing.T) {
	var p intern.Pool
	h := p.Intern("header.h")
	assert.Equal(t, "header.h", p.String(h))
}
