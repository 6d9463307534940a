package iocatalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct(t *testing.T) {
	tests := []struct {
		msg     string
		choices [][]string
		res     []string
	}{
		{"single", [][]string{{"Al"}}, []string{"Al"}},
		{"wildcard", [][]string{{"Al"}, {".*"}}, []string{"Al:.*"}},
		{
			"cartesian",
			[][]string{{"Al", "Ag"}, {"WATER"}, {"MEAN", "MAX"}},
			[]string{"Al:WATER:MEAN", "Al:WATER:MAX", "Ag:WATER:MEAN", "Ag:WATER:MAX"},
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, product(v.choices), v.msg)
	}
}
