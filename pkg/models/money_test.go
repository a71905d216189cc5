package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no rounding needed", input: "10.00", expected: "10.00"},
		{name: "rounds up at half", input: "0.005", expected: "0.01"},
		{name: "rounds down below half", input: "0.004", expected: "0.00"},
		{name: "negative rounds away from zero", input: "-0.005", expected: "-0.01"},
		{name: "long fraction", input: "33.33333", expected: "33.33"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Round2(decimal.RequireFromString(tc.input))
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}

func TestComputeVAT(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		net      string
		rate     int
		expected string
	}{
		{name: "standard rate", net: "1000.00", rate: 20, expected: "200.00"},
		{name: "reduced rate", net: "100.00", rate: 10, expected: "10.00"},
		{name: "rounding", net: "33.33", rate: 20, expected: "6.67"},
		{name: "zero rate", net: "100.00", rate: 0, expected: "0.00"},
		{name: "zero net", net: "0.00", rate: 20, expected: "0.00"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeVAT(decimal.RequireFromString(tc.net), tc.rate)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}
}
