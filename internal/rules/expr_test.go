package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmtable/sheet-api/internal/rules"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		base  int
		level int
		want  int
	}{
		{name: "empty", expr: "", base: 100, level: 5, want: 0},
		{name: "percent of base", expr: "50%", base: 200, level: 1, want: 100},
		{name: "fraction of base", expr: "1/3", base: 90, level: 1, want: 30},
		{name: "per level with literal", expr: "3x-5", base: 0, level: 4, want: 7},
		{name: "bare level", expr: "x", base: 999, level: 5, want: 5},
		{name: "literal", expr: "12", base: 0, level: 0, want: 12},
		{name: "percent plus literal", expr: "10%+5", base: 100, level: 1, want: 15},
		{name: "leading minus", expr: "-5+20", base: 0, level: 0, want: 15},
		{name: "decimal comma multiplier", expr: "0,5x", base: 0, level: 4, want: 2},
		{name: "decimal point literal", expr: "2.6", base: 0, level: 0, want: 3},
		{name: "spaces and case ignored", expr: " 50 % + 2 X ", base: 200, level: 3, want: 106},
		{name: "zero denominator term is zero", expr: "1/0+5", base: 100, level: 1, want: 5},
		{name: "unknown term skipped", expr: "abc+5", base: 100, level: 1, want: 5},
		{name: "whole expression unknown", expr: "see notes", base: 100, level: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Evaluate(tt.expr, tt.base, tt.level))
		})
	}
}

func TestEvaluate_RoundsPerTerm(t *testing.T) {
	// 50/3 rounds to 17 before the terms are summed, so two thirds of 50
	// is 34, not round(33.33) = 33.
	assert.Equal(t, 34, rules.Evaluate("1/3+1/3", 50, 1))

	// The sign applies after the unsigned term is rounded.
	assert.Equal(t, -17, rules.Evaluate("-1/3", 50, 1))
	assert.Equal(t, 0, rules.Evaluate("1/3-1/3", 50, 1))
}
