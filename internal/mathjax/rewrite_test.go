// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mathjax

import "testing"

func TestRewrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare pipe inside inline math is escaped",
			input: `$a|b$`,
			want:  `$a\vert b$`,
		},
		{
			name:  "pipe with surrounding spaces collapses cleanly",
			input: `$a | b$`,
			want:  `$a \vert b$`,
		},
		{
			name:  "left right delimiters stay unescaped",
			input: `$\left| x \right|$`,
			want:  `$\left| x \right|$`,
		},
		{
			name:  "pipe between lvert and rvert stays unescaped",
			input: `$\lvert a | b \rvert$`,
			want:  `$\lvert a | b \rvert$`,
		},
		{
			name:  "single digit exponent gains braces",
			input: `$x^2$`,
			want:  `$x^{2}$`,
		},
		{
			name:  "single letter subscript gains braces",
			input: `$b_0^2$`,
			want:  `$b_{0}^{2}$`,
		},
		{
			name:  "already braced exponent unchanged",
			input: `$x^{2}$`,
			want:  `$x^{2}$`,
		},
		{
			name:  "multi-character braced exponent unchanged",
			input: `$x^{ab}$`,
			want:  `$x^{ab}$`,
		},
		{
			name:  "command exponent gains braces",
			input: `$x^\alpha + y_\mu$`,
			want:  `$x^{\alpha} + y_{\mu}$`,
		},
		{
			name:  "escaped underscore is not a subscript",
			input: `$a\_b$`,
			want:  `$a\_b$`,
		},
		{
			name:  "block math content rewritten",
			input: "$$\nx = \\sqrt{b_0^2}\n$$",
			want:  "$$\nx = \\sqrt{b_{0}^{2}}\n$$",
		},
		{
			name:  "quoted block math content rewritten",
			input: "> $$\n> f(x) = x^2\n> $$",
			want:  "> $$\n> f(x) = x^{2}\n> $$",
		},
		{
			name:  "paren delimiters become dollars",
			input: `\(E=mc^2\)`,
			want:  `$E=mc^{2}$`,
		},
		{
			name:  "bracket delimiters become double dollars",
			input: `\[x|y\]`,
			want:  `$$x\vert y$$`,
		},
		{
			name:  "currency dollars are not math",
			input: `Costs $5 or $10 total`,
			want:  `Costs $5 or $10 total`,
		},
		{
			name:  "unmatched dollar at end of input is literal",
			input: `price: $`,
			want:  `price: $`,
		},
		{
			name:  "span never crosses a blank line",
			input: "$a\n\nb$",
			want:  "$a\n\nb$",
		},
		{
			name:  "escaped dollar is literal",
			input: `\$5 and $x^2$`,
			want:  `\$5 and $x^{2}$`,
		},
		{
			name:  "double spaces inside math collapse",
			input: `$a  +  b$`,
			want:  `$a + b$`,
		},
		{
			name:  "text outside math untouched",
			input: `a|b and x^2 outside`,
			want:  `a|b and x^2 outside`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rewrite(tt.input)
			if got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	inputs := []string{
		`$a|b$`,
		`$\left| x \right|$`,
		`$x^2 + y_i$`,
		"$$\n\\left| \\frac{a}{b} \\right| \\leq c^2\n$$",
		`\(E=mc^2\)`,
		`Costs $5 or $10 total`,
		"> 公式: $d\\geqslant 1$\n>\n> $$\n> \\nu(x) = x^2\n> $$",
		`$\lvert a | b \rvert$ and $c|d$`,
	}
	for _, in := range inputs {
		once := Rewrite(in)
		twice := Rewrite(once)
		if once != twice {
			t.Errorf("Rewrite not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}
