package badge

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "ff0000", want: "#ff0000", wantOK: true},
		{input: "#ff0000", want: "#ff0000", wantOK: true},
		{input: "FFF", want: "#FFF", wantOK: true},
		{input: "#AbC", want: "#AbC", wantOK: true},
		{input: "rgb(255,0,0)", want: "rgb(255,0,0)", wantOK: true},
		{input: "rgb(1, 22, 255)", want: "rgb(1, 22, 255)", wantOK: true},
		{input: "red", want: "red", wantOK: true},
		{input: "rebeccapurple", want: "rebeccapurple", wantOK: true},
		{input: " teal ", want: "teal", wantOK: true},
		{input: AutoColor, want: AutoColor, wantOK: true},

		{input: "", wantOK: false},
		{input: "not-a-color", wantOK: false},
		{input: "Red", wantOK: false},
		{input: "#ff00", wantOK: false},
		{input: "ff00000", wantOK: false},
		{input: "#gggggg", wantOK: false},
		{input: "rgb(1000,0,0)", wantOK: false},
		{input: "rgba(1,2,3,0.5)", wantOK: false},
		{input: "red;}</style>", wantOK: false},
		{input: "url(javascript:alert(1))", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
