package sanitize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "Algebra for beginners", "Algebra for beginners"},
		{"trims", "  Física  ", "Física"},
		{"strips tags", "<b>Math</b> class", "Math class"},
		{"drops script body", `Hi<script>alert("x")</script>`, "Hi"},
		{"keeps ampersand", "Q&A session", "Q&A session"},
		{"handler attrs", `<img src=x onerror="alert(1)">Bio`, "Bio"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionalText(t *testing.T) {
	if OptionalText(nil) != nil {
		t.Error("nil must stay nil")
	}
	onlyMarkup := "<br><p></p>"
	if OptionalText(&onlyMarkup) != nil {
		t.Error("markup-only input must collapse to nil")
	}
	bio := " <i>Ten years</i> teaching "
	if got := OptionalText(&bio); got == nil || *got != "Ten years teaching" {
		t.Errorf("unexpected result %v", got)
	}
}
