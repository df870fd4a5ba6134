package repl

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"team list", []string{"team", "list"}},
		{"  team \t list  ", []string{"team", "list"}},
		{`team send 3 "see you at 7"`, []string{"team", "send", "3", "see you at 7"}},
		{`team send 3 'it''s fine'`, []string{"team", "send", "3", "its fine"}},
		{`team send 3 'a "quoted" word'`, []string{"team", "send", "3", `a "quoted" word`}},
		{`team send 3 "say \"hi\""`, []string{"team", "send", "3", `say "hi"`}},
		{`team send 3 'back\slash'`, []string{"team", "send", "3", `back\slash`}},
		{`team send 3 two\ words`, []string{"team", "send", "3", "two words"}},
		{`login --password ""`, []string{"login", "--password", ""}},
		{`--name="Andes Crew"`, []string{"--name=Andes Crew"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := SplitArgs(tt.line)
			if err != nil {
				t.Fatalf("SplitArgs(%q) error = %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitArgs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitArgs_Unterminated(t *testing.T) {
	for _, line := range []string{`send "open`, `send 'open`, `send trailing\`} {
		if _, err := SplitArgs(line); !errors.Is(err, ErrUnterminatedQuote) {
			t.Errorf("SplitArgs(%q) error = %v, want ErrUnterminatedQuote", line, err)
		}
	}
}
