package matcher

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		desc    string
		d       Dict
		text    string
		want    bool
		wantErr bool
	}{
		{desc: "equals true", d: Dict{"equals": "interface Vlan2"}, text: "interface Vlan2", want: true},
		{desc: "equals false", d: Dict{"equals": "interface Vlan2"}, text: "interface Vlan3", want: false},
		{desc: "startswith", d: Dict{"startswith": "interface "}, text: "interface Vlan2", want: true},
		{desc: "startswith list, one matches", d: Dict{"startswith": []string{"router ", "interface "}}, text: "interface Vlan2", want: true},
		{desc: "endswith", d: Dict{"endswith": "2"}, text: "interface Vlan2", want: true},
		{desc: "contains", d: Dict{"contains": "Vlan"}, text: "interface Vlan2", want: true},
		{desc: "re_search", d: Dict{"re_search": `Vlan\d+`}, text: "interface Vlan2", want: true},
		{desc: "re_search no match", d: Dict{"re_search": `^Vlan`}, text: "interface Vlan2", want: false},
		{
			desc: "ANDed kinds both true",
			d:    Dict{"startswith": "interface ", "contains": "Vlan"},
			text: "interface Vlan2", want: true,
		},
		{
			desc: "ANDed kinds one false",
			d:    Dict{"startswith": "interface ", "contains": "GigabitEthernet"},
			text: "interface Vlan2", want: false,
		},
		{desc: "not_startswith satisfied", d: Dict{"not_startswith": "router "}, text: "interface Vlan2", want: true},
		{desc: "not_startswith violated", d: Dict{"not_startswith": "interface "}, text: "interface Vlan2", want: false},
		{desc: "not_equals satisfied", d: Dict{"not_equals": []string{"a", "b"}}, text: "c", want: true},
		{desc: "not_equals violated", d: Dict{"not_equals": []string{"a", "b"}}, text: "a", want: false},
		{desc: "empty dict always matches", d: Dict{}, text: "anything", want: true},
		{desc: "unknown kind errors", d: Dict{"frobnicate": "x"}, text: "anything", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, err := Match(tt.d, tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Match() returned no error, want one")
				}
				return
			}
			if err != nil {
				t.Fatalf("Match() returned unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%v, %q) = %v, want %v", tt.d, tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchBadValueType(t *testing.T) {
	_, err := Match(Dict{"equals": 5}, "x")
	if err == nil {
		t.Fatal("Match() with int value returned no error, want one")
	}
}
