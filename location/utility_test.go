package location

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		id    int64
		venue string
		city  string
		state string
		want  string
	}{
		{
			name:  "venue city state",
			id:    95,
			venue: "Chase Auditorium",
			city:  "Chicago",
			state: "IL",
			want:  "chase-auditorium-chicago-il",
		},
		{
			name:  "venue and city",
			id:    3,
			venue: "Town Hall",
			city:  "New York",
			want:  "town-hall-new-york",
		},
		{
			name:  "venue only",
			id:    17,
			venue: "Studio 4A",
			want:  "17-studio-4a",
		},
		{
			name:  "city and state",
			id:    12,
			city:  "Boston",
			state: "MA",
			want:  "12-boston-ma",
		},
		{
			name: "nothing",
			id:   64,
			want: "location-64",
		},
		{
			name:  "whitespace only fields",
			id:    8,
			venue: "  ",
			city:  " ",
			want:  "location-8",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Slugify(tc.id, tc.venue, tc.city, tc.state)
			if got != tc.want {
				t.Errorf("Slugify(%d, %q, %q, %q) = %q, want %q",
					tc.id, tc.venue, tc.city, tc.state, got, tc.want)
			}
		})
	}
}
