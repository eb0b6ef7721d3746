package database

import "testing"

func TestDSN(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "with password",
			cfg: Config{
				Host:     "localhost",
				Port:     "3306",
				User:     "stats",
				Password: "secret",
				Name:     "wwdtm",
			},
			want: "stats:secret@tcp(localhost:3306)/wwdtm?charset=utf8mb4&parseTime=true&loc=UTC",
		},
		{
			name: "without password",
			cfg: Config{
				Host: "db.internal",
				Port: "3307",
				User: "reader",
				Name: "wwdtm",
			},
			want: "reader@tcp(db.internal:3307)/wwdtm?charset=utf8mb4&parseTime=true&loc=UTC",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DSN(tc.cfg); got != tc.want {
				t.Errorf("DSN() = %q, want %q", got, tc.want)
			}
		})
	}
}
