package main

import "testing"

func TestRedact(t *testing.T) {
	cases := map[string]string{
		"user:pass@tcp(localhost:3306)/retail?parseTime=true": "user:***@tcp(localhost:3306)/retail?parseTime=true",
		"postgres://u:secret@db:5432/retail":                 "postgres://u:***@db:5432/retail",
		"postgres://u@db:5432/retail":                        "postgres://u@db:5432/retail",
		"file:/tmp/retail.db?_busy_timeout=5000":             "file:/tmp/retail.db?_busy_timeout=5000",
	}
	for in, want := range cases {
		if got := redact(in); got != want {
			t.Fatalf("redact(%q) = %q, want %q", in, got, want)
		}
	}
}
