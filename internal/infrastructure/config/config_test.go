package config

import "testing"

func TestServerConfigGetAddr(t *testing.T) {
	t.Parallel()

	cfg := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got, want := cfg.GetAddr(), "0.0.0.0:8080"; got != want {
		t.Errorf("GetAddr() = %q, want %q", got, want)
	}
}

func TestRedisConfigGetAddr(t *testing.T) {
	t.Parallel()

	cfg := RedisConfig{Host: "localhost", Port: 6379}
	if got, want := cfg.GetAddr(), "localhost:6379"; got != want {
		t.Errorf("GetAddr() = %q, want %q", got, want)
	}
}

func TestDatabaseConfigGetDSN(t *testing.T) {
	t.Parallel()

	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Name:     "schedule_manager",
		User:     "postgres",
		Password: "secret",
		SSLMode:  "disable",
	}
	want := "host=localhost port=5432 user=postgres password=secret dbname=schedule_manager sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
