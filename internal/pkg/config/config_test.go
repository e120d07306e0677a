package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 10},
		NATS:   NATSConfig{URL: "nats://localhost:4222", Enabled: true},
		Valkey: ValkeyConfig{Addr: "localhost:6379", Enabled: true},
		City:   CityConfig{Name: "New Orleans", Lat: 29.95583, Lon: -90.06526, LatitudeDelta: 0.01, LongitudeDelta: 0.01},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("bucketlist-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.City.Name != "New Orleans" {
		t.Errorf("expected New Orleans, got %s", cfg.City.Name)
	}
	if cfg.Telemetry.ServiceName != "bucketlist-test" {
		t.Errorf("expected service name bucketlist-test, got %s", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BUCKETLIST_SERVER_PORT", "9090")
	t.Setenv("BUCKETLIST_CITY_NAME", "Baton Rouge")

	cfg, err := Load("bucketlist-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.City.Name != "Baton Rouge" {
		t.Errorf("expected Baton Rouge, got %s", cfg.City.Name)
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.City.Lat = 95
	cfg.City.LatitudeDelta = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "city.lat", "latitude_delta"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidate_DisabledAdaptersNeedNoAddress(t *testing.T) {
	cfg := validConfig()
	cfg.NATS = NATSConfig{}
	cfg.Valkey = ValkeyConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
