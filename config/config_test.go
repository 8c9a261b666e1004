package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ChanneliAuthURL != "https://channeli.in/oauth/authorise" {
		t.Errorf("auth url = %q", cfg.ChanneliAuthURL)
	}
	if cfg.UploadDir == "" || cfg.LogDir == "" {
		t.Error("upload/log dirs must have defaults")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHANNELI_CLIENT_ID", "cid")
	t.Setenv("CHANNELI_STATE", "s123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Port)
	}
	if cfg.ChanneliClientID != "cid" {
		t.Errorf("client id = %q", cfg.ChanneliClientID)
	}
	if cfg.ChanneliState != "s123" {
		t.Errorf("state = %q", cfg.ChanneliState)
	}
}
