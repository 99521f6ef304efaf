package config

import (
	"errors"
	"testing"
)

func TestLoad_MissingSupabaseIsFatal(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	if _, err := Load(); !errors.Is(err, ErrMissingSupabase) {
		t.Fatalf("expected ErrMissingSupabase, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("PORT", "")
	t.Setenv("AVATARS_BUCKET", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port defaults: %+v", cfg)
	}
	if cfg.AvatarsBucket != "avatars" {
		t.Fatalf("unexpected bucket default: %q", cfg.AvatarsBucket)
	}
	if cfg.MaxUploadMB != 5 {
		t.Fatalf("unexpected upload limit default: %d", cfg.MaxUploadMB)
	}
}

func TestLoad_RejectsBadUploadLimit(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad MAX_UPLOAD_MB")
	}
}
