package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"redis": map[string]any{
			"poolSize": 10,
		},
		"jwt": map[string]any{
			"accessTTL": "30m",
		},
		"email": map[string]any{
			"codeTTL": "5m",
			"smtp": map[string]any{
				"userName": "mailer",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "REDIS_POOLSIZE", want: "redis.poolSize"},
		{envKey: "JWT_ACCESSTTL", want: "jwt.accessTTL"},
		{envKey: "EMAIL_CODETTL", want: "email.codeTTL"},
		{envKey: "EMAIL_SMTP_USERNAME", want: "email.smtp.userName"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
