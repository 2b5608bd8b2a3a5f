package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "k"},
			wantName: "openai",
		},
		{
			name:     "anthropic",
			config:   Config{Provider: "anthropic", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "claude", APIKey: "k"},
			wantName: "anthropic",
		},
		{
			name:     "ollama",
			config:   Config{Provider: "ollama", Model: "llama3.1:8b"},
			wantName: "ollama",
		},
		{
			name:     "case insensitive",
			config:   Config{Provider: "OpenAI", APIKey: "k"},
			wantName: "openai",
		},
		{
			name:    "disabled",
			config:  Config{Provider: ""},
			wantNil: true,
		},
		{
			name:    "unknown",
			config:  Config{Provider: "grok"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if provider != nil {
					t.Fatalf("expected nil provider, got %s", provider.Name())
				}
				return
			}
			if provider == nil {
				t.Fatal("expected provider")
			}
			if provider.Name() != tt.wantName {
				t.Errorf("expected name %s, got %s", tt.wantName, provider.Name())
			}
		})
	}
}
