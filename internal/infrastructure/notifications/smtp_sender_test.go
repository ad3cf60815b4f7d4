package notifications

import (
	"testing"

	"github.com/zatekoja/medicalriskpipeline/pkg/config"
)

func TestNewSMTPSender(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		from     string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			username: "alerts@example.com",
			password: "app-password",
			wantErr:  false,
		},
		{
			name:     "explicit from address",
			username: "alerts@example.com",
			password: "app-password",
			from:     "noreply@example.com",
			wantErr:  false,
		},
		{
			name:     "missing username",
			username: "",
			password: "app-password",
			wantErr:  true,
		},
		{
			name:     "missing password",
			username: "alerts@example.com",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender, err := NewSMTPSender(&config.SMTPConfig{
				Host:     "smtp.example.com",
				Port:     587,
				Username: tt.username,
				Password: tt.password,
				From:     tt.from,
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSMTPSender() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if sender == nil {
				t.Fatal("NewSMTPSender() returned nil sender")
			}
			wantFrom := tt.from
			if wantFrom == "" {
				wantFrom = tt.username
			}
			if sender.from != wantFrom {
				t.Errorf("sender.from = %q, want %q", sender.from, wantFrom)
			}
		})
	}
}
