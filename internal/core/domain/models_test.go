package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestRescue_NullAndOmittedMessageDecodeAlike(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"explicit null", `{"id":1,"latitude":1,"longitude":2,"message":null,"status":"pending","createdAt":"2024-05-01T10:00:00.000Z"}`},
		{"omitted", `{"id":1,"latitude":1,"longitude":2,"status":"pending","createdAt":"2024-05-01T10:00:00.000Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rescue
			if err := json.Unmarshal([]byte(tt.body), &r); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if r.Message != nil {
				t.Errorf("Message = %q, want nil", *r.Message)
			}
			if r.Status != RescuePending {
				t.Errorf("Status = %q, want %q", r.Status, RescuePending)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"bounds", 90, -180, false},
		{"latitude too high", 90.5, 0, true},
		{"longitude too low", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.lat, tt.lng)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCoordinates() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  *DomainError
	}{
		{"valid", Credentials{Email: "test@trailguard.app", Password: "Test1234!"}, nil},
		{"missing email", Credentials{Password: "x"}, ErrMissingArgument},
		{"bad email", Credentials{Email: "not-an-email", Password: "x"}, ErrInvalidArgument},
		{"missing password", Credentials{Email: "test@trailguard.app"}, ErrMissingArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExpeditionParams_Validate(t *testing.T) {
	start := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	negative := -5.0

	valid := ExpeditionParams{
		Title:           "Aconcagua",
		StartDate:       start,
		Difficulty:      DifficultyExpert,
		MaxParticipants: 6,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid params error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *ExpeditionParams)
	}{
		{"no title", func(p *ExpeditionParams) { p.Title = " " }},
		{"no start", func(p *ExpeditionParams) { p.StartDate = time.Time{} }},
		{"end before start", func(p *ExpeditionParams) { p.EndDate = &before }},
		{"bad difficulty", func(p *ExpeditionParams) { p.Difficulty = "extreme" }},
		{"no participants", func(p *ExpeditionParams) { p.MaxParticipants = 0 }},
		{"negative cost", func(p *ExpeditionParams) { p.Cost = &negative }},
		{"bad route point", func(p *ExpeditionParams) { p.Route = []RoutePoint{{Lat: 100, Lng: 0}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestExpeditionFilter_Query(t *testing.T) {
	f := ExpeditionFilter{Difficulty: DifficultyAdvanced, TeamID: 7}
	got := f.Query().Encode()
	want := "difficulty=advanced&teamId=7"
	if got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}

	if q := (ExpeditionFilter{}).Query(); len(q) != 0 {
		t.Errorf("empty filter Query() = %v, want empty", q)
	}
}

func TestTeam_Joinable(t *testing.T) {
	tests := []struct {
		name string
		team Team
		want bool
	}{
		{"public with room", Team{IsPublic: true, MaxMembers: 5, Count: &Counts{Members: 2}}, true},
		{"public and full", Team{IsPublic: true, MaxMembers: 2, Count: &Counts{Members: 2}}, false},
		{"private", Team{IsPublic: false, MaxMembers: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.team.Joinable(); got != tt.want {
				t.Errorf("Joinable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTeamUpdate_Validate(t *testing.T) {
	if err := (TeamUpdate{}).Validate(); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("empty update error = %v, want ErrMissingArgument", err)
	}
	zero := 0
	if err := (TeamUpdate{MaxMembers: &zero}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero maxMembers error = %v, want ErrInvalidArgument", err)
	}
	if err := (TeamUpdate{Name: String("Ridge Runners")}).Validate(); err != nil {
		t.Errorf("rename error = %v", err)
	}
}

func TestSubscribeRequest_Validate(t *testing.T) {
	if err := (SubscribeRequest{Type: SubscriptionPro, PaymentID: "pay_1"}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (SubscribeRequest{Type: "gold", PaymentID: "pay_1"}).Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown tier error = %v, want ErrInvalidArgument", err)
	}
	if err := (SubscribeRequest{Type: SubscriptionPremium}).Validate(); !errors.Is(err, ErrMissingArgument) {
		t.Errorf("missing payment error = %v, want ErrMissingArgument", err)
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := &User{Email: "a@b.c"}
	if got := u.DisplayName(); got != "a@b.c" {
		t.Errorf("DisplayName() = %q, want email", got)
	}
	u.Name = String("Ana")
	if got := u.DisplayName(); got != "Ana" {
		t.Errorf("DisplayName() = %q, want %q", got, "Ana")
	}
}
