package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/app"
	"weighttrack/internal/domain"

	"github.com/rs/zerolog"
)

type allow bool

func (a allow) IsAuthorized() bool { return bool(a) }

type sent struct {
	message string
	to      string
}

type recordingSender struct {
	sent []sent
	err  error
}

func (s *recordingSender) Send(_ context.Context, message, to string) error {
	s.sent = append(s.sent, sent{message, to})
	return s.err
}

func newNotifyFixture(t *testing.T, permission bool, address string, sender *recordingSender) (*memory.DB, *app.WeightService) {
	t.Helper()
	db := memory.New()
	notifier := app.NewNotifyService(db, allow(permission), sender, address, zerolog.Nop())
	return db, app.NewWeightService(db, notifier, app.NewPreferenceService(db, nil))
}

func TestNotify_FiresOnceWhenGoalReached(t *testing.T) {
	sender := &recordingSender{}
	db, weights := newNotifyFixture(t, true, "+15550100", sender)
	ctx := context.Background()
	_ = db.SetGoal(ctx, 1, 70)

	m, err := weights.InsertEntry(ctx, 1, "2024-01-01", 69.5, domain.Kilograms)
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if m.Notify != app.OutcomeSent {
		t.Fatalf("expected sent, got %v", m.Notify)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.to != "+15550100" {
		t.Errorf("unexpected destination %q", msg.to)
	}
	if !strings.Contains(msg.message, "69.5") || !strings.Contains(msg.message, "70.0") {
		t.Errorf("message missing values: %q", msg.message)
	}

	m, _ = weights.InsertEntry(ctx, 1, "2024-01-02", 72.0, domain.Kilograms)
	if m.Notify != app.OutcomeNotReached || len(sender.sent) != 1 {
		t.Fatalf("expected no further delivery, got %v and %d sends", m.Notify, len(sender.sent))
	}
}

func TestNotify_RefiresOnEveryQualifyingMutation(t *testing.T) {
	sender := &recordingSender{}
	db, weights := newNotifyFixture(t, true, "addr", sender)
	ctx := context.Background()
	_ = db.SetGoal(ctx, 1, 70)

	first, _ := weights.InsertEntry(ctx, 1, "2024-01-01", 69, domain.Kilograms)
	_, _ = weights.InsertEntry(ctx, 1, "2024-01-02", 68, domain.Kilograms)
	_, _ = weights.UpdateEntry(ctx, 1, first.EntryID, "2024-01-01", 70, domain.Kilograms)

	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(sender.sent))
	}
}

func TestNotify_UsesDisplayUnit(t *testing.T) {
	tests := []struct {
		name    string
		display domain.Unit
		want    string
	}{
		{"pounds", domain.Pounds, "Goal reached! Latest: 150.0 lbs (goal: 154.3 lbs)."},
		{"kilograms despite pound input", domain.Kilograms, "Goal reached! Latest: 68.0 kg (goal: 70.0 kg)."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &recordingSender{}
			db, weights := newNotifyFixture(t, true, "addr", sender)
			ctx := context.Background()
			_ = db.SetGoal(ctx, 1, 70)
			_ = db.SetDisplayUnit(ctx, 1, tc.display)

			_, _ = weights.InsertEntry(ctx, 1, "2024-01-01", 150, domain.Pounds)
			if len(sender.sent) != 1 {
				t.Fatalf("expected one delivery, got %d", len(sender.sent))
			}
			if sender.sent[0].message != tc.want {
				t.Errorf("message = %q; want %q", sender.sent[0].message, tc.want)
			}
		})
	}
}

func TestNotify_Preconditions(t *testing.T) {
	tests := []struct {
		name       string
		permission bool
		address    string
		goal       *float64
		kg         float64
		want       app.Outcome
	}{
		{name: "unauthorized", permission: false, address: "addr", goal: ptr(70), kg: 60, want: app.OutcomeUnauthorized},
		{name: "no address", permission: true, address: "", goal: ptr(70), kg: 60, want: app.OutcomeNoAddress},
		{name: "no goal", permission: true, address: "addr", kg: 60, want: app.OutcomeNoGoal},
		{name: "above goal", permission: true, address: "addr", goal: ptr(70), kg: 70.1, want: app.OutcomeNotReached},
		{name: "exactly at goal", permission: true, address: "addr", goal: ptr(70), kg: 70, want: app.OutcomeSent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := &recordingSender{}
			prefs := &mockPreferenceRepo{prefs: domain.Preferences{GoalKg: tc.goal}}
			svc := app.NewNotifyService(prefs, allow(tc.permission), sender, tc.address, zerolog.Nop())

			got, err := svc.EvaluateAfterMutation(context.Background(), 1, tc.kg, domain.Kilograms)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("outcome = %v; want %v", got, tc.want)
			}
			wantSends := 0
			if tc.want == app.OutcomeSent {
				wantSends = 1
			}
			if len(sender.sent) != wantSends {
				t.Errorf("expected %d sends, got %d", wantSends, len(sender.sent))
			}
		})
	}
}

func TestNotify_DeliveryFailure(t *testing.T) {
	transport := errors.New("gateway timeout")
	sender := &recordingSender{err: transport}
	db, weights := newNotifyFixture(t, true, "addr", sender)
	ctx := context.Background()
	_ = db.SetGoal(ctx, 1, 70)

	m, err := weights.InsertEntry(ctx, 1, "2024-01-01", 65, domain.Kilograms)
	if err != nil {
		t.Fatalf("mutation must succeed, got %v", err)
	}
	if m.Notify != app.OutcomeFailed {
		t.Errorf("expected failed outcome, got %v", m.Notify)
	}
	if !errors.Is(m.NotifyErr, domain.ErrDeliveryFailure) || !errors.Is(m.NotifyErr, transport) {
		t.Errorf("expected wrapped delivery failure, got %v", m.NotifyErr)
	}

	entries, _ := weights.ListEntries(ctx, 1)
	if len(entries) != 1 || entries[0].Kg != 65 {
		t.Fatalf("entry must survive a failed delivery, got %+v", entries)
	}
}

func TestNotify_PreferenceError(t *testing.T) {
	prefs := &mockPreferenceRepo{getErr: errors.New("db down")}
	svc := app.NewNotifyService(prefs, allow(true), &recordingSender{}, "addr", zerolog.Nop())
	if _, err := svc.EvaluateAfterMutation(context.Background(), 1, 60, domain.Kilograms); err == nil {
		t.Fatal("expected error")
	}
}

func TestOutcomeString(t *testing.T) {
	if app.OutcomeSent.String() != "sent" {
		t.Errorf("unexpected name %q", app.OutcomeSent.String())
	}
	text, _ := app.OutcomeNoGoal.MarshalText()
	if string(text) != "no_goal" {
		t.Errorf("unexpected text %q", text)
	}
	if app.Outcome(99).String() != "outcome(99)" {
		t.Errorf("unexpected fallback %q", app.Outcome(99).String())
	}
}
