package app_test

import (
	"context"
	"errors"
	"testing"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

type fixedHint domain.Unit

func (h fixedHint) DefaultUnit() domain.Unit { return domain.Unit(h) }

func TestDisplayUnit(t *testing.T) {
	lbs := domain.Pounds
	bogus := domain.Unit("stone")
	tests := []struct {
		name   string
		stored *domain.Unit
		hint   domain.LocaleHint
		want   domain.Unit
	}{
		{name: "stored wins", stored: &lbs, hint: fixedHint(domain.Kilograms), want: domain.Pounds},
		{name: "hint when unset", hint: fixedHint(domain.Pounds), want: domain.Pounds},
		{name: "hint when stored is invalid", stored: &bogus, hint: fixedHint(domain.Pounds), want: domain.Pounds},
		{name: "kilograms without hint", want: domain.Kilograms},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefs := &mockPreferenceRepo{prefs: domain.Preferences{DisplayUnit: tc.stored}}
			svc := app.NewPreferenceService(prefs, tc.hint)
			got, err := svc.DisplayUnit(context.Background(), 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("DisplayUnit = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestSetDisplayUnit(t *testing.T) {
	prefs := &mockPreferenceRepo{}
	svc := app.NewPreferenceService(prefs, nil)
	ctx := context.Background()

	if err := svc.SetDisplayUnit(ctx, 1, domain.Pounds); err != nil {
		t.Fatalf("SetDisplayUnit: %v", err)
	}
	if got, _ := svc.DisplayUnit(ctx, 1); got != domain.Pounds {
		t.Errorf("expected lbs, got %q", got)
	}
	if err := svc.SetDisplayUnit(ctx, 1, "st"); !errors.Is(err, domain.ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}
