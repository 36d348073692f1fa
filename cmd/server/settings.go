package main

import (
	"context"
	"errors"

	"github.com/Thiht/transactor"

	"github.com/pomotrack/pomotrack"
)

// settingsProvider enforces the get-or-create-default contract around the
// singleton settings row.
type settingsProvider struct {
	repo pomotrack.SettingsRepo
	tx   transactor.Transactor
}

func newSettingsProvider(repo pomotrack.SettingsRepo, tx transactor.Transactor) *settingsProvider {
	return &settingsProvider{repo: repo, tx: tx}
}

// Get returns the settings row, seeding the defaults (25/5/15/4) on first
// access. The read and the conditional seed share one transaction so two
// first readers cannot both insert.
func (p *settingsProvider) Get(ctx context.Context) (pomotrack.ExistingSettingsRecord, error) {
	var out pomotrack.ExistingSettingsRecord
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := p.repo.GetSettings(ctx)
		if errors.Is(err, pomotrack.ErrNotFound) {
			existing, err = p.repo.InsertSettings(ctx, pomotrack.DefaultSettings())
		}
		if err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return pomotrack.ExistingSettingsRecord{}, err
	}
	return out, nil
}

func (p *settingsProvider) Update(ctx context.Context, settings pomotrack.SettingsRecord) (pomotrack.ExistingSettingsRecord, error) {
	if err := validateSettings(settings); err != nil {
		return pomotrack.ExistingSettingsRecord{}, err
	}

	var out pomotrack.ExistingSettingsRecord
	err := p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := p.repo.GetSettings(ctx); errors.Is(err, pomotrack.ErrNotFound) {
			if _, err := p.repo.InsertSettings(ctx, pomotrack.DefaultSettings()); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updated, err := p.repo.UpdateSettings(ctx, settings)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return pomotrack.ExistingSettingsRecord{}, err
	}
	return out, nil
}

func validateSettings(s pomotrack.SettingsRecord) error {
	switch {
	case s.WorkDuration <= 0:
		return &pomotrack.ValidationError{Field: "workDuration", Reason: "must be a positive integer"}
	case s.ShortBreakDuration <= 0:
		return &pomotrack.ValidationError{Field: "shortBreakDuration", Reason: "must be a positive integer"}
	case s.LongBreakDuration <= 0:
		return &pomotrack.ValidationError{Field: "longBreakDuration", Reason: "must be a positive integer"}
	case s.SessionsUntilLongBreak < 2:
		return &pomotrack.ValidationError{Field: "sessionsUntilLongBreak", Reason: "must be at least 2"}
	}
	return nil
}
