package migrator

import (
	"context"
	"sort"
	"time"
)

type State string

const (
	StatePending State = "pending"
	StateApplied State = "applied"
	// StateOrphaned - запись о применении есть, но миграция не зарегистрирована.
	StateOrphaned State = "orphaned"
)

type MigrationStatus struct {
	ID        int64
	Name      string
	State     State
	AppliedOn *time.Time
}

// Status возвращает состояние всех известных миграций, как зарегистрированных, так и сохраненных в таблице
// примененных миграций, в порядке возрастания идентификатора.
func (m *MigrationManager) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.appliedRecords(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.registeredMigrations)+len(applied))
	appliedSet := make(map[int64]struct{}, len(applied))
	for i := range applied {
		appliedSet[applied[i].ID] = struct{}{}
		appliedOn := applied[i].AppliedOn

		status := MigrationStatus{
			ID:        applied[i].ID,
			Name:      applied[i].Name,
			State:     StateApplied,
			AppliedOn: &appliedOn,
		}
		if _, ok := m.findMigration(applied[i].ID); !ok {
			status.State = StateOrphaned
		}
		statuses = append(statuses, status)
	}

	for _, migration := range m.registeredMigrations {
		if _, ok := appliedSet[migration.id]; ok {
			continue
		}
		statuses = append(statuses, MigrationStatus{
			ID:    migration.id,
			Name:  migration.name,
			State: StatePending,
		})
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].ID < statuses[j].ID
	})
	return statuses, nil
}

// CheckFulfillment проверяет, что все зарегистрированные миграции применены. Используется при старте
// приложения, чтобы не работать с частично мигрированной схемой.
func (m *MigrationManager) CheckFulfillment(ctx context.Context) (bool, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return false, err
	}
	return len(pending) == 0, nil
}
