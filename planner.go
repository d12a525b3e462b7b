package migrator

import (
	"container/list"
	"sort"
)

type migrationsPlan struct {
	migrationsToRun *list.List
}

func newMigrationsPlan(migrations []*Migration) migrationsPlan {
	plan := migrationsPlan{
		migrationsToRun: list.New(),
	}
	for _, migration := range migrations {
		plan.migrationsToRun.PushBack(migration)
	}
	return plan
}

func (p migrationsPlan) IsEmpty() bool {
	return p.migrationsToRun.Len() == 0
}

func (p migrationsPlan) Len() int {
	return p.migrationsToRun.Len()
}

func (p migrationsPlan) PopFirst() *Migration {
	first := p.migrationsToRun.Front()
	p.migrationsToRun.Remove(first)
	return first.Value.(*Migration)
}

// ListPending возвращает миграции из known, для которых нет записи в applied, отсортированные по
// возрастанию идентификатора. Не изменяет входные данные.
func ListPending(known []*Migration, applied []AppliedRecord) []*Migration {
	appliedSet := make(map[int64]struct{}, len(applied))
	for i := range applied {
		appliedSet[applied[i].ID] = struct{}{}
	}

	pending := make([]*Migration, 0, len(known))
	for _, migration := range known {
		if _, ok := appliedSet[migration.id]; ok {
			continue
		}
		pending = append(pending, migration)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Identifier().LessThan(pending[j].Identifier())
	})
	return pending
}
