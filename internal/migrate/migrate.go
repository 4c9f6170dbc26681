// Package migrate reconciles a stored snapshot with the current seed catalog.
// It only ever appends missing seed rows and moves the version stamp forward;
// rows already present are left untouched.
package migrate

import (
	"context"
	"fmt"
	"time"

	"course-catalog/internal/domain"
	"course-catalog/internal/logger"
	"course-catalog/internal/seed"
	"course-catalog/internal/store"
)

// Report describes what a reconcile pass did.
type Report struct {
	Seeded         bool  `json:"seeded"`
	FromVersion    int   `json:"fromVersion"`
	ToVersion      int   `json:"toVersion"`
	AddedCourses   []int `json:"addedCourses"`
	CountersRaised bool  `json:"countersRaised"`
	Persisted      bool  `json:"persisted"`
}

// Changed reports whether the snapshot differs from what was stored.
func (r Report) Changed() bool {
	return r.Seeded || r.FromVersion != r.ToVersion || len(r.AddedCourses) > 0 || r.CountersRaised
}

// Apply upgrades db in place against the seed built at now.
func Apply(db *domain.Database, now time.Time) Report {
	rep := Report{
		FromVersion:  db.Version(),
		ToVersion:    db.Version(),
		AddedCourses: []int{},
	}
	db.EnsureCollections()

	if rep.FromVersion >= seed.SchemaVersion {
		rep.CountersRaised = db.NormalizeCounters()
		return rep
	}

	have := make(map[int]bool, len(db.Courses))
	for _, c := range db.Courses {
		have[c.ID] = true
	}
	for _, c := range seed.Courses(now) {
		if have[c.ID] {
			continue
		}
		db.Courses = append(db.Courses, c)
		have[c.ID] = true
		rep.AddedCourses = append(rep.AddedCourses, c.ID)
	}

	db.Counters.Courses = max(db.Counters.Courses, len(db.Courses))
	rep.CountersRaised = db.NormalizeCounters()
	db.Meta = &domain.Meta{Version: seed.SchemaVersion}
	rep.ToVersion = seed.SchemaVersion
	return rep
}

// Reconcile reads the snapshot from st, seeds or upgrades it, persists it
// when anything changed and returns it. Calling it again with no writes in
// between persists nothing.
func Reconcile(ctx context.Context, st store.Store, now time.Time, log *logger.Logger) (*domain.Database, Report, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, ok, err := st.Read(ctx)
	if err != nil {
		// a read error is not absence; never seed over it
		return nil, Report{}, fmt.Errorf("migrate: %w", err)
	}
	if !ok {
		db = seed.Build(now)
		rep := Report{
			Seeded:       true,
			FromVersion:  0,
			ToVersion:    seed.SchemaVersion,
			AddedCourses: []int{},
		}
		if err := st.Write(ctx, db); err != nil {
			return nil, rep, fmt.Errorf("migrate: persist seed: %w", err)
		}
		rep.Persisted = true
		log.Info("local store seeded", "version", seed.SchemaVersion, "courses", len(db.Courses))
		return db, rep, nil
	}

	rep := Apply(db, now)
	if !rep.Changed() {
		return db, rep, nil
	}
	if err := st.Write(ctx, db); err != nil {
		return nil, rep, fmt.Errorf("migrate: persist v%d: %w", rep.ToVersion, err)
	}
	rep.Persisted = true
	if rep.FromVersion != rep.ToVersion {
		log.Info("local store migrated",
			"from", rep.FromVersion,
			"to", rep.ToVersion,
			"added_courses", rep.AddedCourses,
		)
	} else {
		log.Debug("local store counters normalized", "counters", db.Counters)
	}
	return db, rep, nil
}
