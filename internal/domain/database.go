package domain

import "slices"

// Entity names double as counter keys and remote resource paths.
const (
	EntityCourses     = "courses"
	EntityUsers       = "users"
	EntityEnrollments = "enrollments"
)

type Meta struct {
	Version int `json:"version"`
}

// Counters are per-entity id generators. They only ever grow.
type Counters struct {
	Courses     int `json:"courses"`
	Users       int `json:"users"`
	Enrollments int `json:"enrollments"`
}

// Database is the whole local snapshot, persisted as one document.
type Database struct {
	Meta        *Meta        `json:"_meta,omitempty"`
	Courses     []Course     `json:"courses"`
	Users       []User       `json:"users"`
	Enrollments []Enrollment `json:"enrollments"`
	Counters    Counters     `json:"_counters"`
}

// Version returns the recorded schema version. Snapshots written before
// versioning existed count as version 1.
func (db *Database) Version() int {
	if db.Meta == nil {
		return 1
	}
	return db.Meta.Version
}

// EnsureCollections replaces nil collections with empty ones so the
// snapshot always serializes arrays, never null.
func (db *Database) EnsureCollections() {
	if db.Courses == nil {
		db.Courses = []Course{}
	}
	if db.Users == nil {
		db.Users = []User{}
	}
	if db.Enrollments == nil {
		db.Enrollments = []Enrollment{}
	}
}

// NormalizeCounters raises any counter that lags its collection length.
// Reports whether anything changed.
func (db *Database) NormalizeCounters() bool {
	changed := false
	raise := func(c *int, n int) {
		if *c < n {
			*c = n
			changed = true
		}
	}
	raise(&db.Counters.Courses, len(db.Courses))
	raise(&db.Counters.Users, len(db.Users))
	raise(&db.Counters.Enrollments, len(db.Enrollments))
	return changed
}

// NextID mints a new id for entity. The id is greater than the counter and
// greater than every id already present, so rows added behind the counter's
// back can never collide with a minted one.
func (db *Database) NextID(entity string) int {
	var counter *int
	maxID := 0
	switch entity {
	case EntityCourses:
		counter = &db.Counters.Courses
		for _, c := range db.Courses {
			maxID = max(maxID, c.ID)
		}
	case EntityUsers:
		counter = &db.Counters.Users
		for _, u := range db.Users {
			maxID = max(maxID, u.ID)
		}
	case EntityEnrollments:
		counter = &db.Counters.Enrollments
		for _, e := range db.Enrollments {
			maxID = max(maxID, e.ID)
		}
	default:
		panic("domain: unknown entity " + entity)
	}
	*counter = max(*counter, maxID) + 1
	return *counter
}

// Clone deep-copies the snapshot.
func (db *Database) Clone() *Database {
	out := &Database{Counters: db.Counters}
	if db.Meta != nil {
		m := *db.Meta
		out.Meta = &m
	}
	if db.Courses != nil {
		out.Courses = make([]Course, len(db.Courses))
		for i, c := range db.Courses {
			out.Courses[i] = c.Clone()
		}
	}
	if db.Users != nil {
		out.Users = make([]User, len(db.Users))
		for i, u := range db.Users {
			out.Users[i] = u.Clone()
		}
	}
	out.Enrollments = slices.Clone(db.Enrollments)
	return out
}
