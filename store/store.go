package store

import (
	"database/sql"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fieldspec/speclib/grouping"
	"github.com/fieldspec/speclib/profile"
)

// Store is a SQLite-backed spectral-library store.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Library describes one spectral library: a named collection of features
// sharing an ordered profile-field schema.
type Library struct {
	ID      string
	Name    string
	CRS     string
	Created time.Time
	// Fields lists the profile-field names in schema order.
	Fields []string
}

// FieldDescriptors returns the library's profile-field schema as grouping
// descriptors, usable with grouping.FieldDesc.
func (l Library) FieldDescriptors() []grouping.Field {
	out := make([]grouping.Field, len(l.Fields))
	for i, name := range l.Fields {
		out[i] = grouping.Field{Name: name, Index: i}
	}
	return out
}

// NewFeature is the insert form of a feature.
type NewFeature struct {
	Name  string
	Point *orb.Point
	// Values maps field name to profile; each is encoded to the blob
	// representation on insert. Fields not listed stay NULL.
	Values map[string]profile.Profile
}

// Feature is one stored feature. It implements grouping.Record: attribute
// access returns the raw encoded blob, leaving decoding to the codec.
type Feature struct {
	fid    int64
	name   string
	pos    *orb.Point
	fields []string
	values map[string][]byte
}

// ID returns the stable feature identifier.
func (f *Feature) ID() int64 { return f.fid }

// Name returns the feature's display name, "" when unset.
func (f *Feature) Name() string { return f.name }

// Fields returns the library's profile-field schema in order.
func (f *Feature) Fields() []string { return f.fields }

// Attribute returns the encoded profile blob of the named field.
func (f *Feature) Attribute(name string) (any, bool) {
	v, ok := f.values[name]
	if !ok {
		return nil, false
	}
	return v, true
}

// Point returns the feature position when one was stored.
func (f *Feature) Point() (orb.Point, bool) {
	if f.pos == nil {
		return orb.Point{}, false
	}
	return *f.pos, true
}

// Open opens (creating if necessary) a store at path and migrates its
// schema to the latest version. A nil logger disables logging.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("opened spectral library store", zap.String("path", path))
	return &Store{db: db, log: logger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for ad-hoc queries in tools and tests.
func (s *Store) DB() *sql.DB { return s.db }

// CreateLibrary registers a new library with the given profile-field
// schema and returns it with a fresh identifier.
func (s *Store) CreateLibrary(name, crs string, fields []string) (Library, error) {
	if len(fields) == 0 {
		return Library{}, fmt.Errorf("create library %q: at least one profile field required", name)
	}
	lib := Library{
		ID:      uuid.NewString(),
		Name:    name,
		CRS:     crs,
		Created: time.Now(),
		Fields:  append([]string(nil), fields...),
	}
	tx, err := s.db.Begin()
	if err != nil {
		return Library{}, err
	}
	defer tx.Rollback()
	_, err = tx.Exec(
		`INSERT INTO libraries (library_id, name, crs, created_unix_nanos) VALUES (?, ?, ?, ?)`,
		lib.ID, lib.Name, nullable(lib.CRS), lib.Created.UnixNano(),
	)
	if err != nil {
		return Library{}, fmt.Errorf("insert library %q: %w", name, err)
	}
	for i, f := range lib.Fields {
		_, err = tx.Exec(
			`INSERT INTO library_fields (library_id, field_name, position) VALUES (?, ?, ?)`,
			lib.ID, f, i,
		)
		if err != nil {
			return Library{}, fmt.Errorf("insert library field %q: %w", f, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Library{}, err
	}
	s.log.Info("created library",
		zap.String("library_id", lib.ID),
		zap.String("name", lib.Name),
		zap.Strings("fields", lib.Fields))
	return lib, nil
}

// Libraries lists all libraries with their field schemas.
func (s *Store) Libraries() ([]Library, error) {
	rows, err := s.db.Query(
		`SELECT library_id, name, COALESCE(crs, ''), created_unix_nanos FROM libraries ORDER BY created_unix_nanos, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var libs []Library
	for rows.Next() {
		var lib Library
		var nanos int64
		if err := rows.Scan(&lib.ID, &lib.Name, &lib.CRS, &nanos); err != nil {
			return nil, err
		}
		lib.Created = time.Unix(0, nanos)
		libs = append(libs, lib)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range libs {
		if libs[i].Fields, err = s.libraryFields(libs[i].ID); err != nil {
			return nil, err
		}
	}
	return libs, nil
}

// Library fetches one library by identifier.
func (s *Store) Library(id string) (Library, error) {
	var lib Library
	var nanos int64
	err := s.db.QueryRow(
		`SELECT library_id, name, COALESCE(crs, ''), created_unix_nanos FROM libraries WHERE library_id = ?`, id).
		Scan(&lib.ID, &lib.Name, &lib.CRS, &nanos)
	if err != nil {
		return Library{}, fmt.Errorf("library %s: %w", id, err)
	}
	lib.Created = time.Unix(0, nanos)
	if lib.Fields, err = s.libraryFields(id); err != nil {
		return Library{}, err
	}
	return lib, nil
}

// LibraryByName fetches one library by display name.
func (s *Store) LibraryByName(name string) (Library, error) {
	var id string
	err := s.db.QueryRow(`SELECT library_id FROM libraries WHERE name = ?`, name).Scan(&id)
	if err != nil {
		return Library{}, fmt.Errorf("library %q: %w", name, err)
	}
	return s.Library(id)
}

func (s *Store) libraryFields(id string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT field_name FROM library_fields WHERE library_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var fields []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// AddFeature inserts one feature with its encoded profile values and
// returns the assigned fid. Values for fields outside the library schema
// are rejected rather than silently stored.
func (s *Store) AddFeature(libraryID string, f NewFeature) (int64, error) {
	lib, err := s.Library(libraryID)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(lib.Fields))
	for _, name := range lib.Fields {
		known[name] = true
	}
	for name := range f.Values {
		if !known[name] {
			return 0, fmt.Errorf("field %q not in schema of library %q", name, lib.Name)
		}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	var posX, posY any
	if f.Point != nil {
		posX, posY = f.Point.X(), f.Point.Y()
	}
	res, err := tx.Exec(
		`INSERT INTO features (library_id, name, pos_x, pos_y) VALUES (?, ?, ?, ?)`,
		libraryID, nullable(f.Name), posX, posY,
	)
	if err != nil {
		return 0, fmt.Errorf("insert feature: %w", err)
	}
	fid, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for name, p := range f.Values {
		blob, err := profile.EncodeBytes(p)
		if err != nil {
			return 0, fmt.Errorf("encode profile for field %q: %w", name, err)
		}
		_, err = tx.Exec(
			`INSERT INTO feature_values (fid, field_name, payload) VALUES (?, ?, ?)`,
			fid, name, blob,
		)
		if err != nil {
			return 0, fmt.Errorf("insert profile value for field %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return fid, nil
}

// Features loads every feature of a library in fid order, with its raw
// encoded profile blobs.
func (s *Store) Features(libraryID string) ([]*Feature, error) {
	lib, err := s.Library(libraryID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT fid, COALESCE(name, ''), pos_x, pos_y FROM features WHERE library_id = ? ORDER BY fid`,
		libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var feats []*Feature
	byFid := make(map[int64]*Feature)
	for rows.Next() {
		f := &Feature{fields: lib.Fields, values: make(map[string][]byte)}
		var posX, posY sql.NullFloat64
		if err := rows.Scan(&f.fid, &f.name, &posX, &posY); err != nil {
			return nil, err
		}
		if posX.Valid && posY.Valid {
			f.pos = &orb.Point{posX.Float64, posY.Float64}
		}
		feats = append(feats, f)
		byFid[f.fid] = f
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	vrows, err := s.db.Query(
		`SELECT v.fid, v.field_name, v.payload FROM feature_values v
		 JOIN features ft ON ft.fid = v.fid WHERE ft.library_id = ?`,
		libraryID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var fid int64
		var field string
		var payload []byte
		if err := vrows.Scan(&fid, &field, &payload); err != nil {
			return nil, err
		}
		if f, ok := byFid[fid]; ok {
			f.values[field] = payload
		}
	}
	if err := vrows.Err(); err != nil {
		return nil, err
	}
	s.log.Debug("loaded features",
		zap.String("library_id", libraryID),
		zap.Int("count", len(feats)))
	return feats, nil
}

// Records adapts a feature slice to the stream the grouping engine takes.
func Records(feats []*Feature) iter.Seq[grouping.Record] {
	return func(yield func(grouping.Record) bool) {
		for _, f := range feats {
			if !yield(f) {
				return
			}
		}
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
