package measure

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Store persists declarations in SQLite so a table can be rebuilt in the
// order it was declared.
type Store struct {
	db *sql.DB
}

func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS declarations (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			from_unit TEXT NOT NULL,
			ratio REAL NOT NULL,
			to_unit TEXT NOT NULL,
			created_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS declarations_seq ON declarations (seq);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// SaveDeclaration appends d after every declaration already stored.
func (s *Store) SaveDeclaration(d Declaration) (string, error) {
	return insertDeclaration(s.db, d)
}

func insertDeclaration(db execer, d Declaration) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(`INSERT INTO declarations (id, seq, from_unit, ratio, to_unit, created_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM declarations), ?, ?, ?, ?)`,
		id, d.From, d.Ratio, d.To, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", errors.Wrapf(err, "save declaration %s -> %s", d.From, d.To)
	}
	return id, nil
}

// SaveAll stores decls in one transaction, either all of them land or none.
func (s *Store) SaveAll(decls []Declaration) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	for _, d := range decls {
		if _, err := insertDeclaration(tx, d); err != nil {
			tx.Rollback()
			return err
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func (s *Store) LoadDeclarations() ([]Declaration, error) {
	rows, err := s.db.Query(`SELECT from_unit, ratio, to_unit FROM declarations ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query declarations")
	}
	defer rows.Close()
	var decls []Declaration
	for rows.Next() {
		var d Declaration
		if err := rows.Scan(&d.From, &d.Ratio, &d.To); err != nil {
			return nil, errors.Wrap(err, "scan declaration")
		}
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

// LoadInto replays the stored declarations into t.
func (s *Store) LoadInto(t *Table) error {
	decls, err := s.LoadDeclarations()
	if err != nil {
		return err
	}
	return t.DeclareAll(decls)
}

func (s *Store) Close() error {
	return s.db.Close()
}
