package store

import (
	"database/sql"
	"time"

	"github.com/cg14823/outage-wait/outage"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the outage schedule at path. The schema is created
// if missing so a fresh file is a valid, empty schedule.
func NewSQLiteStore(path string) (OutageStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS outage (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		start INT NOT NULL,
		end INT,
		active INT NOT NULL DEFAULT 0
	);`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) FindActiveOutage() (*outage.Outage, error) {
	row := s.db.QueryRow(`SELECT id, title, start, end FROM outage WHERE active=1 ORDER BY start LIMIT 1;`)
	return scanOutage(row)
}

func (s *sqliteStore) FindOutageByID(id int64) (*outage.Outage, error) {
	row := s.db.QueryRow(`SELECT id, title, start, end FROM outage WHERE id=?;`, id)
	return scanOutage(row)
}

func scanOutage(row *sql.Row) (*outage.Outage, error) {
	var (
		o         outage.Outage
		startUnix int64
		endUnix   sql.NullInt64
	)

	err := row.Scan(&o.ID, &o.Title, &startUnix, &endUnix)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	o.Start = time.Unix(startUnix, 0).UTC()
	if endUnix.Valid {
		end := time.Unix(endUnix.Int64, 0).UTC()
		o.End = &end
	}

	return &o, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
