package srarq

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// traceRecorder persists one row per dispatched simulation event so a
// run can be replayed and inspected after the fact.
type traceRecorder struct {
	db     *sql.DB
	insert *sql.Stmt
}

func newTraceRecorder(path string) (*traceRecorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace database")
	}

	createTable := `CREATE TABLE IF NOT EXISTS events (
		time REAL NOT NULL,
		entity TEXT NOT NULL,
		kind TEXT NOT NULL,
		sequenceNumber INTEGER,
		acknowledgementNumber INTEGER
	);`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create events table")
	}

	insert, err := db.Prepare(`INSERT INTO events (
		time,
		entity,
		kind,
		sequenceNumber,
		acknowledgementNumber
	) VALUES (?, ?, ?, ?, ?);`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "prepare insert")
	}

	return &traceRecorder{db: db, insert: insert}, nil
}

func (t *traceRecorder) record(time float64, e *event) error {
	var seq, ack interface{}
	if e.kind == eventPacketArrival {
		seq = e.packet.SequenceNumber()
		ack = e.packet.AcknowledgementNumber()
	}
	_, err := t.insert.Exec(time, e.entity.String(), e.kind.String(), seq, ack)
	return errors.Wrap(err, "record event")
}

func (t *traceRecorder) Close() error {
	if err := t.insert.Close(); err != nil {
		t.db.Close()
		return err
	}
	return t.db.Close()
}
