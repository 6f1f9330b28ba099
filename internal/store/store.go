package store

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"pt.arrendado.flatfinder/internal/boot"
)

type Store struct {
	db *sqlx.DB
}

// Open connects to the service database under the configured data directory,
// creating the schema if the file does not exist yet.
func Open(config *boot.Config) (*Store, error) {
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbName := path.Join(config.DataDir, "flatfinder.db")

	isCreating := false
	_, err := os.Stat(dbName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			isCreating = true
		}
	}

	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db}
	if isCreating {
		if err := store.createTables(); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`create table user(
		ID        text not null primary key,
		CreatedAt DATETIME not null,
		UpdatedAt DATETIME null,
		Email     text not null unique,
		Password  text not null,
		FirstName text not null,
		LastName  text not null,
		BirthDate DATETIME null,
		IsAdmin   tinyint not null default 0
	)`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}

	_, err = s.db.Exec(`create table flat(
		ID            text not null primary key,
		CreatedAt     DATETIME not null,
		UpdatedAt     DATETIME null,
		OwnerID       text not null references user(ID),
		City          text not null,
		StreetName    text not null,
		StreetNumber  text not null default '',
		AreaSize      integer not null default 0,
		HasAC         tinyint not null default 0,
		YearBuilt     integer not null default 0,
		RentPrice     integer not null default 0,
		DateAvailable DATETIME null
	)`)
	if err != nil {
		return fmt.Errorf("creating flat table: %w", err)
	}

	_, err = s.db.Exec(`create table message(
		Seq       integer primary key autoincrement,
		ID        text not null unique,
		FlatID    text not null references flat(ID),
		SenderID  text not null references user(ID),
		Content   text not null,
		IsRead    tinyint not null default 0,
		CreatedAt DATETIME not null
	)`)
	if err != nil {
		return fmt.Errorf("creating message table: %w", err)
	}

	_, err = s.db.Exec(`create index message_flat on message(FlatID, CreatedAt)`)
	if err != nil {
		return fmt.Errorf("creating message index: %w", err)
	}

	_, err = s.db.Exec(`create table favourite(
		UserID    text not null references user(ID),
		FlatID    text not null references flat(ID),
		CreatedAt DATETIME not null,
		primary key(UserID, FlatID)
	)`)
	if err != nil {
		return fmt.Errorf("creating favourite table: %w", err)
	}

	return nil
}
