package storage

import (
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrKeyNotFound = errors.New("key not found")

type (
	SettingStorage interface {
		GetAllSettings() ([]Setting, error)
		GetKey(name string) (string, error)
		SetKey(name, value string) error
		DeleteKey(name string) error
	}

	Settings struct {
		*sqlx.DB
	}

	Setting struct {
		Name  string `db:"name"`
		Value string `db:"value"`
	}
)

func (db *Settings) GetAllSettings() ([]Setting, error) {
	const query = `SELECT name, value FROM settings ORDER BY name DESC`
	var settings []Setting
	err := db.Select(&settings, query)
	return settings, err
}

func (db *Settings) GetKey(name string) (string, error) {
	const query = `SELECT value FROM settings WHERE name = ?`
	var value string
	err := db.Get(&value, query, name)
	return value, err
}

func (db *Settings) SetKey(name, value string) error {
	const query = `INSERT INTO settings (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	_, err := db.Exec(query, name, value)
	return err
}

func (db *Settings) DeleteKey(name string) error {
	const query = `DELETE FROM settings WHERE name = ?`
	res, err := db.Exec(query, name)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if rows == 0 {
		return ErrKeyNotFound
	}
	return err
}
