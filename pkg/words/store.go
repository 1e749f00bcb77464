package words

import (
	"context"
	"database/sql"
	stderrors "errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oversys/Rusty-Words/internal/errors"
)

// Store errors.
var (
	ErrNotFound    = errors.New("E300")
	ErrInvalidWord = errors.New("E301")
	ErrDatabase    = errors.New("E302")
)

const schema = `
CREATE TABLE IF NOT EXISTS word (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	dutch_word          TEXT NOT NULL,
	definite_article    TEXT,
	english_translation TEXT NOT NULL,
	arabic_translation  TEXT,
	source              TEXT
);

CREATE TABLE IF NOT EXISTS sentence (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	word_id  INTEGER NOT NULL REFERENCES word(id) ON DELETE CASCADE,
	sentence TEXT NOT NULL,
	meaning  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS note (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	word_id     INTEGER NOT NULL REFERENCES word(id) ON DELETE CASCADE,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tag (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS word_tag (
	word_id INTEGER NOT NULL REFERENCES word(id) ON DELETE CASCADE,
	tag_id  INTEGER NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
	PRIMARY KEY (word_id, tag_id)
);
`

// Store is a SQLite-backed word store.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.New("E302").WithDetailf("opening %s", path).Wrap(err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases alive for the life of the store.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.New("E302").WithDetail("applying schema").Wrap(err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return errors.New("E302").Wrap(err)
	}
	return nil
}

// Snapshot writes a consistent copy of the database to dst, which must
// not exist.
func (s *Store) Snapshot(ctx context.Context, dst string) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		return errors.New("E302").WithDetailf("snapshot to %s", dst).Wrap(err)
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// All returns every word with its sentences, notes and tags, ordered by id.
func (s *Store) All(ctx context.Context) ([]Word, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, dutch_word, definite_article, english_translation, arabic_translation, source
		FROM word
		ORDER BY id`)
	if err != nil {
		return nil, errors.New("E302").WithDetail("listing words").Wrap(err)
	}

	var list []Word
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.DutchWord, &w.DefiniteArticle, &w.EnglishTranslation, &w.ArabicTranslation, &w.Source); err != nil {
			rows.Close()
			return nil, errors.New("E302").WithDetail("scanning word").Wrap(err)
		}
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, errors.New("E302").Wrap(err)
	}
	// Close before loading children: the store holds a single connection.
	rows.Close()

	for i := range list {
		if err := loadChildren(ctx, s.db, &list[i]); err != nil {
			return nil, err
		}
	}

	if list == nil {
		list = []Word{}
	}
	return list, nil
}

// Get returns the word with id.
func (s *Store) Get(ctx context.Context, id int64) (Word, error) {
	var w Word
	err := s.db.QueryRowContext(ctx, `
		SELECT id, dutch_word, definite_article, english_translation, arabic_translation, source
		FROM word
		WHERE id = ?`, id).
		Scan(&w.ID, &w.DutchWord, &w.DefiniteArticle, &w.EnglishTranslation, &w.ArabicTranslation, &w.Source)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Word{}, errors.New("E300").WithDetailf("no word with id %d", id)
	}
	if err != nil {
		return Word{}, errors.New("E302").WithDetailf("loading word %d", id).Wrap(err)
	}

	if err := loadChildren(ctx, s.db, &w); err != nil {
		return Word{}, err
	}
	return w, nil
}

// Add inserts a word with its sentences, notes and tags in one transaction
// and returns the new id.
func (s *Store) Add(ctx context.Context, w Word) (int64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO word (dutch_word, definite_article, english_translation, arabic_translation, source)
			VALUES (?, ?, ?, ?, ?)`,
			w.DutchWord, w.DefiniteArticle, w.EnglishTranslation, w.ArabicTranslation, w.Source)
		if err != nil {
			return errors.New("E302").WithDetail("inserting word").Wrap(err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return errors.New("E302").Wrap(err)
		}
		return insertChildren(ctx, tx, id, w)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces the word with w.ID, including its sentences, notes and
// tags, in one transaction.
func (s *Store) Update(ctx context.Context, w Word) error {
	if err := w.Validate(); err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE word
			SET dutch_word = ?, definite_article = ?, english_translation = ?, arabic_translation = ?, source = ?
			WHERE id = ?`,
			w.DutchWord, w.DefiniteArticle, w.EnglishTranslation, w.ArabicTranslation, w.Source, w.ID)
		if err != nil {
			return errors.New("E302").WithDetailf("updating word %d", w.ID).Wrap(err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return errors.New("E302").Wrap(err)
		} else if n == 0 {
			return errors.New("E300").WithDetailf("no word with id %d", w.ID)
		}

		for _, q := range []string{
			"DELETE FROM sentence WHERE word_id = ?",
			"DELETE FROM note WHERE word_id = ?",
			"DELETE FROM word_tag WHERE word_id = ?",
		} {
			if _, err := tx.ExecContext(ctx, q, w.ID); err != nil {
				return errors.New("E302").WithDetailf("clearing word %d", w.ID).Wrap(err)
			}
		}

		return insertChildren(ctx, tx, w.ID, w)
	})
}

// inTx runs fn in a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New("E302").WithDetail("beginning transaction").Wrap(err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.New("E302").WithDetail("committing transaction").Wrap(err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, wordID int64, w Word) error {
	for _, s := range w.Sentences {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sentence (word_id, sentence, meaning) VALUES (?, ?, ?)",
			wordID, s.Sentence, s.Meaning); err != nil {
			return errors.New("E302").WithDetail("inserting sentence").Wrap(err)
		}
	}

	for _, note := range w.Notes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO note (word_id, description) VALUES (?, ?)",
			wordID, note); err != nil {
			return errors.New("E302").WithDetail("inserting note").Wrap(err)
		}
	}

	for _, tag := range w.Tags {
		if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO tag (name) VALUES (?)", tag); err != nil {
			return errors.New("E302").WithDetailf("inserting tag %q", tag).Wrap(err)
		}

		var tagID int64
		if err := tx.QueryRowContext(ctx, "SELECT id FROM tag WHERE name = ?", tag).Scan(&tagID); err != nil {
			return errors.New("E302").WithDetailf("loading tag %q", tag).Wrap(err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO word_tag (word_id, tag_id) VALUES (?, ?)",
			wordID, tagID); err != nil {
			return errors.New("E302").WithDetailf("tagging word with %q", tag).Wrap(err)
		}
	}

	return nil
}

func loadChildren(ctx context.Context, q queryer, w *Word) error {
	w.normalize()

	rows, err := q.QueryContext(ctx,
		"SELECT sentence, meaning FROM sentence WHERE word_id = ? ORDER BY id", w.ID)
	if err != nil {
		return errors.New("E302").WithDetail("loading sentences").Wrap(err)
	}
	for rows.Next() {
		var s Sentence
		if err := rows.Scan(&s.Sentence, &s.Meaning); err != nil {
			rows.Close()
			return errors.New("E302").Wrap(err)
		}
		w.Sentences = append(w.Sentences, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.New("E302").Wrap(err)
	}

	if w.Notes, err = loadStrings(ctx, q,
		"SELECT description FROM note WHERE word_id = ? ORDER BY id", w.ID); err != nil {
		return err
	}

	if w.Tags, err = loadStrings(ctx, q, `
		SELECT t.name FROM tag t
		INNER JOIN word_tag wt ON wt.tag_id = t.id
		WHERE wt.word_id = ?
		ORDER BY t.name`, w.ID); err != nil {
		return err
	}

	return nil
}

func loadStrings(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New("E302").Wrap(err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, errors.New("E302").Wrap(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.New("E302").Wrap(err)
	}
	return out, nil
}
