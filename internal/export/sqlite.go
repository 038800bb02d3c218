// file: internal/export/sqlite.go
// version: 1.0.0
// guid: 78899aab-1e2f-3041-5263-748596a7b8c9

package export

import (
	"database/sql"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jdfalk/itl-exporter/internal/itl"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tracks (
    song_id INTEGER PRIMARY KEY,
    title TEXT,
    artist TEXT,
    album TEXT,
    path TEXT
);

CREATE TABLE IF NOT EXISTS playlists (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS playlist_items (
    playlist_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    song_id INTEGER NOT NULL,
    PRIMARY KEY (playlist_id, position),
    FOREIGN KEY (playlist_id) REFERENCES playlists(id)
);
`

// WriteSQLite exports the library into a SQLite database at path. Existing
// rows are replaced, so re-exporting over the same file is safe.
func WriteSQLite(path string, lib *itl.Library, rewriter *PathRewriter) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening sqlite export: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("creating export schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting export transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTracks(tx, lib, rewriter); err != nil {
		return err
	}
	if err := insertPlaylists(tx, lib); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export: %w", err)
	}
	return nil
}

func insertTracks(tx *sql.Tx, lib *itl.Library, rewriter *PathRewriter) error {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO tracks (song_id, title, artist, album, path) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing track insert: %w", err)
	}
	defer stmt.Close()

	for id, track := range lib.Tracks {
		path := track.Path
		if rewriter != nil {
			if rewritten, ok := rewriter.Rewrite(track.Path); ok {
				path = rewritten
			}
		}
		if _, err := stmt.Exec(id, track.Title, track.Artist, track.Album, path); err != nil {
			return fmt.Errorf("inserting track %d: %w", id, err)
		}
	}
	return nil
}

func insertPlaylists(tx *sql.Tx, lib *itl.Library) error {
	titles := make([]string, 0, len(lib.Playlists))
	for title := range lib.Playlists {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	plStmt, err := tx.Prepare(`INSERT OR REPLACE INTO playlists (title) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("preparing playlist insert: %w", err)
	}
	defer plStmt.Close()

	itemStmt, err := tx.Prepare(`INSERT OR REPLACE INTO playlist_items (playlist_id, position, song_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing playlist item insert: %w", err)
	}
	defer itemStmt.Close()

	for _, title := range titles {
		res, err := plStmt.Exec(title)
		if err != nil {
			return fmt.Errorf("inserting playlist %q: %w", title, err)
		}
		plID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("playlist %q id: %w", title, err)
		}
		for pos, songID := range lib.Playlists[title].Items {
			if _, err := itemStmt.Exec(plID, pos, songID); err != nil {
				return fmt.Errorf("inserting playlist %q item %d: %w", title, pos, err)
			}
		}
	}
	return nil
}
