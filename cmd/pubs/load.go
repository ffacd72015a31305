package main

import (
	"errors"
	"os"

	"github.com/commitlab/pubs/internal/config"
	"github.com/commitlab/pubs/internal/dedupe"
	"github.com/commitlab/pubs/internal/filter"
	"github.com/commitlab/pubs/internal/publication"
	"github.com/commitlab/pubs/internal/session"
	"github.com/commitlab/pubs/internal/storage"
)

// errNoSource is returned when the publications file is absent.
var errNoSource = errors.New("publications file not found")

// rebuildCache reloads the source file into the cache and returns the
// deduplicated records.
func rebuildCache(db *storage.DB, dataPath string) ([]publication.Record, error) {
	src, err := storage.StatSource(dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNoSource
		}
		return nil, err
	}
	records, err := storage.LoadRecords(dataPath)
	if err != nil {
		return nil, err
	}
	unique := dedupe.Deduplicate(records)
	if _, err := db.RebuildFromRecords(unique, src); err != nil {
		return nil, err
	}
	logger.Info().
		Str("source", dataPath).
		Int("records", len(records)).
		Int("unique", len(unique)).
		Msg("cache rebuilt")
	return unique, nil
}

// loadRecords serves records from the cache, rebuilding it first when the
// source file changed since the last build.
func loadRecords(db *storage.DB, dataPath string) ([]publication.Record, error) {
	stale, err := db.IsStale(dataPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errNoSource
	}
	if err != nil {
		return nil, err
	}
	if stale {
		return rebuildCache(db, dataPath)
	}
	logger.Debug().Str("source", dataPath).Msg("cache is current")
	return db.ListAll()
}

// mustLoadRecords loads the collection, exits on error.
func mustLoadRecords(repoRoot string, settings config.Settings) []publication.Record {
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	records, err := loadRecords(db, settings.DataPath)
	if err != nil {
		if errors.Is(err, errNoSource) {
			exitWithError(ExitDataError, "%v: %s", err, settings.DataPath)
		}
		exitWithError(ExitDataError, "loading publications: %v", err)
	}
	return records
}

// mustReadState loads the saved filter state, exits on error.
func mustReadState(repoRoot string) *filter.State {
	st, err := storage.ReadState(config.StatePath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "reading state: %v", err)
	}
	return st
}

// mustWriteState saves the filter state, exits on error.
func mustWriteState(repoRoot string, st *filter.State) {
	if err := storage.WriteState(config.StatePath(repoRoot), st); err != nil {
		exitWithError(ExitError, "saving state: %v", err)
	}
}

// mustLoadSession opens the collection with the saved filter state.
func mustLoadSession(repoRoot string, settings config.Settings) *session.Session {
	records := mustLoadRecords(repoRoot, settings)
	return session.New(records, mustReadState(repoRoot),
		session.WithExportFilename(settings.ExportFilename),
		session.WithLogger(logger),
	)
}
