package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// UniverseEntry is one row of a per-exchange symbol list csv.
type UniverseEntry struct {
	Symbol string `csv:"symbol"`
	Name   string `csv:"name"`
}

// UniverseRepository lists the symbols to process for an exchange. The
// universe lives in data/universe/<exchange>.csv files.
type UniverseRepository interface {
	List(exchange string) ([]UniverseEntry, error)
}

type universeRepositoryHandler struct {
	Dir string
}

func NewUniverseRepository(dir string) UniverseRepository {
	return universeRepositoryHandler{Dir: dir}
}

func (h universeRepositoryHandler) List(exchange string) ([]UniverseEntry, error) {
	path := filepath.Join(h.Dir, exchange+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open universe file %s: %w", path, err)
	}
	defer file.Close()

	entries := []UniverseEntry{}
	err = gocsv.UnmarshalFile(file, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to parse universe file %s: %w", path, err)
	}

	return entries, nil
}
