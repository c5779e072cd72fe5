package main

import (
	"database/sql"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"

	"stockval/internal/domain"
	"stockval/internal/repository"
	"stockval/internal/service"
	"stockval/internal/util"
	"stockval/pkg/eodhistorical"
	"stockval/pkg/quotes"
)

type dependencies struct {
	Db                 *sql.DB
	StockRepository    repository.StockRepository
	UniverseRepository repository.UniverseRepository
	StockService       service.StockService
}

func initializeDependencies(universeDir string, model domain.ValuationModel) (*dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	stockRepository := repository.NewStockRepository(dbConn)
	universeRepository := repository.NewUniverseRepository(universeDir)

	fundamentals := eodhistorical.Client{
		HttpClient: http.DefaultClient,
		ApiKey:     secrets.EodHistoricalApiKey,
	}

	stockService := service.NewStockService(
		stockRepository,
		universeRepository,
		fundamentals,
		quotes.Client{},
		model,
	)

	return &dependencies{
		Db:                 dbConn,
		StockRepository:    stockRepository,
		UniverseRepository: universeRepository,
		StockService:       stockService,
	}, nil
}

func (d *dependencies) close() error {
	return d.Db.Close()
}
