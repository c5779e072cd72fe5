package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"stockval/internal/domain"
)

// StockRepository persists the full Stock aggregate as one jsonb
// document per (symbol, exchange). A stock that does not exist is a nil
// return, not an error.
type StockRepository interface {
	Get(symbol, exchange string) (*domain.Stock, error)
	List(exchange string) ([]domain.Stock, error)
	Save(stock domain.Stock, exchange string) error
	Remove(symbol, exchange string) error
}

type stockRepositoryHandler struct {
	Db *sql.DB
}

func NewStockRepository(db *sql.DB) StockRepository {
	return stockRepositoryHandler{Db: db}
}

func (h stockRepositoryHandler) Get(symbol, exchange string) (*domain.Stock, error) {
	row := h.Db.QueryRow(
		`SELECT data FROM stock WHERE symbol = $1 AND exchange = $2`,
		symbol, exchange,
	)

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s.%s: %w", symbol, exchange, err)
	}

	var stock domain.Stock
	err = json.Unmarshal(data, &stock)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal stock %s.%s: %w", symbol, exchange, err)
	}

	return &stock, nil
}

func (h stockRepositoryHandler) List(exchange string) ([]domain.Stock, error) {
	rows, err := h.Db.Query(
		`SELECT data FROM stock WHERE exchange = $1 ORDER BY symbol ASC`,
		exchange,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks for %s: %w", exchange, err)
	}
	defer rows.Close()

	out := []domain.Stock{}
	for rows.Next() {
		var data []byte
		err = rows.Scan(&data)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var stock domain.Stock
		err = json.Unmarshal(data, &stock)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal stock: %w", err)
		}
		out = append(out, stock)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list stocks for %s: %w", exchange, err)
	}

	return out, nil
}

func (h stockRepositoryHandler) Save(stock domain.Stock, exchange string) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return fmt.Errorf("failed to marshal stock %s: %w", stock.Symbol, err)
	}

	_, err = h.Db.Exec(
		`INSERT INTO stock (symbol, exchange, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (symbol, exchange) DO UPDATE SET data = EXCLUDED.data`,
		stock.Symbol, exchange, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save stock %s.%s: %w", stock.Symbol, exchange, err)
	}

	return nil
}

func (h stockRepositoryHandler) Remove(symbol, exchange string) error {
	_, err := h.Db.Exec(
		`DELETE FROM stock WHERE symbol = $1 AND exchange = $2`,
		symbol, exchange,
	)
	if err != nil {
		return fmt.Errorf("failed to remove stock %s.%s: %w", symbol, exchange, err)
	}

	return nil
}
