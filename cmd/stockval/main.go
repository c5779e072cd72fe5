package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stockval/internal/domain"
	"stockval/internal/logger"
	"stockval/internal/simulation"
	"stockval/internal/util"
)

const startingCash = 1000.00

var (
	exchangeFlag    string
	universeDirFlag string
	modelsFileFlag  string
	startDateFlag   string
	endDateFlag     string
)

func loadModels(path string) ([]domain.ValuationModel, error) {
	if path == "" {
		return []domain.ValuationModel{domain.DefaultValuationModel()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file: %w", err)
	}
	models := []domain.ValuationModel{}
	err = json.Unmarshal(data, &models)
	if err != nil {
		return nil, fmt.Errorf("failed to parse models file: %w", err)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("models file %s is empty", path)
	}
	return models, nil
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return util.DateStringToTime(value)
}

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Fetch, reconcile and value every symbol in the exchange universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := initializeDependencies(universeDirFlag, domain.DefaultValuationModel())
			if err != nil {
				return err
			}
			defer deps.close()

			return deps.StockService.ProcessExchange(exchangeFlag)
		},
	}
}

func evaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Re-run the valuation over stored stocks without fetching",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := loadModels(modelsFileFlag)
			if err != nil {
				return err
			}

			deps, err := initializeDependencies(universeDirFlag, models[0])
			if err != nil {
				return err
			}
			defer deps.close()

			for _, model := range models {
				logger.Info("evaluating %s with model %s", exchangeFlag, model.Name)
				if err = deps.StockService.EvaluateExchange(exchangeFlag, model); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Replay each valuation model against historical snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := loadModels(modelsFileFlag)
			if err != nil {
				return err
			}
			startDate, err := parseDateFlag(startDateFlag)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(endDateFlag)
			if err != nil {
				return err
			}

			deps, err := initializeDependencies(universeDirFlag, domain.DefaultValuationModel())
			if err != nil {
				return err
			}
			defer deps.close()

			stockList, err := deps.StockRepository.List(exchangeFlag)
			if err != nil {
				return err
			}
			stocks := map[string]domain.Stock{}
			for _, stock := range stockList {
				stocks[stock.Symbol] = stock
			}

			for _, model := range models {
				logger.Info("simulation started for %s", model.Name)

				portfolio := domain.NewPortfolio(model)
				simulation.Deposit(portfolio, time.Now().UTC(), startingCash)

				result, err := simulation.Simulate(portfolio, stocks, model, startDate, endDate)
				if err != nil {
					return fmt.Errorf("simulation %s failed: %w", model.Name, err)
				}

				util.Pprint(result)
				logger.Info("simulation %s complete, annualized roi: %.2f%%", model.Name, result.Roi*100)
			}
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:          "stockval",
		Short:        "Financial statement reconciliation and stock valuation",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&exchangeFlag, "exchange", "US", "exchange to operate on")
	root.PersistentFlags().StringVar(&universeDirFlag, "universe-dir", "data/universe", "directory of per-exchange symbol csv files")
	root.PersistentFlags().StringVar(&modelsFileFlag, "models", "", "json file of valuation models (default: built-in model)")
	root.PersistentFlags().StringVar(&startDateFlag, "start-date", "", "simulation start date (YYYY-MM-DD)")
	root.PersistentFlags().StringVar(&endDateFlag, "end-date", "", "simulation end date (YYYY-MM-DD)")

	root.AddCommand(processCmd(), evaluateCmd(), simulateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
