package calculator

import (
	"context"
	"fmt"

	"rfm-segments/pkg/logger"
	"rfm-segments/pkg/models"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Run cleans, aggregates and scores one batch of transactions.
// Scoring only starts once every customer is aggregated: the quintiles need
// the whole population.
func Run(ctx context.Context, txs []models.Transaction, cfg models.Config) (*models.Result, error) {
	cleaned := Clean(txs)
	if cfg.Verbose {
		logger.Log.WithFields(logrus.Fields{
			"stage":   "clean",
			"rows":    len(txs),
			"kept":    len(cleaned),
			"dropped": len(txs) - len(cleaned),
		}).Info("transactions cleaned")
	}

	reference, metrics, err := Aggregate(cleaned)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	if cfg.Verbose {
		logger.Log.WithFields(logrus.Fields{
			"stage":     "aggregate",
			"customers": len(metrics),
			"reference": reference.Format("2006-01-02 15:04:05"),
		}).Info("customers aggregated")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds, err := ComputeBoundaries(metrics)
	if err != nil {
		return nil, fmt.Errorf("boundaries: %w", err)
	}
	if cfg.Verbose {
		logger.Log.WithFields(logrus.Fields{
			"stage":     "boundaries",
			"recency":   bounds.Recency,
			"frequency": bounds.Frequency,
			"monetary":  bounds.Monetary,
		}).Debug("quintile boundaries")
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(metrics),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("scoring customers"),
		)
	}
	scored := make([]models.ScoredCustomer, 0, len(metrics))
	for _, m := range metrics {
		scored = append(scored, ScoreCustomer(m, bounds))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return &models.Result{
		Reference:   reference,
		Boundaries:  bounds,
		Customers:   scored,
		RawRows:     len(txs),
		CleanedRows: len(cleaned),
	}, nil
}
