package cmd

import (
	"github.com/etnz/payments/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion description of the application.
// Boolean flags have no predictor.
func Completion() *complete.Command {
	engine := map[string]complete.Predictor{
		"serial":    nil,
		"queue":     predict.Set{"0", "16", "64", "256"},
		"log-level": predict.Set{"debug", "info", "warn", "error"},
	}
	withEngine := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range engine {
			flags[k] = v
		}
		return flags
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"process": {
				Flags: withEngine(map[string]complete.Predictor{"format": predict.Set{"csv", "json", "table"}}),
				Args:  predict.Files("*.csv"),
			},
			"report": {
				Flags: withEngine(map[string]complete.Predictor{
					"currency": predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
					"html":     nil,
				}),
				Args: predict.Files("*.csv"),
			},
			"topic":    {Args: predict.Set(append(topics, "*"))},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Args: predict.Files("*.csv"),
	}
}
