// Command guardctl is the operator-facing energy advisor. It evaluates
// readings against a local session history, so it needs no running
// energyguard service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/internal/tariff"
	"github.com/HerbHall/energyguard/internal/version"
	"github.com/HerbHall/energyguard/pkg/energy"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:           "guardctl",
		Usage:          "Analyze energy readings and get prioritized recommendations",
		Version:        version.Short(),
		DefaultCommand: "evaluate",
		Commands: []*cli.Command{
			evaluateCommand(),
			versionCommand(),
		},
	}
}

func evaluateCommand() *cli.Command {
	return &cli.Command{
		Name:  "evaluate",
		Usage: "Evaluate readings interactively, or one reading given via flags",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "usage", Usage: "current energy usage in kWh"},
			&cli.Float64Flag{Name: "expected", Usage: "expected average usage in kWh"},
			&cli.StringFlag{Name: "sector", Usage: "sector: Home, Factory or Power Plant"},
			&cli.StringFlag{Name: "time", Usage: "time of day: Day or Night"},
			&cli.BoolFlag{Name: "sunlight", Usage: "whether sunlight is currently available"},
			&cli.Float64Flag{Name: "temperature", Usage: "ambient temperature in °C"},
			&cli.BoolFlag{Name: "json", Usage: "print the evaluation as JSON instead of the status block"},
			&cli.StringFlag{Name: "rate", Usage: "tariff rate per kWh for cost estimates, e.g. 0.32"},
			&cli.StringFlag{Name: "currency", Value: "EUR", Usage: "currency code for cost estimates"},
		},
		Action: runEvaluate,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, version.Info())
			return nil
		},
	}
}

// readingFlags are the six flags that together describe one reading.
// Setting all of them switches evaluate into one-shot mode.
var readingFlags = []string{"usage", "expected", "sector", "time", "sunlight", "temperature"}

func runEvaluate(c *cli.Context) error {
	pricer, err := pricerFromFlags(c)
	if err != nil {
		return err
	}
	session := guard.NewSession(pricer)

	oneShot, err := oneShotRequested(c)
	if err != nil {
		return err
	}
	if !oneShot {
		return runAdvisor(c.Context, c.App.Reader, c.App.Writer, session)
	}

	reading := energy.Reading{
		Usage:       c.Float64("usage"),
		ExpectedAvg: c.Float64("expected"),
		Sector:      energy.Sector(titleWords(c.String("sector"))),
		Time:        energy.TimeOfDay(titleWords(c.String("time"))),
		Sunlight:    c.Bool("sunlight"),
		Temperature: c.Float64("temperature"),
	}
	eval, err := session.Evaluate(c.Context, reading)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		data, err := json.MarshalIndent(eval, "", "  ")
		if err != nil {
			return fmt.Errorf("encode evaluation: %w", err)
		}
		fmt.Fprintln(c.App.Writer, string(data))
		return nil
	}
	renderEvaluation(c.App.Writer, eval)
	return nil
}

// oneShotRequested reports whether the reading flags select one-shot
// mode. Partial flag sets are rejected rather than silently mixed with
// prompted input.
func oneShotRequested(c *cli.Context) (bool, error) {
	set := 0
	for _, name := range readingFlags {
		if c.IsSet(name) {
			set++
		}
	}
	switch set {
	case 0:
		return false, nil
	case len(readingFlags):
		return true, nil
	default:
		return false, fmt.Errorf("one-shot evaluation needs all of --usage, --expected, --sector, --time, --sunlight and --temperature")
	}
}

func pricerFromFlags(c *cli.Context) (guard.Pricer, error) {
	if !c.IsSet("rate") {
		return nil, nil
	}
	calc, err := tariff.NewCalculator(c.String("rate"), c.String("currency"))
	if err != nil {
		return nil, err
	}
	return fixedPricer{calc: calc}, nil
}

// fixedPricer adapts a tariff calculator to the session's pricing hook.
type fixedPricer struct {
	calc tariff.Calculator
}

func (p fixedPricer) EstimateCost(_ context.Context, kwh float64) (energy.CostEstimate, error) {
	return p.calc.Estimate(kwh), nil
}
