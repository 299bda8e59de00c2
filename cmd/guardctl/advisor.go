package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/HerbHall/energyguard/internal/guard"
	"github.com/HerbHall/energyguard/pkg/energy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// runAdvisor drives the interactive loop: prompt for a reading, evaluate
// it against the session history, render the status block, repeat. The
// loop ends on a quit token or EOF, then prints the session summary.
func runAdvisor(ctx context.Context, in io.Reader, out io.Writer, session *guard.Session) error {
	fmt.Fprintf(out, "\n=== EnergyGuard Advisor ===\n\n")

	scanner := bufio.NewScanner(in)
	for {
		reading, ok := promptReading(scanner, out)
		if !ok {
			break
		}
		eval, err := session.Evaluate(ctx, reading)
		if err != nil {
			fmt.Fprintf(out, "Cannot evaluate reading: %v\n\n", err)
			continue
		}
		renderEvaluation(out, eval)
		fmt.Fprintln(out)
	}

	renderSummary(out, session)
	return nil
}

// promptReading collects one reading from the operator. It reports false
// when the operator quits or input ends mid-reading.
func promptReading(in *bufio.Scanner, out io.Writer) (energy.Reading, bool) {
	usage, ok := promptFloat(in, out, "Current energy usage (kWh): ")
	if !ok {
		return energy.Reading{}, false
	}
	expected, ok := promptFloat(in, out, "Expected average usage (kWh): ")
	if !ok {
		return energy.Reading{}, false
	}
	sector, ok := promptString(in, out, "Sector (Home / Factory / Power Plant): ")
	if !ok {
		return energy.Reading{}, false
	}
	timeOfDay, ok := promptString(in, out, "Time (Day/Night): ")
	if !ok {
		return energy.Reading{}, false
	}
	sunlight, ok := promptString(in, out, "Sunlight available? (yes/no): ")
	if !ok {
		return energy.Reading{}, false
	}
	temperature, ok := promptFloat(in, out, "Ambient temperature (°C): ")
	if !ok {
		return energy.Reading{}, false
	}

	return energy.Reading{
		Usage:       usage,
		ExpectedAvg: expected,
		Sector:      energy.Sector(titleWords(sector)),
		Time:        energy.TimeOfDay(titleWords(timeOfDay)),
		Sunlight:    strings.EqualFold(sunlight, "yes"),
		Temperature: temperature,
	}, true
}

// promptFloat asks until it gets a parseable number. A quit token or EOF
// reports false.
func promptFloat(in *bufio.Scanner, out io.Writer, label string) (float64, bool) {
	for {
		fmt.Fprint(out, label)
		line, ok := readLine(in)
		if !ok || isQuit(line) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			fmt.Fprintln(out, "Please enter a number.")
			continue
		}
		return v, true
	}
}

func promptString(in *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	line, ok := readLine(in)
	if !ok || isQuit(line) {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return in.Text(), true
}

// isQuit matches the tokens that end the session at any prompt.
func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit":
		return true
	}
	return false
}

// titleWords normalizes free-form sector and time input to the canonical
// title-cased form, so "power plant" and "DAY" match the catalog values.
func titleWords(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// renderEvaluation prints the operator-facing status block for one
// evaluation.
func renderEvaluation(w io.Writer, eval *energy.Evaluation) {
	fmt.Fprintf(w, "\n========== ENERGY STATUS ==========\n")
	switch eval.Analysis.Alert {
	case energy.AlertCritical:
		fmt.Fprintln(w, "🔴 CRITICAL – Grid stress detected")
	case energy.AlertWarning:
		fmt.Fprintln(w, "🟡 WARNING – Inefficiency rising")
	default:
		fmt.Fprintln(w, "🟢 NORMAL – System balanced")
	}
	fmt.Fprintf(w, "⚡ Efficiency Score: %s/100\n", strconv.FormatFloat(eval.Analysis.Score, 'f', 1, 64))
	if eval.Cost != nil {
		fmt.Fprintf(w, "💰 Estimated Cost: %s %s\n", eval.Cost.Amount.StringFixed(2), eval.Cost.Currency)
	}

	fmt.Fprintf(w, "\n--- DIAGNOSIS (CAUSE → IMPACT) ---\n")
	for _, reason := range eval.Diagnosis.Reasons {
		fmt.Fprintf(w, "• %s\n", reason)
	}

	fmt.Fprintf(w, "\n--- ACTION PLAN (PRIORITIZED) ---\n")
	for _, action := range eval.Diagnosis.Actions {
		fmt.Fprintf(w, "[%s] %s\n", action.Priority, action.Description)
	}

	fmt.Fprintf(w, "\nDecision Confidence: %d%%\n", eval.Diagnosis.Confidence)
	fmt.Fprintf(w, "\n--- SYSTEM READY FOR NEXT CYCLE ---\n")
}

// renderSummary prints the end-of-session recap.
func renderSummary(w io.Writer, session *guard.Session) {
	trend := session.Trend()
	fmt.Fprintf(w, "\n========== SESSION SUMMARY ==========\n")
	fmt.Fprintf(w, "Readings analyzed: %d\n", trend.Samples)
	if trend.Available {
		fmt.Fprintf(w, "Usage trend average: %.1f kWh\n", *trend.Average)
	}
}
