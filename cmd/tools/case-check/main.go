// cmd/tools/case-check/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"case-collector/internal/caseform"
	"case-collector/internal/models"
	"case-collector/pkg/catalog"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
	catalogCmd := flag.NewFlagSet("catalog", flag.ExitOnError)

	validateFile := validateCmd.String("file", "", "Path to a case submission JSON document")
	validateCatalog := validateCmd.String("catalog", "", "Optional option catalog JSON (defaults to the built-in one)")
	metricsFile := metricsCmd.String("file", "", "Path to a case submission JSON document")
	catalogPath := catalogCmd.String("path", "", "Optional catalog JSON to check and print")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *validateFile == "" {
			fmt.Println("Error: -file is required for validate.")
			validateCmd.Usage()
			os.Exit(1)
		}
		valid, err := validateDocument(*validateFile, *validateCatalog)
		if err != nil {
			fmt.Printf("Error validating document: %v\n", err)
			os.Exit(1)
		}
		if !valid {
			os.Exit(1)
		}
		fmt.Println("Document is valid.")

	case "metrics":
		metricsCmd.Parse(os.Args[2:])
		if *metricsFile == "" {
			fmt.Println("Error: -file is required for metrics.")
			metricsCmd.Usage()
			os.Exit(1)
		}
		if err := printMetrics(*metricsFile); err != nil {
			fmt.Printf("Error computing metrics: %v\n", err)
			os.Exit(1)
		}

	case "schema":
		fmt.Println(caseform.PayloadSchema)

	case "catalog":
		catalogCmd.Parse(os.Args[2:])
		cat, err := loadCatalog(*catalogPath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		if err := printJSON(cat); err != nil {
			fmt.Printf("Error printing catalog: %v\n", err)
			os.Exit(1)
		}

	case "help":
		help()

	default:
		help()
		os.Exit(1)
	}
}

// validateDocument checks the wire shape first and only then the form rules,
// so a document with a wrong JSON type is reported once.
func validateDocument(path, catalogPath string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	contract, err := caseform.ValidatePayload(raw)
	if err != nil {
		return false, err
	}
	if !contract.Valid {
		fmt.Println("Payload shape errors:")
		for _, msg := range contract.GetErrorMessages() {
			fmt.Printf("  - %s\n", msg)
		}
		return false, nil
	}

	var doc models.CaseSubmission
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}

	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return false, err
	}
	schema, err := caseform.NewSchema(cat)
	if err != nil {
		return false, err
	}

	res := schema.Validate(doc)
	if !res.Valid {
		fmt.Println("Form errors:")
		for _, fe := range res.Errors {
			fmt.Printf("  - %s: %s (%s)\n", fe.Field, fe.Message, fe.Code)
		}
	}
	return res.Valid, nil
}

func printMetrics(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc models.CaseSubmission
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for i, m := range doc.Months {
		d := caseform.ComputeMonth(m).Format()
		title := fmt.Sprintf("MÊS %d", i+1)
		if phase := caseform.PhaseLabel(i); phase != "" {
			title += " - " + phase
		}
		fmt.Printf("%s (%s)\n", title, m.MonthYear)
		fmt.Printf("  Ticket médio:         %s\n", d.AverageTicket)
		fmt.Printf("  Taxa comparecimento:  %s\n", d.AttendanceRate)
		fmt.Printf("  ROI:                  %s\n", d.ROI)
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadCatalog(path)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

const usage = `
Usage: case-check <command> [options]

Commands:
  validate  Check a case submission JSON file (-file, -catalog)
  metrics   Print derived metrics per monthly record (-file)
  schema    Print the JSON schema of the submission payload
  catalog   Print the option catalog (-path to check a custom one)
  help      Show this help message
`

func help() {
	fmt.Print(usage)
}
