// Command brandgate-check runs offline gating over a context record file:
// validation, scoring, suggestions, and an optional guardrail check of a
// text snippet. Exits 1 when the record is blocked or the text violates
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"brandgate/internal/core/guardrail"
	"brandgate/internal/core/score"
	"brandgate/internal/core/ucr"
	"brandgate/internal/core/validate"
	"brandgate/internal/platform/logger"
)

type report struct {
	Validation  validate.Result        `json:"validation"`
	Quality     score.QualityScore     `json:"quality"`
	Suggestions []score.Suggestion     `json:"suggestions"`
	Guardrails  *guardrail.CheckResult `json:"guardrails,omitempty"`
}

func main() {
	var (
		file   = flag.String("file", "", "path to a context record JSON file (required)")
		text   = flag.String("text", "", "optional text to run through the guardrail engine")
		strict = flag.Bool("strict", false, "treat any guardrail violation as blocking")
	)
	flag.Parse()

	logger.Init(logger.FromEnv())
	log := logger.Named("brandgate-check")

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("read failed")
	}
	var cfg ucr.Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("not a valid context record")
	}

	rep := report{
		Validation:  validate.Check(cfg),
		Quality:     score.Compute(cfg),
		Suggestions: score.Suggest(cfg),
	}

	blocked := rep.Validation.Status == ucr.StatusBlocked
	if *text != "" {
		gr := guardrail.Check(cfg, *text, *strict)
		rep.Guardrails = &gr
		blocked = blocked || gr.IsBlocked
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode report")
	}
	fmt.Println(string(out))

	if blocked {
		os.Exit(1)
	}
}
