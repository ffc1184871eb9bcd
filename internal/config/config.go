package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout describes the statement layout assumptions the text pipeline relies
// on. The defaults are tuned to one vendor's fixed-width rendering; a
// different layout is supported by loading a substitute config rather than
// editing code.
type Layout struct {
	// StartMarkers switch the scanner into the transaction table. Matched as
	// lowercased substrings.
	StartMarkers []string `yaml:"start_markers"`
	// HeaderWords mark table-header and summary noise inside the table.
	HeaderWords []string `yaml:"header_words"`

	// Column bands, in character offsets on the extracted line. Only
	// DepositColStart gates the heuristic: an amount starting left of it is
	// read as a withdrawal, at or right of it as a deposit.
	// WithdrawalColStart and DepositColEnd record the outer edges of the
	// vendor's two amount columns; Load rejects a DepositColStart placed
	// outside them.
	WithdrawalColStart int `yaml:"withdrawal_col_start"`
	DepositColStart    int `yaml:"deposit_col_start"`
	DepositColEnd      int `yaml:"deposit_col_end"`

	// DepositKeywords reclassify a withdrawal as a deposit when they appear
	// in the description. Corrects column detection near the band boundary
	// for inbound transfers.
	DepositKeywords []string `yaml:"deposit_keywords"`
	// FeeWords force a transaction into the Other category.
	FeeWords []string `yaml:"fee_words"`

	// MinLineTokens is the minimum whitespace-delimited token count for a
	// candidate transaction line.
	MinLineTokens int `yaml:"min_line_tokens"`
	// OCRFallbackThreshold is the stripped text-layer length below which a
	// PDF is re-rendered and OCR'd.
	OCRFallbackThreshold int `yaml:"ocr_fallback_threshold"`
}

// Default returns the layout for the reference statement format.
func Default() *Layout {
	return &Layout{
		StartMarkers: []string{"transaction", "transactions", "statement"},
		HeaderWords: []string{
			"date", "details", "withdrawals", "deposits",
			"balance", "opening", "closing",
		},
		WithdrawalColStart: 35,
		DepositColStart:    55,
		DepositColEnd:      75,
		DepositKeywords:    []string{"deposit", "payroll", "transfer", "credit"},
		FeeWords: []string{
			"fee", "fees", "bank fee", "bank fees",
			"bank charge", "bank charges",
			"service charge", "service charges", "admin fee",
		},
		MinLineTokens:        3,
		OCRFallbackThreshold: 500,
	}
}

// Load reads a layout YAML file from disk. Fields left unset in the file keep
// their defaults.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout config: %w", err)
	}
	layout := Default()
	if err := yaml.Unmarshal(data, layout); err != nil {
		return nil, fmt.Errorf("parsing layout config: %w", err)
	}
	if err := layout.validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	return layout, nil
}

// validate checks column band ordering: the withdrawal/deposit boundary must
// sit inside the outer band edges.
func (l *Layout) validate() error {
	if l.DepositColStart < l.WithdrawalColStart || l.DepositColStart > l.DepositColEnd {
		return fmt.Errorf("deposit_col_start %d outside column band [%d, %d]",
			l.DepositColStart, l.WithdrawalColStart, l.DepositColEnd)
	}
	return nil
}

// Save writes a Layout to a YAML file.
func Save(path string, layout *Layout) error {
	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("marshaling layout config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing layout config: %w", err)
	}
	return nil
}
