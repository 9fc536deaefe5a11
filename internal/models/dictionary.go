package models

import (
	"github.com/go-playground/validator/v10"
)

// Semantic dictionary domains. Resource entries cover metadata/resource
// attributes, signal entries cover span/signal attributes.
const (
	DomainResource = "resource"
	DomainSignal   = "signal"
)

// Cloud provider discriminators recognized by the normalizer's
// provider-collapse rule.
const (
	ProviderAWS   = "aws"
	ProviderAzure = "azure"
	ProviderGCP   = "gcp"
)

// DictionaryEntry maps one or more historical field names to a single
// canonical semantic key. Entries are read-only reference data for the
// lifetime of a run.
type DictionaryEntry struct {
	Key         string   `yaml:"key" validate:"required"`
	DisplayName string   `yaml:"display_name"`
	Category    string   `yaml:"category"`
	Provider    string   `yaml:"provider,omitempty" validate:"omitempty,oneof=aws azure gcp"`
	Aliases     []string `yaml:"aliases" validate:"required,min=1,dive,required"`
}

// DictionaryFile is the on-disk shape of one dictionary YAML file.
type DictionaryFile struct {
	Entries []DictionaryEntry `yaml:"entries"`
}

// Validate checks the entry using go-playground/validator.
func (e *DictionaryEntry) Validate() error {
	validate := validator.New()
	return validate.Struct(e)
}
