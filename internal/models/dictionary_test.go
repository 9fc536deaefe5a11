package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDictionaryEntryValidate(t *testing.T) {
	t.Run("Valid entry passes", func(t *testing.T) {
		entry := DictionaryEntry{
			Key:     "cloud.provider",
			Aliases: []string{"cloud_provider"},
		}
		assert.NoError(t, entry.Validate())
	})

	t.Run("Missing key fails", func(t *testing.T) {
		entry := DictionaryEntry{Aliases: []string{"x"}}
		assert.Error(t, entry.Validate())
	})

	t.Run("Empty aliases fail", func(t *testing.T) {
		entry := DictionaryEntry{Key: "host.name"}
		assert.Error(t, entry.Validate())
	})

	t.Run("Unknown provider fails", func(t *testing.T) {
		entry := DictionaryEntry{
			Key:      "oci.region",
			Provider: "oracle",
			Aliases:  []string{"oci_region"},
		}
		assert.Error(t, entry.Validate())
	})
}
