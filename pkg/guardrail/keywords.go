package guardrail

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadKeywords reads a YAML file mapping category names to keyword lists
// and merges it over the defaults. A category present in the file replaces
// the default list for that category wholesale; categories the file does
// not mention keep their defaults.
func LoadKeywords(path string) (map[string][]string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading keywords file %s: %w", path, err)
	}

	keywords := DefaultKeywords()
	for category := range v.AllSettings() {
		words := v.GetStringSlice(category)
		if len(words) == 0 {
			return nil, fmt.Errorf("keywords file %s: category %q has no keywords", path, category)
		}
		keywords[strings.ToLower(category)] = words
	}
	return keywords, nil
}
