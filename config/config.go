// Package config reads side files of credentials and machine-local paths,
// laid out as a JSON object of named sections.
package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
)

// Lookup returns the value at section/key from a JSON file of the form
//
//	{"printer": {"device": "/dev/ttyUSB0"}}
//
// Missing files, malformed JSON, and missing keys are distinct errors.
func Lookup(path, section, key string) (string, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}

	var sections map[string]map[string]string
	if err = json.Unmarshal(data, &sections); err != nil {
		return "", fmt.Errorf("config: parse '%s': %v", path, err)
	}

	sec, ok := sections[section]
	if !ok {
		return "", fmt.Errorf("config: '%s' has no section '%s'", path, section)
	}
	val, ok := sec[key]
	if !ok {
		return "", fmt.Errorf("config: '%s' has no key '%s' in section '%s'", path, key, section)
	}
	return val, nil
}
