/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "geareye/internal/log"
)

//go:embed config.schema.json
var schemaJSON []byte

// SchemaJSON returns the embedded JSON schema of the config file.
func SchemaJSON() []byte { return append([]byte(nil), schemaJSON...) }

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks cfg against the embedded schema and the range checks of
// the chain and logo packages.
func Validate(cfg AppConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	problems, err := schemaProblems(b)
	if err != nil {
		return err
	}
	if !applog.ValidLevel(cfg.Logging.Level) {
		problems = append(problems, fmt.Sprintf("logging.level: unknown level %q", cfg.Logging.Level))
	}
	if opt, err := cfg.LogoOptions(); err != nil {
		problems = append(problems, "logo.color: "+err.Error())
	} else if err := opt.Validate(); err != nil {
		problems = append(problems, strings.Split(err.Error(), "\n")...)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// validateDocument checks the raw YAML document, so unknown keys are
// reported before decoding drops them.
func validateDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if raw == nil {
		return nil // empty document
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return &ValidationError{Problems: []string{err.Error()}}
	}
	problems, err := schemaProblems(b)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func schemaProblems(doc []byte) ([]string, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load config schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema validate: %w", err)
	}
	var problems []string
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}
