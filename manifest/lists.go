// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// toolList is a YAML type for the allowed-tools field: a whitespace-delimited
// scalar or a sequence of strings.
type toolList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *toolList) UnmarshalYAML(value *yaml.Node) error {
	tokens, err := decodeStringList(value, strings.Fields, "allowed-tools")
	if err != nil {
		return err
	}
	*l = tokens
	return nil
}

// tagList is a YAML type for the tags field: a comma-delimited scalar or a
// sequence of strings.
type tagList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *tagList) UnmarshalYAML(value *yaml.Node) error {
	split := func(s string) []string { return strings.Split(s, ",") }
	tokens, err := decodeStringList(value, split, "tags")
	if err != nil {
		return err
	}
	*l = tokens
	return nil
}

// decodeStringList decodes a scalar (split with splitFn) or sequence node
// into trimmed, non-empty tokens.
func decodeStringList(value *yaml.Node, splitFn func(string) []string, field string) ([]string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			return nil, nil
		}
		return trimTokens(splitFn(value.Value)), nil
	case yaml.SequenceNode:
		var arr []string
		if err := value.Decode(&arr); err != nil {
			return nil, fmt.Errorf("decoding %s array: %w", field, err)
		}
		return trimTokens(arr), nil
	case yaml.DocumentNode, yaml.MappingNode, yaml.AliasNode:
		return nil, fmt.Errorf("%s: expected string or array, got unsupported YAML node type", field)
	}
	return nil, fmt.Errorf("%s: unexpected YAML node kind %d", field, value.Kind)
}

// trimTokens trims each token and drops empty ones.
func trimTokens(tokens []string) []string {
	result := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if trimmed := strings.TrimSpace(tok); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
