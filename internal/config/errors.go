package config

import "fmt"

// ConfigError reports an unusable configuration source or document: a source
// that is neither a mapping nor an existing file, an unparsable document, or
// a document missing a required field.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ContractError reports a model that violates the harness contract, such as
// a missing or empty default-parameter map.
type ContractError struct {
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract: %s", e.Reason)
}
