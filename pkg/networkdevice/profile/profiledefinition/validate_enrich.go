// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profiledefinition

import (
	"fmt"
	"regexp"
)

// ValidateEnrichMetricTags validates and enriches metric tags
func ValidateEnrichMetricTags(metricTags []MetricTagConfig) []error {
	var errors []error
	for i := range metricTags {
		errors = append(errors, validateEnrichMetricTag(&metricTags[i])...)
	}
	return errors
}

// ValidateEnrichMetrics will validate MetricsConfig and enrich it.
// Example of enrichment:
// - storage of compiled regex pattern
func ValidateEnrichMetrics(metrics []MetricsConfig) []error {
	var errors []error
	for i := range metrics {
		metricConfig := &metrics[i]
		if metricConfig.Symbol.OID == "" && len(metricConfig.Symbols) == 0 {
			errors = append(errors, fmt.Errorf("either a table symbol or a scalar symbol must be provided: %#v", metricConfig))
		}
		if metricConfig.Symbol.OID != "" && len(metricConfig.Symbols) > 0 {
			errors = append(errors, fmt.Errorf("table symbol and scalar symbol cannot be both provided: %#v", metricConfig))
		}
		if metricConfig.Symbol.OID != "" {
			errors = append(errors, validateEnrichSymbol(&metricConfig.Symbol)...)
		}
		if len(metricConfig.Symbols) > 0 {
			for i := range metricConfig.Symbols {
				errors = append(errors, validateEnrichSymbol(&metricConfig.Symbols[i])...)
			}
			if len(metricConfig.MetricTags) == 0 {
				errors = append(errors, fmt.Errorf("column symbols %v doesn't have a 'metric_tags' section, all its metrics will use the same tags; "+
					"if the table has multiple rows, only one row will be submitted; "+
					"please add at least one discriminating metric tag (such as a row index) "+
					"to ensure metrics of all rows are submitted", metricConfig.Symbols))
			}
			for i := range metricConfig.MetricTags {
				metricTag := &metricConfig.MetricTags[i]
				errors = append(errors, validateEnrichMetricTag(metricTag)...)
			}
		}
		if metricConfig.ForcedType == "flag_stream" {
			if metricConfig.Options.Placement == 0 {
				errors = append(errors, fmt.Errorf("flag_stream metrics need a strictly positive placement: %#v", metricConfig))
			}
			if metricConfig.Options.MetricSuffix == "" {
				errors = append(errors, fmt.Errorf("flag_stream metrics need a metric_suffix: %#v", metricConfig))
			}
		}
	}
	return errors
}

func validateEnrichSymbol(symbol *SymbolConfig) []error {
	var errors []error
	if symbol.Name == "" {
		errors = append(errors, fmt.Errorf("symbol name missing: name=`%s` oid=`%s`", symbol.Name, symbol.OID))
	}
	if symbol.OID == "" {
		errors = append(errors, fmt.Errorf("symbol oid missing: name=`%s` oid=`%s`", symbol.Name, symbol.OID))
	}
	if symbol.ExtractValue != "" {
		pattern, err := regexp.Compile(symbol.ExtractValue)
		if err != nil {
			errors = append(errors, fmt.Errorf("cannot compile `extract_value` (`%s`): %s", symbol.ExtractValue, err.Error()))
		} else {
			symbol.ExtractValueCompiled = pattern
		}
	}
	if symbol.MatchPattern != "" {
		pattern, err := regexp.Compile(symbol.MatchPattern)
		if err != nil {
			errors = append(errors, fmt.Errorf("cannot compile `match_pattern` (`%s`): %s", symbol.MatchPattern, err.Error()))
		} else {
			symbol.MatchPatternCompiled = pattern
		}
	}
	return errors
}

func validateEnrichMetricTag(metricTag *MetricTagConfig) []error {
	var errors []error
	if metricTag.Column.OID != "" || metricTag.Column.Name != "" {
		errors = append(errors, validateEnrichSymbol(&metricTag.Column)...)
	}
	if metricTag.Match != "" {
		pattern, err := regexp.Compile(metricTag.Match)
		if err != nil {
			errors = append(errors, fmt.Errorf("cannot compile `match` (`%s`): %s", metricTag.Match, err.Error()))
		} else {
			metricTag.Pattern = pattern
		}
		if len(metricTag.Tags) == 0 {
			errors = append(errors, fmt.Errorf("`tags` mapping must be provided if `match` (`%s`) is defined", metricTag.Match))
		}
	}
	for _, transform := range metricTag.IndexTransform {
		if transform.Start > transform.End {
			errors = append(errors, fmt.Errorf("transform rule end should be greater than start. Invalid rule: %#v", transform))
		}
	}
	return errors
}
