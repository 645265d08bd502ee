// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package report

import (
	"fmt"
	"net"
	"strings"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

// getScalarValueFromSymbol returns the scalar value for the given symbol,
// processed according to the symbol config
func getScalarValueFromSymbol(values *valuestore.ResultValueStore, symbol profiledefinition.SymbolConfig) (valuestore.ResultValue, error) {
	value, err := values.GetScalarValue(symbol.OID)
	if err != nil {
		return valuestore.ResultValue{}, err
	}
	return processValueUsingSymbolConfig(value, symbol)
}

// getColumnValueFromSymbol returns the column values for the given symbol,
// each processed according to the symbol config
func getColumnValueFromSymbol(values *valuestore.ResultValueStore, symbol profiledefinition.SymbolConfig) (map[string]valuestore.ResultValue, error) {
	columnValues, err := values.GetColumnValues(symbol.OID)
	if err != nil {
		return nil, err
	}
	newValues := make(map[string]valuestore.ResultValue, len(columnValues))
	for index, value := range columnValues {
		newValue, err := processValueUsingSymbolConfig(value, symbol)
		if err != nil {
			continue
		}
		newValues[index] = newValue
	}
	return newValues, nil
}

func processValueUsingSymbolConfig(value valuestore.ResultValue, symbol profiledefinition.SymbolConfig) (valuestore.ResultValue, error) {
	if symbol.ExtractValueCompiled != nil {
		extractedValue, err := value.ExtractStringValue(symbol.ExtractValueCompiled)
		if err != nil {
			return valuestore.ResultValue{}, fmt.Errorf("error extracting value from `%v` with pattern `%v`: %v", value, symbol.ExtractValueCompiled, err)
		}
		value = extractedValue
	}
	if symbol.MatchPatternCompiled != nil {
		strValue, err := value.ToString()
		if err != nil {
			return valuestore.ResultValue{}, fmt.Errorf("error converting value to string (value=%v): %v", value, err)
		}

		if !symbol.MatchPatternCompiled.MatchString(strValue) {
			return valuestore.ResultValue{}, fmt.Errorf("match pattern `%v` does not match string `%s`", symbol.MatchPattern, strValue)
		}
		replacedVal := profiledefinition.RegexReplaceValue(strValue, symbol.MatchPatternCompiled, symbol.MatchValue)
		if replacedVal == "" {
			return valuestore.ResultValue{}, fmt.Errorf("the pattern `%v` matched value `%v`, but template `%s` is not compatible", symbol.MatchPattern, strValue, symbol.MatchValue)
		}
		value = valuestore.ResultValue{Value: replacedVal}
	}
	if symbol.Format != "" {
		formattedValue, err := formatValue(value, symbol.Format)
		if err != nil {
			return valuestore.ResultValue{}, err
		}
		value = formattedValue
	}
	if symbol.ScaleFactor != 0 {
		floatValue, err := value.ToFloat64()
		if err != nil {
			return valuestore.ResultValue{}, fmt.Errorf("failed to scale value (value=%v): %v", value, err)
		}
		value = valuestore.ResultValue{SubmissionType: value.SubmissionType, Value: floatValue * symbol.ScaleFactor}
	}
	return value, nil
}

func formatValue(value valuestore.ResultValue, format string) (valuestore.ResultValue, error) {
	switch format {
	case "mac_address":
		if payload, ok := value.Value.([]byte); ok {
			value.Value = net.HardwareAddr(payload).String()
		}
		return value, nil
	default:
		return valuestore.ResultValue{}, fmt.Errorf("unknown format `%s` (value type `%T`)", format, value.Value)
	}
}

// getRowTags returns the tags for one row of a table metric
func (ms *MetricSender) getRowTags(metricConfig profiledefinition.MetricsConfig, fullIndex string, values *valuestore.ResultValueStore) []string {
	var rowTags []string
	indexes := strings.Split(fullIndex, ".")
	for _, metricTag := range metricConfig.MetricTags {
		// get tag using `index` field
		if metricTag.Index > 0 {
			index := int(metricTag.Index) - 1 // `index` is 1-based
			if index >= len(indexes) {
				log.Debugf("error getting tags. index `%d` not found in indexes `%v`", metricTag.Index, indexes)
				continue
			}
			tagValue, err := profiledefinition.GetMappedValue(indexes[index], metricTag.Mapping)
			if err != nil {
				log.Debugf("error getting tags. mapping for `%s` does not exist. mapping=`%v`, indexes=`%v`", indexes[index], metricTag.Mapping, indexes)
				continue
			}
			rowTags = append(rowTags, metricTag.Tag+":"+tagValue)
			continue
		}
		// get tag using another column value
		if metricTag.Column.OID != "" {
			columnValues, err := getColumnValueFromSymbol(values, metricTag.Column)
			if err != nil {
				log.Debugf("error getting column value: %v", err)
				continue
			}

			newIndexes := indexes
			if len(metricTag.IndexTransform) > 0 {
				newIndexes = transformIndex(indexes, metricTag.IndexTransform)
			}
			if newIndexes == nil {
				continue
			}
			tagValueIndex := strings.Join(newIndexes, ".")
			tagValue, ok := columnValues[tagValueIndex]
			if !ok {
				log.Debugf("index not found for column value: tag=%v, index=%v", metricTag.Tag, tagValueIndex)
				continue
			}
			strValue, err := tagValue.ToString()
			if err != nil {
				log.Debugf("error converting tagValue (%#v) to string : %v", tagValue, err)
				continue
			}
			rowTags = append(rowTags, metricTag.GetTags(strValue)...)
		}
	}
	return rowTags
}

// transformIndex changes a source index into a new index using a list of
// transform rules. A transform rule has start/end fields used to extract a
// subset of the source index.
func transformIndex(indexes []string, transformRules []profiledefinition.MetricIndexTransform) []string {
	var newKeys []string
	for _, rule := range transformRules {
		start := rule.Start
		end := rule.End + 1
		if end > uint(len(indexes)) {
			return nil
		}
		newKeys = append(newKeys, indexes[start:end]...)
	}
	return newKeys
}
