// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package valuestore

import (
	"fmt"
	"sort"

	"github.com/sayap/integrations-core/pkg/util/log"
)

// ColumnResultValuesType is used to store results fetched for column oids
// Structure: map[<COLUMN OID AS STRING>]map[<ROW INDEX>]ResultValue
// - the first map key is the table column oid
// - the second map key is the index part of oid (not prefixed with column oid)
type ColumnResultValuesType map[string]map[string]ResultValue

// ScalarResultValuesType is used to store results fetched for scalar oids
// Structure: map[<INSTANCE OID VALUE>]ResultValue
// - the instance oid value (suffixed with `.0`)
type ScalarResultValuesType map[string]ResultValue

// ResultValueStore store OID values
type ResultValueStore struct {
	// TODO: make fields private + use a constructor instead
	ScalarValues ScalarResultValuesType `json:"values"`
	ColumnValues ColumnResultValuesType `json:"column_values"`
}

// GetScalarValue look for oid in ResultValueStore and returns the value and boolean
// weather valid value has been found
func (v *ResultValueStore) GetScalarValue(oid string) (ResultValue, error) {
	value, ok := v.ScalarValues[oid]
	if !ok {
		return ResultValue{}, fmt.Errorf("value for Scalar OID `%s` not found in results", oid)
	}
	return value, nil
}

// GetColumnValues look for oid in ResultValueStore and returns a map[<fullIndex>]ResultValue
// where `fullIndex` refer to the part of the instance oid that identify the row
func (v *ResultValueStore) GetColumnValues(oid string) (map[string]ResultValue, error) {
	values, ok := v.ColumnValues[oid]
	if !ok {
		return nil, fmt.Errorf("value for Column OID `%s` not found in results", oid)
	}
	retValues := make(map[string]ResultValue, len(values))
	for index, value := range values {
		retValues[index] = value
	}

	return retValues, nil
}

// getColumnValue look for oid in ResultValueStore and returns a ResultValue
func (v *ResultValueStore) getColumnValue(oid string, index string) (ResultValue, error) {
	values, ok := v.ColumnValues[oid]
	if !ok {
		return ResultValue{}, fmt.Errorf("value for Column OID `%s` not found in results", oid)
	}
	value, ok := values[index]
	if !ok {
		return ResultValue{}, fmt.Errorf("value for Column OID `%s` and index `%s` not found in results", oid, index)
	}
	return value, nil
}

// GetColumnValueAsString look for oid/index in ResultValueStore and returns a string
func (v *ResultValueStore) GetColumnValueAsString(oid string, index string) string {
	value, err := v.getColumnValue(oid, index)
	if err != nil {
		log.Tracef("failed to get value for OID %s with index %s: %s", oid, index, err)
		return ""
	}
	strValue, err := value.ToString()
	if err != nil {
		log.Tracef("failed to convert to string for OID %s with value %v: %s", oid, value, err)
		return ""
	}
	return strValue
}

// GetColumnIndexes returns the indexes of a specific column
func (v *ResultValueStore) GetColumnIndexes(columnOid string) ([]string, error) {
	indexesMap := make(map[string]struct{})
	metricValues, err := v.GetColumnValues(columnOid)
	if err != nil {
		return nil, fmt.Errorf("error getting column value oid=%s: %s", columnOid, err)
	}
	for fullIndex := range metricValues {
		indexesMap[fullIndex] = struct{}{}
	}

	var indexes []string
	for index := range indexesMap {
		indexes = append(indexes, index)
	}

	sort.Strings(indexes) // sort indexes for better consistency
	return indexes, nil
}
