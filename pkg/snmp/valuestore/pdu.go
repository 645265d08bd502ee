// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package valuestore

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// GetResultValueFromPDU converts gosnmp.SnmpPDU to ResultValue
// See possible types here: https://github.com/gosnmp/gosnmp/blob/master/helper.go#L59-L271
//
// - gosnmp.Opaque: No support for gosnmp.Opaque since the type is processed recursively and never returned:
// is never returned https://github.com/gosnmp/gosnmp/blob/dc320dac5b53d95a366733fd95fb5851f2099387/helper.go#L195-L205
// - gosnmp.Boolean: seems not exist anymore and not handled by gosnmp
func GetResultValueFromPDU(pduVariable gosnmp.SnmpPDU) (string, ResultValue, error) {
	name := strings.TrimLeft(pduVariable.Name, ".") // remove leading dot
	value, err := GetValueFromPDU(pduVariable)
	if err != nil {
		return name, ResultValue{}, err
	}
	submissionType := getSubmissionType(pduVariable.Type)
	return name, ResultValue{SubmissionType: submissionType, Value: value}, nil
}

// GetValueFromPDU converts gosnmp.SnmpPDU to ResultValue.Value
func GetValueFromPDU(pduVariable gosnmp.SnmpPDU) (interface{}, error) {
	switch pduVariable.Type {
	case gosnmp.OctetString, gosnmp.BitString:
		bytesValue, ok := pduVariable.Value.([]byte)
		if !ok {
			return nil, fmt.Errorf("oid %s: OctetString/BitString should be []byte type but got type `%T` and value `%v`", pduVariable.Name, pduVariable.Value, pduVariable.Value)
		}
		return bytesValue, nil
	case gosnmp.Integer, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.TimeTicks, gosnmp.Counter64, gosnmp.Uinteger32:
		return float64(gosnmp.ToBigInt(pduVariable.Value).Int64()), nil
	case gosnmp.OpaqueFloat:
		floatValue, ok := pduVariable.Value.(float32)
		if !ok {
			return nil, fmt.Errorf("oid %s: OpaqueFloat should be float32 type but got type `%T` and value `%v`", pduVariable.Name, pduVariable.Value, pduVariable.Value)
		}
		return float64(floatValue), nil
	case gosnmp.OpaqueDouble:
		floatValue, ok := pduVariable.Value.(float64)
		if !ok {
			return nil, fmt.Errorf("oid %s: OpaqueDouble should be float64 type but got type `%T` and value `%v`", pduVariable.Name, pduVariable.Value, pduVariable.Value)
		}
		return floatValue, nil
	case gosnmp.IPAddress:
		strValue, ok := pduVariable.Value.(string)
		if !ok {
			return nil, fmt.Errorf("oid %s: IPAddress should be string type but got type `%T` and value `%v`", pduVariable.Name, pduVariable.Value, pduVariable.Value)
		}
		return strValue, nil
	case gosnmp.ObjectIdentifier:
		strValue, ok := pduVariable.Value.(string)
		if !ok {
			return nil, fmt.Errorf("oid %s: ObjectIdentifier should be string type but got type `%T` and value `%v`", pduVariable.Name, pduVariable.Value, pduVariable.Value)
		}
		return strings.TrimLeft(strValue, "."), nil
	default:
		return nil, fmt.Errorf("oid %s: invalid type: %s", pduVariable.Name, pduVariable.Type.String())
	}
}

// getSubmissionType converts gosnmp.Asn1BER type to submission type
//
// ZeroBasedCounter64: We don't handle ZeroBasedCounter64 since it's not a type currently provided by gosnmp.
// This type is currently supported by python impl: https://github.com/DataDog/integrations-core/blob/d6add1dfcd99c3610f45390b8d4cd97390af1f69/snmp/datadog_checks/snmp/pysnmp_inspect.py#L37-L38
func getSubmissionType(gosnmpType gosnmp.Asn1BER) string {
	switch gosnmpType {
	// Counter Types: From the snmp doc: The Counter32 type represents a non-negative integer which monotonically increases until it
	// reaches a maximum value of 2^32-1 (4294967295 decimal), when it wraps around and starts increasing again from zero.
	// We convert snmp counters by default to `rate` submission type, but sometimes `monotonic_count` might be more suitable.
	// To achieve that, we can use `forced_type: monotonic_count` or `forced_type: monotonic_count_and_rate`.
	case gosnmp.Counter32, gosnmp.Counter64:
		return "counter"
	}
	return ""
}
