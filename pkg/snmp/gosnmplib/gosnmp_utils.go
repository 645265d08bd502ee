// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package gosnmplib

import (
	"encoding/json"
	"fmt"

	"github.com/cihub/seelog"
	"github.com/gosnmp/gosnmp"

	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

type debugVariable struct {
	Oid      string      `json:"oid"`
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
	ParseErr string      `json:"parse_err,omitempty"`
}

// PacketAsStringIfLoglevel used to format gosnmp.SnmpPacket for debug/trace
// logging. Formatting is skipped when the current log level is above logLevel
// since building the payload walks every variable of the packet.
func PacketAsStringIfLoglevel(packet *gosnmp.SnmpPacket, logLevel seelog.LogLevel) string {
	if packet == nil {
		return ""
	}
	if curLogLevel, err := log.GetLogLevel(); err == nil && curLogLevel > logLevel {
		return ""
	}
	var debugVariables []debugVariable
	for _, pduVariable := range packet.Variables {
		var parseError string
		name := pduVariable.Name
		value := fmt.Sprintf("%v", pduVariable.Value)
		_, resValue, err := valuestore.GetResultValueFromPDU(pduVariable)
		if err == nil {
			resValueStr, err := resValue.ToString()
			if err == nil {
				value = resValueStr
			}
		}
		if err != nil {
			parseError = fmt.Sprintf("`%s`", err)
		}
		debugVar := debugVariable{Oid: name, Type: fmt.Sprintf("%v", pduVariable.Type), Value: value, ParseErr: parseError}
		debugVariables = append(debugVariables, debugVar)
	}

	jsonPayload, err := json.Marshal(debugVariables)
	if err != nil {
		log.Debugf("error marshaling debugVar: %s", err)
		jsonPayload = []byte(``)
	}
	return fmt.Sprintf("error=%s(code:%d, idx:%d), values=%s", packet.Error, packet.Error, packet.ErrorIndex, jsonPayload)
}
