// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fetch

import (
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/sayap/integrations-core/pkg/snmp/common"
	"github.com/sayap/integrations-core/pkg/snmp/session"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

func fetchScalarOidsWithBatching(sess session.Session, oids []string, oidBatchSize int) (valuestore.ScalarResultValuesType, []error) {
	retValues := make(valuestore.ScalarResultValuesType, len(oids))

	batches, err := common.CreateStringBatches(oids, oidBatchSize)
	if err != nil {
		return retValues, []error{fmt.Errorf("failed to create oid batches: %w", err)}
	}

	var fetchErrors []error
	for _, batchOids := range batches {
		results, err := fetchScalarOids(sess, batchOids)
		if err != nil {
			fetchErrors = append(fetchErrors, &FetchError{Operation: "get", OIDs: batchOids, Err: err})
			continue
		}
		for oid, value := range results {
			retValues[oid] = value
		}
	}
	return retValues, fetchErrors
}

func fetchScalarOids(sess session.Session, oids []string) (valuestore.ScalarResultValuesType, error) {
	packet, err := doFetchScalarOids(sess, oids)
	if err != nil {
		return nil, err
	}
	values := resultToScalarValues(packet)
	retryFailedScalarOids(sess, packet, values)
	return values, nil
}

// retryFailedScalarOids retries on NoSuchObject or NoSuchInstance for scalar
// oids that do not end with `.0`
func retryFailedScalarOids(sess session.Session, results *gosnmp.SnmpPacket, valuesToUpdate valuestore.ScalarResultValuesType) {
	retryOids := make(map[string]string)
	for _, variable := range results.Variables {
		oid := strings.TrimLeft(variable.Name, ".")
		if (variable.Type == gosnmp.NoSuchObject || variable.Type == gosnmp.NoSuchInstance) && !strings.HasSuffix(oid, ".0") {
			retryOids[oid] = oid + ".0"
		}
	}
	if len(retryOids) == 0 {
		return
	}
	fetchOids := make([]string, 0, len(retryOids))
	for _, oid := range retryOids {
		fetchOids = append(fetchOids, oid)
	}
	retryResults, err := doFetchScalarOids(sess, fetchOids)
	if err != nil {
		log.Debugf("failed to fetch oids `%v` on retry: %v", fetchOids, err)
		return
	}
	retryValues := resultToScalarValues(retryResults)
	for initialOid, actualOid := range retryOids {
		if value, ok := retryValues[actualOid]; ok {
			valuesToUpdate[initialOid] = value
		}
	}
}

func doFetchScalarOids(sess session.Session, oids []string) (*gosnmp.SnmpPacket, error) {
	log.Debugf("fetch scalar: request oids: %v", oids)
	results, err := sess.Get(oids)
	if err != nil {
		return nil, fmt.Errorf("error getting oids `%v`: %s", oids, err)
	}
	log.Debugf("fetch scalar: results: %v", results)
	return results, nil
}

func resultToScalarValues(results *gosnmp.SnmpPacket) valuestore.ScalarResultValuesType {
	returnValues := make(valuestore.ScalarResultValuesType, len(results.Variables))
	for _, pduVariable := range results.Variables {
		if shouldSkip(pduVariable.Type) {
			continue
		}

		name, value, err := valuestore.GetResultValueFromPDU(pduVariable)
		if err != nil {
			log.Debugf("fetch scalar: error getting value from pdu: %v", err)
			continue
		}
		returnValues[name] = value
	}
	return returnValues
}

func shouldSkip(berType gosnmp.Asn1BER) bool {
	switch berType {
	case gosnmp.EndOfContents, gosnmp.EndOfMibView, gosnmp.NoSuchInstance, gosnmp.NoSuchObject:
		return true
	}
	return false
}
