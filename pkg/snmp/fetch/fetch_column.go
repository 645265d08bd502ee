// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fetch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosnmp/gosnmp"

	"github.com/sayap/integrations-core/pkg/snmp/common"
	"github.com/sayap/integrations-core/pkg/snmp/session"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
	"github.com/sayap/integrations-core/pkg/util/log"
)

func fetchColumnOidsWithBatching(sess session.Session, oids []string, oidBatchSize int, bulkMaxRepetitions uint32) (valuestore.ColumnResultValuesType, []error) {
	retValues := make(valuestore.ColumnResultValuesType, len(oids))

	batches, err := common.CreateStringBatches(oids, oidBatchSize)
	if err != nil {
		return retValues, []error{fmt.Errorf("failed to create column oid batches: %w", err)}
	}

	var fetchErrors []error
	for _, batchColumnOids := range batches {
		oidsToFetch := make(map[string]string, len(batchColumnOids))
		for _, oid := range batchColumnOids {
			oidsToFetch[oid] = oid
		}

		results, err := fetchColumnOids(sess, oidsToFetch, bulkMaxRepetitions)
		if err != nil {
			fetchErrors = append(fetchErrors, err)
		}

		// the values fetched before a failure are still reported
		for columnOid, instanceOids := range results {
			if _, ok := retValues[columnOid]; !ok {
				retValues[columnOid] = instanceOids
				continue
			}
			for oid, value := range instanceOids {
				retValues[columnOid][oid] = value
			}
		}
	}
	return retValues, fetchErrors
}

// fetchColumnOids has an `oids` argument representing a `map[string]string`,
// the key of the map is the column oid, and the value is the oid used to fetch the next value for the column.
// The value oid might be equal to column oid or a row oid of the same column.
func fetchColumnOids(sess session.Session, oids map[string]string, bulkMaxRepetitions uint32) (valuestore.ColumnResultValuesType, error) {
	returnValues := make(valuestore.ColumnResultValuesType, len(oids))
	curOids := oids
	for len(curOids) > 0 {
		log.Debugf("fetch column: request oids: %v", curOids)
		var columnOids, requestOids []string
		for k, v := range curOids {
			columnOids = append(columnOids, k)
			requestOids = append(requestOids, v)
		}
		// sorting columnOids and requestOids to make them deterministic
		sort.Strings(columnOids)
		sort.Strings(requestOids)

		results, err := getResults(sess, requestOids, bulkMaxRepetitions)
		if err != nil {
			operation := "get bulk"
			if sess.GetVersion() == gosnmp.Version1 {
				operation = "get next"
			}
			return returnValues, &FetchError{Operation: operation, OIDs: columnOids, Err: err}
		}
		newValues, nextOids := resultToColumnValues(columnOids, results)
		updateColumnResultValues(returnValues, newValues)
		curOids = nextOids
	}
	return returnValues, nil
}

func getResults(sess session.Session, requestOids []string, bulkMaxRepetitions uint32) (*gosnmp.SnmpPacket, error) {
	var results *gosnmp.SnmpPacket
	if sess.GetVersion() == gosnmp.Version1 {
		// snmp v1 doesn't support GetBulk
		getNextResults, err := sess.GetNext(requestOids)
		if err != nil {
			return nil, fmt.Errorf("error getting oids `%v` using GetNext: %s", requestOids, err)
		}
		results = getNextResults
	} else {
		getBulkResults, err := sess.GetBulk(requestOids, bulkMaxRepetitions)
		if err != nil {
			return nil, fmt.Errorf("error getting oids `%v` using GetBulk: %s", requestOids, err)
		}
		results = getBulkResults
	}
	log.Debugf("fetch column: results: %v", results)
	return results, nil
}

func updateColumnResultValues(valuesToUpdate valuestore.ColumnResultValuesType, extraValues valuestore.ColumnResultValuesType) {
	for columnOid, columnValues := range extraValues {
		for oid, value := range columnValues {
			if _, ok := valuesToUpdate[columnOid]; !ok {
				valuesToUpdate[columnOid] = make(map[string]valuestore.ResultValue)
			}
			valuesToUpdate[columnOid][oid] = value
		}
	}
}

// resultToColumnValues builds column values
// - columnResultValuesType: column values
// - nextOidsMap: represent the oids that can be used to retrieve following rows/values
func resultToColumnValues(columnOids []string, packet *gosnmp.SnmpPacket) (valuestore.ColumnResultValuesType, map[string]string) {
	returnValues := make(valuestore.ColumnResultValuesType, len(columnOids))
	nextOidsMap := make(map[string]string, len(columnOids))
	for i, variable := range packet.Variables {
		oid, value, err := valuestore.GetResultValueFromPDU(variable)
		if err != nil {
			log.Debugf("fetch column: error getting value from pdu: %v", err)
			continue
		}
		// the snmp get bulk response is a list of oids and values where
		// the columns are interleaved, see rfc 3416 section 4.2.3
		columnOid := columnOids[i%len(columnOids)]
		if strings.HasPrefix(oid, columnOid+".") {
			if _, ok := returnValues[columnOid]; !ok {
				returnValues[columnOid] = make(map[string]valuestore.ResultValue)
			}
			prefix := columnOid + "."
			returnValues[columnOid][oid[len(prefix):]] = value

			// update the next oid to fetch to continue the column
			nextOidsMap[columnOid] = oid
		} else {
			// the oid is not part of the column anymore, we are past the end of the column
			delete(nextOidsMap, columnOid)
		}
	}
	return returnValues, nextOidsMap
}
