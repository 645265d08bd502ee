// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fetch retrieves scalar and column OID values from a device.
// Failures are scoped to the request they happen in: a batch or column that
// cannot be fetched is reported as a FetchError and the remaining OIDs are
// still collected.
package fetch

import (
	"fmt"
	"strings"

	"github.com/sayap/integrations-core/pkg/snmp/checkconfig"
	"github.com/sayap/integrations-core/pkg/snmp/session"
	"github.com/sayap/integrations-core/pkg/snmp/valuestore"
)

// FetchError records a fetch failure scoped to the OIDs of one request
type FetchError struct {
	Operation string
	OIDs      []string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching oids `%s` with %s failed: %s", strings.Join(e.OIDs, "`, `"), e.Operation, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetch oid values from device. Returns the values fetched so far plus one
// FetchError per failed request; a failed batch never prevents the other
// batches from being collected.
func Fetch(sess session.Session, config *checkconfig.CheckConfig) (*valuestore.ResultValueStore, []error) {
	var fetchErrors []error

	scalarResults, errs := fetchScalarOidsWithBatching(sess, config.OidConfig.ScalarOids, config.OidBatchSize)
	fetchErrors = append(fetchErrors, errs...)

	columnResults, errs := fetchColumnOidsWithBatching(sess, config.OidConfig.ColumnOids, config.OidBatchSize, config.BulkMaxRepetitions)
	fetchErrors = append(fetchErrors, errs...)

	return &valuestore.ResultValueStore{
		ScalarValues: scalarResults,
		ColumnValues: columnResults,
	}, fetchErrors
}
