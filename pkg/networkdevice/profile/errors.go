// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

package profile

import "errors"

var (
	// ErrMalformedProfile means a profile document misses required fields or
	// fails validation. Fatal to that profile only.
	ErrMalformedProfile = errors.New("malformed profile")

	// ErrUnknownExtend means an `extends` entry references a profile that does
	// not exist. Fatal to the extending profile only.
	ErrUnknownExtend = errors.New("extend does not exist")

	// ErrCyclicExtend means a profile directly or transitively extends itself.
	ErrCyclicExtend = errors.New("cyclic profile extend detected")

	// ErrNoMatchingProfile means no profile sysobjectid pattern matches the
	// device sysObjectID. Reported, not fatal to the run.
	ErrNoMatchingProfile = errors.New("no profile matches sysObjectID")
)
