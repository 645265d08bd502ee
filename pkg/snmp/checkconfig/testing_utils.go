// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package checkconfig

import (
	"path/filepath"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile"
)

// SetConfdPathAndCleanProfiles points the profile loader at the fixtures
// shipped with this package and drops any cached profiles. Used by tests of
// packages that consume CheckConfig.
func SetConfdPathAndCleanProfiles() {
	profile.SetGlobalProfileConfigMap(nil) // make sure profiles are reloaded from the new conf.d path
	local, _ := filepath.Abs(filepath.Join(".", "testdata", "conf.d"))
	shared, _ := filepath.Abs(filepath.Join("..", "checkconfig", "testdata", "conf.d"))
	SetConfdPath(firstExistingPath(local, shared))
}
