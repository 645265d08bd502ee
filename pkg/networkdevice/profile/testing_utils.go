// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2023-present Datadog, Inc.

package profile

import (
	"github.com/mohae/deepcopy"

	"github.com/sayap/integrations-core/pkg/networkdevice/profile/profiledefinition"
)

// CopyProfileDefinition copies a profile, it's used for testing
func CopyProfileDefinition(profileDef profiledefinition.ProfileDefinition) profiledefinition.ProfileDefinition {
	return deepcopy.Copy(profileDef).(profiledefinition.ProfileDefinition)
}
