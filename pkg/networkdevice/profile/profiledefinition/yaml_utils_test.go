// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package profiledefinition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	yaml "gopkg.in/yaml.v2"
)

type myStruct struct {
	SomeNum     Number      `yaml:"my_num"`
	SomeBool    Boolean     `yaml:"my_bool"`
	SomeStrings StringArray `yaml:"my_strings"`
}

func Test_metricConfig_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		result  myStruct
		wantErr bool
	}{
		{
			name:   "integer number",
			data:   []byte(`my_num: 10`),
			result: myStruct{SomeNum: Number(10)},
		},
		{
			name:   "string number",
			data:   []byte(`my_num: "10"`),
			result: myStruct{SomeNum: Number(10)},
		},
		{
			name:    "invalid string number",
			data:    []byte(`my_num: "abc"`),
			wantErr: true,
		},
		{
			name:   "true boolean",
			data:   []byte(`my_bool: true`),
			result: myStruct{SomeBool: Boolean(true)},
		},
		{
			name:   "string boolean",
			data:   []byte(`my_bool: "true"`),
			result: myStruct{SomeBool: Boolean(true)},
		},
		{
			name:   "string false boolean",
			data:   []byte(`my_bool: "false"`),
			result: myStruct{SomeBool: Boolean(false)},
		},
		{
			name:    "invalid string boolean",
			data:    []byte(`my_bool: "foo"`),
			wantErr: true,
		},
		{
			name:   "single string",
			data:   []byte(`my_strings: "1.3.6.1.4.1.318.*"`),
			result: myStruct{SomeStrings: StringArray{"1.3.6.1.4.1.318.*"}},
		},
		{
			name:   "list of strings",
			data:   []byte("my_strings:\n - \"1.3.6.1.4.1.318.*\"\n - \"1.3.6.1.4.1.319.*\""),
			result: myStruct{SomeStrings: StringArray{"1.3.6.1.4.1.318.*", "1.3.6.1.4.1.319.*"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := myStruct{}
			err := yaml.Unmarshal(tt.data, &result)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}
